package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peartree/finbot/internal/storage"
)

// Store is the pgx-backed LedgerStore used in production.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ storage.LedgerStore = (*Store)(nil)
