package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peartree/finbot/internal/storage"
	"github.com/peartree/finbot/models"
)

func (s *Store) CreateLoan(ctx context.Context, loan *models.Loan) error {
	query := `
		INSERT INTO loans (phone, amount, due_at)
		VALUES ($1, $2, $3)
		RETURNING id, paid, created_at`

	err := s.pool.QueryRow(ctx, query,
		loan.Phone,
		loan.Amount,
		loan.DueAt).Scan(&loan.ID, &loan.Paid, &loan.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao registrar empréstimo: %w", err)
	}
	return nil
}

// PayOldestLoan settles the oldest unpaid loan of the phone. The select and
// the update run as one statement, so concurrent pay commands from the same
// phone cannot both settle the same row.
func (s *Store) PayOldestLoan(ctx context.Context, phone string) (*models.Loan, error) {
	query := `
		UPDATE loans SET paid = TRUE
		WHERE id = (
			SELECT id FROM loans
			WHERE phone = $1 AND NOT paid
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, phone, amount, due_at, paid, created_at`

	loan := &models.Loan{}
	err := s.pool.QueryRow(ctx, query, phone).Scan(
		&loan.ID,
		&loan.Phone,
		&loan.Amount,
		&loan.DueAt,
		&loan.Paid,
		&loan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNoPendingLoan
		}
		return nil, fmt.Errorf("erro ao quitar empréstimo: %w", err)
	}
	return loan, nil
}

func (s *Store) UnpaidLoansDueBy(ctx context.Context, deadline time.Time) ([]models.Loan, error) {
	query := `
		SELECT id, phone, amount, due_at, paid, created_at
		FROM loans
		WHERE NOT paid AND due_at IS NOT NULL AND due_at < $1
		ORDER BY due_at`

	rows, err := s.pool.Query(ctx, query, deadline)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar empréstimos a vencer: %w", err)
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		var l models.Loan
		if err := rows.Scan(&l.ID, &l.Phone, &l.Amount, &l.DueAt, &l.Paid, &l.CreatedAt); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
