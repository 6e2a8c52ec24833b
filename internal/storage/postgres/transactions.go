package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peartree/finbot/models"
)

func (s *Store) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (phone, kind, amount, category, note, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query,
		tx.Phone,
		tx.Kind,
		tx.Amount,
		tx.Category,
		tx.Note,
		tx.OccurredAt).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao registrar transação: %w", err)
	}
	return nil
}

func (s *Store) Balance(ctx context.Context, phone string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'expense' THEN -amount ELSE amount END), 0)
		FROM transactions
		WHERE phone = $1`

	var balance decimal.Decimal
	if err := s.pool.QueryRow(ctx, query, phone).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("erro ao calcular saldo: %w", err)
	}
	return balance, nil
}

func (s *Store) TotalsByKindSince(ctx context.Context, phone string, since time.Time) ([]models.KindTotal, error) {
	query := `
		SELECT kind, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE phone = $1 AND occurred_at >= $2
		GROUP BY kind`

	rows, err := s.pool.Query(ctx, query, phone, since)
	if err != nil {
		return nil, fmt.Errorf("erro no relatório por período: %w", err)
	}
	defer rows.Close()

	var totals []models.KindTotal
	for rows.Next() {
		var t models.KindTotal
		if err := rows.Scan(&t.Kind, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *Store) TotalsByKindInMonth(ctx context.Context, phone string, year int, month time.Month) ([]models.KindTotal, error) {
	query := `
		SELECT kind, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE phone = $1
		  AND EXTRACT(YEAR FROM occurred_at) = $2
		  AND EXTRACT(MONTH FROM occurred_at) = $3
		GROUP BY kind`

	rows, err := s.pool.Query(ctx, query, phone, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("erro no relatório mensal: %w", err)
	}
	defer rows.Close()

	var totals []models.KindTotal
	for rows.Next() {
		var t models.KindTotal
		if err := rows.Scan(&t.Kind, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *Store) TotalsByCategory(ctx context.Context, phone string, kinds []models.TransactionKind) ([]models.CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE phone = $1 AND kind = ANY($2)
		GROUP BY category
		ORDER BY category`

	ks := make([]string, len(kinds))
	for i, k := range kinds {
		ks[i] = string(k)
	}

	rows, err := s.pool.Query(ctx, query, phone, ks)
	if err != nil {
		return nil, fmt.Errorf("erro no relatório por categoria: %w", err)
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var t models.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *Store) PhonesWithTransactions(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT phone FROM transactions ORDER BY phone`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar telefones: %w", err)
	}
	defer rows.Close()

	var phones []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}
