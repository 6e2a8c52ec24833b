package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/peartree/finbot/models"
)

func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) error {
	query := `
		INSERT INTO bills (phone, description, amount, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, notified, created_at`

	err := s.pool.QueryRow(ctx, query,
		bill.Phone,
		bill.Description,
		bill.Amount,
		bill.DueDate).Scan(&bill.ID, &bill.Notified, &bill.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao registrar conta: %w", err)
	}
	return nil
}

func (s *Store) ListBills(ctx context.Context, phone string) ([]models.Bill, error) {
	query := `
		SELECT id, phone, description, amount, due_date, notified, created_at
		FROM bills
		WHERE phone = $1
		ORDER BY due_date ASC NULLS LAST, created_at`

	rows, err := s.pool.Query(ctx, query, phone)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar contas: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.Phone, &b.Description, &b.Amount, &b.DueDate, &b.Notified, &b.CreatedAt); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// BillsDueBetween returns bills not yet notified whose due date falls inside
// [from, to], date precision.
func (s *Store) BillsDueBetween(ctx context.Context, from, to time.Time) ([]models.Bill, error) {
	query := `
		SELECT id, phone, description, amount, due_date, notified, created_at
		FROM bills
		WHERE NOT notified AND due_date IS NOT NULL AND due_date BETWEEN $1::date AND $2::date
		ORDER BY due_date`

	rows, err := s.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar contas a vencer: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.Phone, &b.Description, &b.Amount, &b.DueDate, &b.Notified, &b.CreatedAt); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (s *Store) MarkBillNotified(ctx context.Context, billID int64) error {
	result, err := s.pool.Exec(ctx, `UPDATE bills SET notified = TRUE WHERE id = $1`, billID)
	if err != nil {
		return fmt.Errorf("erro ao marcar conta notificada: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("conta com ID %d não encontrada", billID)
	}
	return nil
}
