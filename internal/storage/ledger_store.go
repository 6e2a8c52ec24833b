package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peartree/finbot/models"
)

// ErrNoPendingLoan is returned by PayOldestLoan when the phone has no
// unpaid loan. Callers report it to the user, it is not a failure.
var ErrNoPendingLoan = errors.New("nenhum empréstimo pendente")

// LedgerStore is the single serialization point of the bot: the webhook
// executor and the reminder jobs share it. Implementations must keep
// PayOldestLoan atomic (find oldest unpaid + mark paid in one step) so two
// concurrent "pagar" commands cannot settle the same loan twice.
type LedgerStore interface {
	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	Balance(ctx context.Context, phone string) (decimal.Decimal, error)
	TotalsByKindSince(ctx context.Context, phone string, since time.Time) ([]models.KindTotal, error)
	TotalsByKindInMonth(ctx context.Context, phone string, year int, month time.Month) ([]models.KindTotal, error)
	TotalsByCategory(ctx context.Context, phone string, kinds []models.TransactionKind) ([]models.CategoryTotal, error)
	PhonesWithTransactions(ctx context.Context) ([]string, error)

	CreateLoan(ctx context.Context, loan *models.Loan) error
	PayOldestLoan(ctx context.Context, phone string) (*models.Loan, error)
	UnpaidLoansDueBy(ctx context.Context, deadline time.Time) ([]models.Loan, error)

	CreateBill(ctx context.Context, bill *models.Bill) error
	ListBills(ctx context.Context, phone string) ([]models.Bill, error)
	BillsDueBetween(ctx context.Context, from, to time.Time) ([]models.Bill, error)
	MarkBillNotified(ctx context.Context, billID int64) error
}
