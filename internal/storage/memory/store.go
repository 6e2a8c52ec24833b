package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peartree/finbot/internal/storage"
	"github.com/peartree/finbot/models"
)

// Store is an in-memory LedgerStore. It backs the tests and serves as a
// throwaway ledger when no DATABASE_URL is configured.
type Store struct {
	mu           sync.Mutex
	transactions []models.Transaction
	loans        []models.Loan
	bills        []models.Bill
	nextID       int64
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

var _ storage.LedgerStore = (*Store)(nil)

func (s *Store) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) SaveTransaction(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = s.id()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	s.transactions = append(s.transactions, *tx)
	return nil
}

func (s *Store) Balance(_ context.Context, phone string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := decimal.Zero
	for _, tx := range s.transactions {
		if tx.Phone != phone {
			continue
		}
		if tx.Kind.IncomeLike() {
			balance = balance.Add(tx.Amount)
		} else {
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance, nil
}

func (s *Store) TotalsByKindSince(_ context.Context, phone string, since time.Time) ([]models.KindTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sumByKind(s.transactions, phone, func(tx models.Transaction) bool {
		return !tx.OccurredAt.Before(since)
	}), nil
}

func (s *Store) TotalsByKindInMonth(_ context.Context, phone string, year int, month time.Month) ([]models.KindTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sumByKind(s.transactions, phone, func(tx models.Transaction) bool {
		return tx.OccurredAt.Year() == year && tx.OccurredAt.Month() == month
	}), nil
}

func sumByKind(txs []models.Transaction, phone string, keep func(models.Transaction) bool) []models.KindTotal {
	byKind := make(map[models.TransactionKind]decimal.Decimal)
	for _, tx := range txs {
		if tx.Phone != phone || !keep(tx) {
			continue
		}
		byKind[tx.Kind] = byKind[tx.Kind].Add(tx.Amount)
	}

	var totals []models.KindTotal
	for _, kind := range []models.TransactionKind{models.KindIncome, models.KindExpense, models.KindInvest, models.KindLoan} {
		if total, ok := byKind[kind]; ok {
			totals = append(totals, models.KindTotal{Kind: kind, Total: total})
		}
	}
	return totals
}

func (s *Store) TotalsByCategory(_ context.Context, phone string, kinds []models.TransactionKind) ([]models.CategoryTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[models.TransactionKind]bool, len(kinds))
	for _, k := range kinds {
		wanted[k] = true
	}

	byCategory := make(map[string]decimal.Decimal)
	var order []string
	for _, tx := range s.transactions {
		if tx.Phone != phone || !wanted[tx.Kind] {
			continue
		}
		if _, ok := byCategory[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
	}

	totals := make([]models.CategoryTotal, 0, len(order))
	for _, c := range order {
		totals = append(totals, models.CategoryTotal{Category: c, Total: byCategory[c]})
	}
	return totals, nil
}

func (s *Store) PhonesWithTransactions(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var phones []string
	for _, tx := range s.transactions {
		if !seen[tx.Phone] {
			seen[tx.Phone] = true
			phones = append(phones, tx.Phone)
		}
	}
	return phones, nil
}

func (s *Store) CreateLoan(_ context.Context, loan *models.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan.ID = s.id()
	if loan.CreatedAt.IsZero() {
		loan.CreatedAt = time.Now()
	}
	s.loans = append(s.loans, *loan)
	return nil
}

// PayOldestLoan settles the oldest unpaid loan under the store lock, which
// gives the same atomicity the SQL conditional update gives in production.
func (s *Store) PayOldestLoan(_ context.Context, phone string) (*models.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldest := -1
	for i, l := range s.loans {
		if l.Phone != phone || l.Paid {
			continue
		}
		if oldest < 0 || l.CreatedAt.Before(s.loans[oldest].CreatedAt) {
			oldest = i
		}
	}
	if oldest < 0 {
		return nil, storage.ErrNoPendingLoan
	}

	s.loans[oldest].Paid = true
	paid := s.loans[oldest]
	return &paid, nil
}

func (s *Store) UnpaidLoansDueBy(_ context.Context, deadline time.Time) ([]models.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []models.Loan
	for _, l := range s.loans {
		if l.Paid || l.DueAt == nil {
			continue
		}
		if l.DueAt.Before(deadline) {
			due = append(due, l)
		}
	}
	return due, nil
}

func (s *Store) CreateBill(_ context.Context, bill *models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill.ID = s.id()
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now()
	}
	s.bills = append(s.bills, *bill)
	return nil
}

func (s *Store) ListBills(_ context.Context, phone string) ([]models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bills []models.Bill
	for _, b := range s.bills {
		if b.Phone == phone {
			bills = append(bills, b)
		}
	}
	// due date ascending, undated last
	sortBills(bills)
	return bills, nil
}

func sortBills(bills []models.Bill) {
	for i := 1; i < len(bills); i++ {
		for j := i; j > 0 && billLess(bills[j], bills[j-1]); j-- {
			bills[j], bills[j-1] = bills[j-1], bills[j]
		}
	}
}

func billLess(a, b models.Bill) bool {
	switch {
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	case !a.DueDate.Equal(*b.DueDate):
		return a.DueDate.Before(*b.DueDate)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func (s *Store) BillsDueBetween(_ context.Context, from, to time.Time) ([]models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fromDay := truncateDay(from)
	toDay := truncateDay(to)

	var due []models.Bill
	for _, b := range s.bills {
		if b.Notified || b.DueDate == nil {
			continue
		}
		d := truncateDay(*b.DueDate)
		if !d.Before(fromDay) && !d.After(toDay) {
			due = append(due, b)
		}
	}
	return due, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *Store) MarkBillNotified(_ context.Context, billID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bills {
		if s.bills[i].ID == billID {
			s.bills[i].Notified = true
			return nil
		}
	}
	return nil
}
