package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
	KindInvest  TransactionKind = "invest"
	KindLoan    TransactionKind = "loan"
)

// IncomeLike reports whether the kind adds to the balance.
// Only expenses subtract; income, investments and loans all credit the ledger.
func (k TransactionKind) IncomeLike() bool {
	return k != KindExpense
}

type Transaction struct {
	ID         int64           `json:"id" db:"id"`
	Phone      string          `json:"phone" db:"phone"`
	Kind       TransactionKind `json:"kind" db:"kind"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	Category   string          `json:"category" db:"category"`
	Note       string          `json:"note" db:"note"`
	OccurredAt time.Time       `json:"occurred_at" db:"occurred_at"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
