package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Loan struct {
	ID        int64           `json:"id" db:"id"`
	Phone     string          `json:"phone" db:"phone"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	DueAt     *time.Time      `json:"due_at" db:"due_at"`
	Paid      bool            `json:"paid" db:"paid"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
