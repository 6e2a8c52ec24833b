package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bill struct {
	ID          int64           `json:"id" db:"id"`
	Phone       string          `json:"phone" db:"phone"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	DueDate     *time.Time      `json:"due_date" db:"due_date"`
	Notified    bool            `json:"notified" db:"notified"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
