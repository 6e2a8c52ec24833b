package models

import "github.com/shopspring/decimal"

// KindTotal is one row of an aggregated report window (weekly/monthly).
type KindTotal struct {
	Kind  TransactionKind `json:"kind" db:"kind"`
	Total decimal.Decimal `json:"total" db:"total"`
}

// CategoryTotal is one row of a per-category report.
type CategoryTotal struct {
	Category string          `json:"category" db:"category"`
	Total    decimal.Decimal `json:"total" db:"total"`
}
