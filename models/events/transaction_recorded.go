package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionRecorded struct {
	EventID       string          `json:"event_id"`
	TransactionID int64           `json:"transaction_id"`
	Phone         string          `json:"phone"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
