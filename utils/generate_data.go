package utils

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/peartree/finbot/internal/storage"
	"github.com/peartree/finbot/models"
)

var demoCategories = map[models.TransactionKind][]string{
	models.KindIncome:  {"Salario", "Extras"},
	models.KindExpense: {"Mercado", "Moto", "Outros", "Lazer"},
	models.KindInvest:  {"Extras"},
	models.KindLoan:    {"Emprestimos Seus", "Emprestimos para Terceiros"},
}

var demoKinds = []models.TransactionKind{
	models.KindIncome, models.KindExpense, models.KindInvest, models.KindLoan,
}

// GenerateDemoLedger fills the store with fake phones and transactions
// spread over the last 30 days. Handy for poking at reports locally.
func GenerateDemoLedger(ctx context.Context, store storage.LedgerStore, numPhones, perPhone int) error {
	for i := 0; i < numPhones; i++ {
		phone := "whatsapp:+55" + gofakeit.Numerify("###########")

		for j := 0; j < perPhone; j++ {
			kind := demoKinds[rand.Intn(len(demoKinds))]
			categories := demoCategories[kind]

			tx := &models.Transaction{
				Phone:      phone,
				Kind:       kind,
				Amount:     decimal.NewFromFloat(gofakeit.Price(5, 500)).Round(2),
				Category:   categories[rand.Intn(len(categories))],
				Note:       gofakeit.Sentence(4),
				OccurredAt: time.Now().AddDate(0, 0, -rand.Intn(30)),
			}
			if err := store.SaveTransaction(ctx, tx); err != nil {
				return fmt.Errorf("erro ao gerar transação de teste: %w", err)
			}
		}
	}
	return nil
}
