package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peartree/finbot/internal/storage"
	"github.com/peartree/finbot/internal/storage/memory"
	"github.com/peartree/finbot/models"
)

func TestBalanceDerivesFromTransactionLog(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	entries := []struct {
		kind   models.TransactionKind
		amount int64
	}{
		{models.KindIncome, 1000},
		{models.KindExpense, 300},
		{models.KindInvest, 100},
		{models.KindLoan, 200},
	}
	for _, e := range entries {
		tx := &models.Transaction{
			Phone:      "A",
			Kind:       e.kind,
			Amount:     decimal.NewFromInt(e.amount),
			OccurredAt: time.Now(),
		}
		if err := store.SaveTransaction(ctx, tx); err != nil {
			t.Fatalf("transação: %v", err)
		}
	}

	balance, err := store.Balance(ctx, "A")
	if err != nil {
		t.Fatalf("saldo: %v", err)
	}
	// 1000 + 100 + 200 - 300
	if balance.StringFixed(2) != "1000.00" {
		t.Errorf("saldo = %s, esperava 1000.00", balance.StringFixed(2))
	}

	other, _ := store.Balance(ctx, "B")
	if !other.IsZero() {
		t.Errorf("saldo de outro telefone = %s, esperava zero", other)
	}
}

func TestPayOldestLoanIsFIFO(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	l1 := &models.Loan{Phone: "A", Amount: decimal.NewFromInt(200), CreatedAt: time.Now().Add(-time.Hour)}
	l2 := &models.Loan{Phone: "A", Amount: decimal.NewFromInt(500), CreatedAt: time.Now()}
	if err := store.CreateLoan(ctx, l1); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateLoan(ctx, l2); err != nil {
		t.Fatal(err)
	}

	paid, err := store.PayOldestLoan(ctx, "A")
	if err != nil {
		t.Fatalf("primeiro pagamento: %v", err)
	}
	if paid.ID != l1.ID {
		t.Errorf("pagou o empréstimo %d, esperava o mais antigo %d", paid.ID, l1.ID)
	}

	paid, err = store.PayOldestLoan(ctx, "A")
	if err != nil {
		t.Fatalf("segundo pagamento: %v", err)
	}
	if paid.ID != l2.ID {
		t.Errorf("pagou o empréstimo %d, esperava %d", paid.ID, l2.ID)
	}

	if _, err = store.PayOldestLoan(ctx, "A"); !errors.Is(err, storage.ErrNoPendingLoan) {
		t.Errorf("terceiro pagamento: err = %v, esperava ErrNoPendingLoan", err)
	}
}

func TestUnpaidLoansDueBy(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()

	soon := now.Add(12 * time.Hour)
	far := now.Add(72 * time.Hour)
	if err := store.CreateLoan(ctx, &models.Loan{Phone: "A", Amount: decimal.NewFromInt(200), DueAt: &soon}); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateLoan(ctx, &models.Loan{Phone: "B", Amount: decimal.NewFromInt(200), DueAt: &far}); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateLoan(ctx, &models.Loan{Phone: "C", Amount: decimal.NewFromInt(200)}); err != nil {
		t.Fatal(err)
	}

	due, err := store.UnpaidLoansDueBy(ctx, now.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("busca: %v", err)
	}
	if len(due) != 1 || due[0].Phone != "A" {
		t.Errorf("esperava só o empréstimo de A, achei %+v", due)
	}
}

func TestBillsDueBetweenSkipsNotified(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()

	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)

	b1 := &models.Bill{Phone: "A", Description: "luz", Amount: decimal.NewFromInt(99), DueDate: &tomorrow}
	b2 := &models.Bill{Phone: "A", Description: "aluguel", Amount: decimal.NewFromInt(900), DueDate: &nextWeek}
	b3 := &models.Bill{Phone: "A", Description: "internet", Amount: decimal.NewFromInt(120)}
	for _, b := range []*models.Bill{b1, b2, b3} {
		if err := store.CreateBill(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	due, err := store.BillsDueBetween(ctx, now, now.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("busca: %v", err)
	}
	if len(due) != 1 || due[0].Description != "luz" {
		t.Fatalf("esperava só a conta de luz, achei %+v", due)
	}

	if err := store.MarkBillNotified(ctx, due[0].ID); err != nil {
		t.Fatalf("marcação: %v", err)
	}
	due, _ = store.BillsDueBetween(ctx, now, now.AddDate(0, 0, 2))
	if len(due) != 0 {
		t.Errorf("conta notificada voltou na busca: %+v", due)
	}
}

func TestListBillsOrdersUndatedLast(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	later := time.Now().AddDate(0, 0, 10)
	sooner := time.Now().AddDate(0, 0, 2)
	bills := []*models.Bill{
		{Phone: "A", Description: "sem data", Amount: decimal.NewFromInt(10)},
		{Phone: "A", Description: "depois", Amount: decimal.NewFromInt(20), DueDate: &later},
		{Phone: "A", Description: "antes", Amount: decimal.NewFromInt(30), DueDate: &sooner},
	}
	for _, b := range bills {
		if err := store.CreateBill(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.ListBills(ctx, "A")
	if err != nil {
		t.Fatalf("lista: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("esperava 3 contas, achei %d", len(got))
	}
	order := []string{"antes", "depois", "sem data"}
	for i, want := range order {
		if got[i].Description != want {
			t.Errorf("posição %d = %q, esperava %q", i, got[i].Description, want)
		}
	}
}
