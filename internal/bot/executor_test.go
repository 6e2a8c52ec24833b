package bot

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/peartree/finbot/internal/persona"
	"github.com/peartree/finbot/internal/storage/memory"
)

func newTestExecutor() (*Executor, *memory.Store) {
	store := memory.NewStore()
	exec := NewExecutor(store, persona.New(rand.New(rand.NewSource(1))), nil, 24*time.Hour)
	return exec, store
}

func TestSalaryThenCategoryExpense(t *testing.T) {
	exec, store := newTestExecutor()
	ctx := context.Background()

	reply := exec.Handle(ctx, "A", "entrada salario 1500")
	if !strings.Contains(reply, "1500.00") {
		t.Errorf("resposta do salário sem o valor: %q", reply)
	}

	balance, err := store.Balance(ctx, "A")
	if err != nil {
		t.Fatalf("saldo: %v", err)
	}
	if balance.StringFixed(2) != "1500.00" {
		t.Errorf("saldo = %s, esperava 1500.00", balance.StringFixed(2))
	}

	reply = exec.Handle(ctx, "A", "gastei mercado")
	if !strings.Contains(reply, "1450.00") {
		t.Errorf("resposta do gasto sem o novo saldo: %q", reply)
	}

	balance, _ = store.Balance(ctx, "A")
	if balance.StringFixed(2) != "1450.00" {
		t.Errorf("saldo = %s, esperava 1450.00", balance.StringFixed(2))
	}
}

func TestBalanceIsReadOnlyAndIdempotent(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := context.Background()

	exec.Handle(ctx, "A", "entrada salario 100")
	first := exec.Handle(ctx, "A", "saldo")
	second := exec.Handle(ctx, "A", "saldo")
	if !strings.Contains(first, "100.00") || !strings.Contains(second, "100.00") {
		t.Errorf("saldo mudou entre leituras: %q / %q", first, second)
	}
}

func TestBalancesArePartitionedByPhone(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := context.Background()

	exec.Handle(ctx, "A", "entrada salario 100")
	reply := exec.Handle(ctx, "B", "saldo")
	if !strings.Contains(reply, "0.00") {
		t.Errorf("saldo de B deveria ser zero: %q", reply)
	}
}

func TestPayLoanFIFO(t *testing.T) {
	exec, store := newTestExecutor()
	ctx := context.Background()

	exec.Handle(ctx, "A", "emprestimo seus")
	// created_at precisa distinguir os dois empréstimos
	time.Sleep(2 * time.Millisecond)
	exec.Handle(ctx, "A", "emprestimo seus")

	balance, _ := store.Balance(ctx, "A")
	if balance.StringFixed(2) != "400.00" {
		t.Fatalf("saldo após dois empréstimos = %s, esperava 400.00", balance.StringFixed(2))
	}

	first := exec.Handle(ctx, "A", "pagar")
	if !strings.Contains(first, "200.00") {
		t.Errorf("primeiro pagamento: %q", first)
	}
	second := exec.Handle(ctx, "A", "pagar")
	if !strings.Contains(second, "200.00") {
		t.Errorf("segundo pagamento: %q", second)
	}
	third := exec.Handle(ctx, "A", "pagar")
	if !strings.Contains(third, "pendente") {
		t.Errorf("terceiro pagamento deveria dizer que não há pendência: %q", third)
	}

	// pagamento gera transação compensatória, saldo volta a zero
	balance, _ = store.Balance(ctx, "A")
	if balance.StringFixed(2) != "0.00" {
		t.Errorf("saldo após quitar tudo = %s, esperava 0.00", balance.StringFixed(2))
	}
}

func TestLoanSelfCreatesDurableReminder(t *testing.T) {
	exec, store := newTestExecutor()
	ctx := context.Background()

	exec.Handle(ctx, "A", "emprestimo seus")

	loans, err := store.UnpaidLoansDueBy(ctx, time.Now().Add(48*time.Hour))
	if err != nil {
		t.Fatalf("empréstimos: %v", err)
	}
	if len(loans) != 1 {
		t.Fatalf("esperava 1 empréstimo com vencimento, achei %d", len(loans))
	}
	if loans[0].DueAt == nil {
		t.Fatal("empréstimo sem due_at")
	}
}

func TestLoanThirdPartyHasNoLoanRecord(t *testing.T) {
	exec, store := newTestExecutor()
	ctx := context.Background()

	exec.Handle(ctx, "A", "emprestimo terceiros")

	if _, err := store.PayOldestLoan(ctx, "A"); err == nil {
		t.Error("empréstimo a terceiros não deveria criar registro de empréstimo")
	}

	balance, _ := store.Balance(ctx, "A")
	if balance.StringFixed(2) != "300.00" {
		t.Errorf("saldo = %s, esperava 300.00", balance.StringFixed(2))
	}
}

func TestCategoryReportZeroFill(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := context.Background()

	exec.Handle(ctx, "A", "gastei mercado")
	report := exec.Handle(ctx, "A", "relatorio gastos")

	if !strings.Contains(report, "Mercado: R$50.00") {
		t.Errorf("relatório sem o gasto do mercado: %q", report)
	}
	for _, line := range []string{"Moto: R$0.00", "Outros: R$0.00", "Lazer: R$0.00"} {
		if !strings.Contains(report, line) {
			t.Errorf("relatório sem linha zerada %q: %q", line, report)
		}
	}
}

func TestIncomeCategoryReport(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := context.Background()

	exec.Handle(ctx, "A", "entrada salario 1000")
	exec.Handle(ctx, "A", "investir")
	report := exec.Handle(ctx, "A", "relatorio entradas")

	if !strings.Contains(report, "Salario: R$1000.00") {
		t.Errorf("relatório sem salário: %q", report)
	}
	if !strings.Contains(report, "Extras: R$100.00") {
		t.Errorf("relatório sem investimento: %q", report)
	}
	if !strings.Contains(report, "Emprestimos Seus: R$0.00") {
		t.Errorf("relatório sem linha zerada de empréstimos: %q", report)
	}
}

func TestWeeklyReportAggregates(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := context.Background()

	exec.Handle(ctx, "A", "gastei lazer")
	exec.Handle(ctx, "A", "investir")
	exec.Handle(ctx, "A", "emprestimo terceiros")

	report := exec.Handle(ctx, "A", "relatorio semanal")
	if !strings.Contains(report, "Gastos: R$150.00") {
		t.Errorf("gastos errados: %q", report)
	}
	if !strings.Contains(report, "Investimentos: R$100.00") {
		t.Errorf("investimentos errados: %q", report)
	}
	if !strings.Contains(report, "Empréstimos: R$300.00") {
		t.Errorf("empréstimos errados: %q", report)
	}
}

func TestMonthlyReportIgnoresOtherMonths(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := context.Background()

	// transação antiga, fora do mês corrente
	old := exec.now().AddDate(0, -2, 0)
	exec.now = func() time.Time { return old }
	exec.Handle(ctx, "A", "gastei mercado")

	exec.now = time.Now
	exec.Handle(ctx, "A", "gastei moto")

	report := exec.Handle(ctx, "A", "relatorio mensal")
	if !strings.Contains(report, "Gastos: R$100.00") {
		t.Errorf("relatório mensal deveria conter só o gasto do mês: %q", report)
	}
}

func TestBillsRoundTrip(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := context.Background()

	empty := exec.Handle(ctx, "A", "contas")
	if !strings.Contains(empty, "Nenhuma conta") {
		t.Errorf("lista vazia: %q", empty)
	}

	added := exec.Handle(ctx, "A", "conta luz 99,90 10/12/2026")
	if !strings.Contains(added, "luz") || !strings.Contains(added, "99.90") {
		t.Errorf("confirmação da conta: %q", added)
	}

	listed := exec.Handle(ctx, "A", "contas")
	if !strings.Contains(listed, "luz") || !strings.Contains(listed, "10/12/2026") {
		t.Errorf("lista de contas: %q", listed)
	}
}

func TestUnknownCommandGetsHelp(t *testing.T) {
	exec, _ := newTestExecutor()

	reply := exec.Handle(context.Background(), "A", "xyz")
	for _, trigger := range []string{"saldo", "gastei mercado", "investir", "pagar", "relatorio semanal", "contas"} {
		if !strings.Contains(reply, trigger) {
			t.Errorf("ajuda sem o comando %q: %q", trigger, reply)
		}
	}
}

func TestMissingAmountRecordsZero(t *testing.T) {
	exec, store := newTestExecutor()
	ctx := context.Background()

	reply := exec.Handle(ctx, "A", "gastei tudo")
	if !strings.Contains(reply, "0.00") {
		t.Errorf("gasto sem valor deveria registrar zero: %q", reply)
	}
	balance, _ := store.Balance(ctx, "A")
	if !balance.IsZero() {
		t.Errorf("saldo = %s, esperava zero", balance)
	}
}
