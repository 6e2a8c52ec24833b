package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peartree/finbot/internal/events"
	"github.com/peartree/finbot/internal/persona"
	"github.com/peartree/finbot/internal/storage"
	"github.com/peartree/finbot/models"
	eventmodels "github.com/peartree/finbot/models/events"
)

const errReply = "💥 Deu ruim no meu cofre, tente de novo mais tarde, miserável!"

// Fixed category lists for the zero-filled reports. A phone with no
// transactions in a category still gets its R$0.00 line.
var (
	expenseCategories = []string{"Mercado", "Moto", "Outros", "Lazer"}
	incomeCategories  = []string{"Salario", "Extras", "Emprestimos Seus", "Emprestimos para Terceiros"}

	incomeLikeKinds = []models.TransactionKind{models.KindIncome, models.KindInvest, models.KindLoan}
)

// Executor applies a classified command to the ledger and produces the
// Peartree reply. Every command is fully handled within a single call, there
// is no multi-turn session state.
type Executor struct {
	store     storage.LedgerStore
	persona   *persona.Persona
	publisher events.Publisher
	loanDue   time.Duration
	now       func() time.Time
}

func NewExecutor(store storage.LedgerStore, p *persona.Persona, publisher events.Publisher, loanDue time.Duration) *Executor {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Executor{
		store:     store,
		persona:   p,
		publisher: publisher,
		loanDue:   loanDue,
		now:       time.Now,
	}
}

// Handle interprets one inbound message from phone. Store failures never
// escape: the caller always gets a reply string and the webhook stays 200.
func (e *Executor) Handle(ctx context.Context, phone, text string) string {
	cmd := Classify(text)

	switch cmd.Kind {
	case CmdGreet:
		return "👋 Hmph! Miserável, aqui é o Peartree, seu bot financeiro!"

	case CmdBalance:
		return e.balance(ctx, phone)

	case CmdIncomeSalary:
		return e.income(ctx, phone, cmd, "💵 Você recebeu um salário de R$%s. Agora seu saldo é R$%s.")

	case CmdIncome:
		return e.income(ctx, phone, cmd, "💵 Entrada de R$%s registrada. Agora seu saldo é R$%s.")

	case CmdExpenseCategory, CmdExpense:
		return e.expense(ctx, phone, cmd)

	case CmdInvest:
		return e.invest(ctx, phone, cmd)

	case CmdLoanSelf:
		return e.loanSelf(ctx, phone, cmd)

	case CmdLoanThirdParty:
		return e.loanThirdParty(ctx, phone, cmd)

	case CmdPayLoan:
		return e.payLoan(ctx, phone)

	case CmdReportWeekly:
		return e.reportWindow(ctx, phone, "📆 Relatório semanal:", weekly)

	case CmdReportMonthly:
		return e.reportWindow(ctx, phone, "🗓 Relatório mensal:", monthly)

	case CmdReportExpenses:
		return e.reportCategories(ctx, phone, "😡 Seus gastos por categoria:",
			expenseCategories, []models.TransactionKind{models.KindExpense})

	case CmdReportIncomes:
		return e.reportCategories(ctx, phone, "💵 Suas entradas por categoria:",
			incomeCategories, incomeLikeKinds)

	case CmdAddBill:
		return e.addBill(ctx, phone, cmd)

	case CmdListBills:
		return e.listBills(ctx, phone)

	default:
		return helpReply
	}
}

// record appends one transaction, publishes its event and returns the new
// balance. A missing amount already arrived here as zero: the command
// proceeds, it is never rejected.
func (e *Executor) record(ctx context.Context, phone string, kind models.TransactionKind, amount decimal.Decimal, category, note string) (decimal.Decimal, error) {
	tx := &models.Transaction{
		Phone:      phone,
		Kind:       kind,
		Amount:     amount,
		Category:   category,
		Note:       note,
		OccurredAt: e.now(),
	}
	if err := e.store.SaveTransaction(ctx, tx); err != nil {
		return decimal.Zero, err
	}

	if err := e.publisher.Publish(events.TopicTransactionRecorded, eventmodels.TransactionRecorded{
		EventID:       uuid.NewString(),
		TransactionID: tx.ID,
		Phone:         tx.Phone,
		Kind:          string(tx.Kind),
		Amount:        tx.Amount,
		Category:      tx.Category,
		OccurredAt:    tx.OccurredAt,
	}); err != nil {
		log.Printf("falha ao publicar evento da transação %d: %v", tx.ID, err)
	}

	return e.store.Balance(ctx, phone)
}

func (e *Executor) balance(ctx context.Context, phone string) string {
	balance, err := e.store.Balance(ctx, phone)
	if err != nil {
		log.Printf("saldo de %s: %v", phone, err)
		return errReply
	}
	return fmt.Sprintf("💰 Seu saldo atual é R$%s... verme insolente!", balance.StringFixed(2))
}

func (e *Executor) income(ctx context.Context, phone string, cmd Command, template string) string {
	balance, err := e.record(ctx, phone, models.KindIncome, cmd.Amount, cmd.Category, "")
	if err != nil {
		log.Printf("entrada de %s: %v", phone, err)
		return errReply
	}
	reply := fmt.Sprintf(template, cmd.Amount.StringFixed(2), balance.StringFixed(2))
	return reply + " " + e.persona.Flavor(persona.PoolIncome)
}

func (e *Executor) expense(ctx context.Context, phone string, cmd Command) string {
	balance, err := e.record(ctx, phone, models.KindExpense, cmd.Amount, cmd.Category, "")
	if err != nil {
		log.Printf("gasto de %s: %v", phone, err)
		return errReply
	}
	reply := fmt.Sprintf("😡 Você gastou R$%s em %s! Agora seu saldo é R$%s.",
		cmd.Amount.StringFixed(2), cmd.Category, balance.StringFixed(2))
	return reply + " " + e.persona.Flavor(persona.PoolSpend)
}

func (e *Executor) invest(ctx context.Context, phone string, cmd Command) string {
	balance, err := e.record(ctx, phone, models.KindInvest, cmd.Amount, cmd.Category, "")
	if err != nil {
		log.Printf("investimento de %s: %v", phone, err)
		return errReply
	}
	return fmt.Sprintf("💹 O miserável é um gênio! Você investiu R$%s. Saldo: R$%s",
		cmd.Amount.StringFixed(2), balance.StringFixed(2))
}

// loanSelf performs two writes: the loan transaction and the loan row. If
// the second fails after the first succeeded the ledger keeps an income
// entry with no loan attached, the same inconsistency window the reply
// masks with a generic error.
func (e *Executor) loanSelf(ctx context.Context, phone string, cmd Command) string {
	_, err := e.record(ctx, phone, models.KindLoan, cmd.Amount, cmd.Category, "")
	if err != nil {
		log.Printf("empréstimo de %s: %v", phone, err)
		return errReply
	}

	dueAt := e.now().Add(e.loanDue)
	loan := &models.Loan{Phone: phone, Amount: cmd.Amount, DueAt: &dueAt}
	if err := e.store.CreateLoan(ctx, loan); err != nil {
		log.Printf("registro do empréstimo de %s: %v", phone, err)
		return errReply
	}

	return fmt.Sprintf("💸 Você pegou um empréstimo de R$%s. Vou cobrar até %s, inseto!",
		cmd.Amount.StringFixed(2), dueAt.Format("02/01/2006"))
}

func (e *Executor) loanThirdParty(ctx context.Context, phone string, cmd Command) string {
	_, err := e.record(ctx, phone, models.KindLoan, cmd.Amount, cmd.Category, "")
	if err != nil {
		log.Printf("empréstimo a terceiros de %s: %v", phone, err)
		return errReply
	}
	return fmt.Sprintf("💸 Você deu um empréstimo de R$%s para terceiros! Agora, aguente as consequências!",
		cmd.Amount.StringFixed(2))
}

// payLoan settles the oldest unpaid loan and appends the compensating
// expense, so the derived balance reflects the repayment.
func (e *Executor) payLoan(ctx context.Context, phone string) string {
	loan, err := e.store.PayOldestLoan(ctx, phone)
	if errors.Is(err, storage.ErrNoPendingLoan) {
		return "🤨 Não encontrei nenhum empréstimo pendente para você, verme insolente!"
	}
	if err != nil {
		log.Printf("pagamento de empréstimo de %s: %v", phone, err)
		return errReply
	}

	if _, err := e.record(ctx, phone, models.KindExpense, loan.Amount, "Pagamento Emprestimo", ""); err != nil {
		log.Printf("baixa do empréstimo %d de %s: %v", loan.ID, phone, err)
		return errReply
	}

	return fmt.Sprintf("✅ Você pagou o empréstimo de R$%s. Hmph, pelo menos cumpriu sua parte!",
		loan.Amount.StringFixed(2))
}

type reportRange int

const (
	weekly reportRange = iota
	monthly
)

func (e *Executor) reportWindow(ctx context.Context, phone, header string, window reportRange) string {
	var (
		totals []models.KindTotal
		err    error
	)
	now := e.now()
	if window == weekly {
		totals, err = e.store.TotalsByKindSince(ctx, phone, now.AddDate(0, 0, -7))
	} else {
		totals, err = e.store.TotalsByKindInMonth(ctx, phone, now.Year(), now.Month())
	}
	if err != nil {
		log.Printf("relatório de %s: %v", phone, err)
		return errReply
	}

	byKind := make(map[models.TransactionKind]decimal.Decimal)
	for _, t := range totals {
		byKind[t.Kind] = t.Total
	}

	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "\n😡 Gastos: R$%s", byKind[models.KindExpense].StringFixed(2))
	fmt.Fprintf(&b, "\n💹 Investimentos: R$%s", byKind[models.KindInvest].StringFixed(2))
	fmt.Fprintf(&b, "\n💸 Empréstimos: R$%s", byKind[models.KindLoan].StringFixed(2))
	return b.String()
}

func (e *Executor) reportCategories(ctx context.Context, phone, header string, fixed []string, kinds []models.TransactionKind) string {
	totals, err := e.store.TotalsByCategory(ctx, phone, kinds)
	if err != nil {
		log.Printf("relatório por categoria de %s: %v", phone, err)
		return errReply
	}

	byCategory := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		byCategory[t.Category] = t.Total
	}

	var b strings.Builder
	b.WriteString(header)
	listed := make(map[string]bool, len(fixed))
	for _, c := range fixed {
		listed[c] = true
		fmt.Fprintf(&b, "\n%s: R$%s", c, byCategory[c].StringFixed(2))
	}
	// Categories outside the fixed set (e.g. loan repayments) still show up.
	for _, t := range totals {
		if !listed[t.Category] {
			fmt.Fprintf(&b, "\n%s: R$%s", t.Category, t.Total.StringFixed(2))
		}
	}
	return b.String()
}

func (e *Executor) addBill(ctx context.Context, phone string, cmd Command) string {
	bill := &models.Bill{
		Phone:       phone,
		Description: cmd.Description,
		Amount:      cmd.Amount,
		DueDate:     cmd.DueDate,
	}
	if err := e.store.CreateBill(ctx, bill); err != nil {
		log.Printf("conta de %s: %v", phone, err)
		return errReply
	}

	if bill.DueDate != nil {
		return fmt.Sprintf("🧾 Conta \"%s\" de R$%s anotada. Vence em %s, não esquece, miserável!",
			bill.Description, bill.Amount.StringFixed(2), bill.DueDate.Format("02/01/2006"))
	}
	return fmt.Sprintf("🧾 Conta \"%s\" de R$%s anotada, sem data de vencimento.",
		bill.Description, bill.Amount.StringFixed(2))
}

func (e *Executor) listBills(ctx context.Context, phone string) string {
	bills, err := e.store.ListBills(ctx, phone)
	if err != nil {
		log.Printf("contas de %s: %v", phone, err)
		return errReply
	}
	if len(bills) == 0 {
		return "🤨 Nenhuma conta anotada, verme insolente!"
	}

	var b strings.Builder
	b.WriteString("📋 Suas contas:")
	for _, bill := range bills {
		if bill.DueDate != nil {
			fmt.Fprintf(&b, "\n• %s — R$%s (vence %s)", bill.Description, bill.Amount.StringFixed(2), bill.DueDate.Format("02/01/2006"))
		} else {
			fmt.Fprintf(&b, "\n• %s — R$%s (sem data)", bill.Description, bill.Amount.StringFixed(2))
		}
	}
	return b.String()
}
