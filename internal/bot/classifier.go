package bot

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CommandKind string

const (
	CmdGreet           CommandKind = "greet"
	CmdBalance         CommandKind = "balance"
	CmdIncomeSalary    CommandKind = "income_salary"
	CmdExpenseCategory CommandKind = "expense_category"
	CmdInvest          CommandKind = "invest"
	CmdLoanSelf        CommandKind = "loan_self"
	CmdLoanThirdParty  CommandKind = "loan_third_party"
	CmdPayLoan         CommandKind = "pay_loan"
	CmdReportWeekly    CommandKind = "report_weekly"
	CmdReportMonthly   CommandKind = "report_monthly"
	CmdReportExpenses  CommandKind = "report_expense_category"
	CmdReportIncomes   CommandKind = "report_income_category"
	CmdIncome          CommandKind = "income"
	CmdExpense         CommandKind = "expense"
	CmdAddBill         CommandKind = "addbill"
	CmdListBills       CommandKind = "listbills"
	CmdUnknown         CommandKind = "unknown"
)

// Command is the result of classification: the kind plus whatever the
// trigger already resolved (fixed category amount, extracted value, bill
// fields).
type Command struct {
	Kind        CommandKind
	Amount      decimal.Decimal
	HasAmount   bool
	Category    string
	Description string
	DueDate     *time.Time
}

// Fixed amounts bound to the category trigger phrases. These are constants
// of the trigger, never extracted from the message.
var expenseTriggers = []struct {
	phrase   string
	category string
	amount   int64
}{
	{"gastei mercado", "Mercado", 50},
	{"gastei moto", "Moto", 100},
	{"gastei outros", "Outros", 30},
	{"gastei lazer", "Lazer", 150},
}

var (
	reSalary  = regexp.MustCompile(`entrada\s*salario\s*([0-9]+(?:[.,][0-9]{1,2})?)`)
	reOi      = regexp.MustCompile(`\boi\b`)
	reDateDMY = regexp.MustCompile(`\b([0-9]{1,2})[./-]([0-9]{1,2})[./-]([0-9]{4})\b`)
)

// Classify maps normalized message text to a command. Priority order
// matters: multi-word category triggers run before the generic "gastei",
// report triggers before the bare "pagar"/"entrada" fallbacks. First match
// wins.
func Classify(text string) Command {
	msg := strings.ToLower(strings.TrimSpace(text))

	switch {
	case strings.Contains(msg, "fala") || reOi.MatchString(msg):
		return Command{Kind: CmdGreet}

	case strings.Contains(msg, "saldo"):
		return Command{Kind: CmdBalance}
	}

	if m := reSalary.FindStringSubmatch(msg); m != nil {
		value, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "."))
		if err == nil {
			return Command{Kind: CmdIncomeSalary, Amount: value, HasAmount: true, Category: "Salario"}
		}
	}

	for _, t := range expenseTriggers {
		if strings.Contains(msg, t.phrase) {
			return Command{
				Kind:      CmdExpenseCategory,
				Amount:    decimal.NewFromInt(t.amount),
				HasAmount: true,
				Category:  t.category,
			}
		}
	}

	switch {
	case strings.Contains(msg, "investir"):
		amount, ok := ExtractAmount(msg)
		if !ok {
			amount = decimal.NewFromInt(100)
		}
		return Command{Kind: CmdInvest, Amount: amount, HasAmount: true, Category: "Extras"}

	case strings.Contains(msg, "emprestimo seus"):
		return Command{Kind: CmdLoanSelf, Amount: decimal.NewFromInt(200), HasAmount: true, Category: "Emprestimos Seus"}

	case strings.Contains(msg, "emprestimo terceiros"):
		return Command{Kind: CmdLoanThirdParty, Amount: decimal.NewFromInt(300), HasAmount: true, Category: "Emprestimos para Terceiros"}

	case strings.Contains(msg, "relatorio semanal"):
		return Command{Kind: CmdReportWeekly}

	case strings.Contains(msg, "relatorio mensal"):
		return Command{Kind: CmdReportMonthly}

	case strings.Contains(msg, "relatorio gastos"):
		return Command{Kind: CmdReportExpenses}

	case strings.Contains(msg, "relatorio entradas"):
		return Command{Kind: CmdReportIncomes}

	case strings.Contains(msg, "pagar"):
		return Command{Kind: CmdPayLoan}
	}

	// Generic free-amount commands extend the fixed trigger set above;
	// "entrada salario" and the "gastei <categoria>" phrases were already
	// consumed, so these only see the leftovers.
	switch {
	case strings.Contains(msg, "entrada"):
		amount, ok := ExtractAmount(msg)
		return Command{Kind: CmdIncome, Amount: amount, HasAmount: ok, Category: "Extras"}

	case strings.Contains(msg, "gastei"):
		amount, ok := ExtractAmount(msg)
		return Command{Kind: CmdExpense, Amount: amount, HasAmount: ok, Category: "Outros"}

	case strings.HasPrefix(msg, "conta "):
		return classifyBill(strings.TrimPrefix(msg, "conta "))

	case strings.Contains(msg, "contas"):
		return Command{Kind: CmdListBills}
	}

	return Command{Kind: CmdUnknown}
}

// classifyBill parses "conta <descrição> <valor> [dd/mm/aaaa]".
func classifyBill(rest string) Command {
	cmd := Command{Kind: CmdAddBill}

	if m := reDateDMY.FindStringSubmatch(rest); m != nil {
		dd, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		yy, _ := strconv.Atoi(m[3])
		due := time.Date(yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
		cmd.DueDate = &due
		rest = strings.TrimSpace(reDateDMY.ReplaceAllString(rest, ""))
	}

	if loc := reAmount.FindStringIndex(rest); loc != nil {
		raw := rest[loc[0]:loc[1]]
		if value, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ".")); err == nil {
			cmd.Amount = value
			cmd.HasAmount = true
		}
		rest = strings.TrimSpace(rest[:loc[0]] + rest[loc[1]:])
	}

	cmd.Description = strings.Join(strings.Fields(rest), " ")
	if cmd.Description == "" {
		cmd.Description = "conta"
	}
	return cmd
}
