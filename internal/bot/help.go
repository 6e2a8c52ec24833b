package bot

// helpReply enumerates every trigger phrase the classifier recognizes.
// Returned for anything that matched nothing.
const helpReply = "😤 Fale direito comigo, inseto! Use comandos como: " +
	"oi, saldo, entrada salario 1500, entrada 50, " +
	"gastei mercado, gastei moto, gastei outros, gastei lazer, gastei 25,90, " +
	"investir, emprestimo seus, emprestimo terceiros, pagar, " +
	"conta luz 99,90 10/12/2025, contas, " +
	"relatorio semanal, relatorio mensal, relatorio gastos, relatorio entradas."
