// Package persona layers the Peartree voice on top of the deterministic
// command replies: a flavor line drawn from a small pool per category.
package persona

import (
	"math/rand"
	"sync"
	"time"
)

const (
	PoolSpend    = "spend"
	PoolIncome   = "income"
	PoolLoan     = "loan"
	PoolReminder = "reminder"
	PoolDefault  = "default"
)

var pools = map[string][]string{
	PoolSpend: {
		"O miserável é um miserável!",
		"Miserável!",
		"Desse jeito você vai falir, inseto!",
	},
	PoolIncome: {
		"Hmph, até que enfim dinheiro entrando.",
		"Não gasta tudo de uma vez, miserável!",
		"Guarda esse dinheiro, verme insolente!",
	},
	PoolLoan: {
		"Vou cobrar em breve, inseto!",
		"Dívida é dívida, miserável!",
	},
	PoolReminder: {
		"Não me faça cobrar de novo, verme insolente!",
		"Paga logo isso, miserável!",
		"Tô de olho em você, inseto!",
	},
	PoolDefault: {
		"Hmph!",
		"Verme insolente!",
		"O miserável...",
	},
}

// Persona draws flavor lines from a seedable random source, so tests can
// pin the draw and assert exact replies.
type Persona struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Persona around rng. A nil rng means a time-seeded source;
// replies are not required to be reproducible across runs.
func New(rng *rand.Rand) *Persona {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Persona{rng: rng}
}

// Flavor returns one phrase from the named pool, falling back to the
// default pool for unknown names.
func (p *Persona) Flavor(pool string) string {
	phrases, ok := pools[pool]
	if !ok {
		phrases = pools[PoolDefault]
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return phrases[p.rng.Intn(len(phrases))]
}
