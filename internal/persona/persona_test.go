package persona_test

import (
	"math/rand"
	"testing"

	"github.com/peartree/finbot/internal/persona"
)

func TestFlavorIsDeterministicWithFixedSeed(t *testing.T) {
	a := persona.New(rand.New(rand.NewSource(42)))
	b := persona.New(rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		got, want := a.Flavor(persona.PoolSpend), b.Flavor(persona.PoolSpend)
		if got != want {
			t.Fatalf("sorteio %d divergiu: %q vs %q", i, got, want)
		}
	}
}

func TestFlavorNeverEmpty(t *testing.T) {
	p := persona.New(rand.New(rand.NewSource(7)))
	for _, pool := range []string{persona.PoolSpend, persona.PoolIncome, persona.PoolLoan, persona.PoolReminder, persona.PoolDefault, "inexistente"} {
		if p.Flavor(pool) == "" {
			t.Errorf("pool %q devolveu frase vazia", pool)
		}
	}
}
