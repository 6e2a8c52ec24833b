package bot_test

import (
	"testing"

	"github.com/peartree/finbot/internal/bot"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"100,50", "100.50", true},
		{"100.50", "100.50", true},
		{"gastei 42 no mercado", "42.00", true},
		{"entrada salario 1500", "1500.00", true},
		{"paguei 10,5 ontem", "10.50", true},
		{"primeiro 7 depois 99", "7.00", true},
		{"sem numero nenhum", "0.00", false},
		{"", "0.00", false},
	}

	for _, tt := range tests {
		got, ok := bot.ExtractAmount(tt.text)
		if ok != tt.ok {
			t.Errorf("ExtractAmount(%q): ok = %v, esperava %v", tt.text, ok, tt.ok)
			continue
		}
		if got.StringFixed(2) != tt.want {
			t.Errorf("ExtractAmount(%q) = %s, esperava %s", tt.text, got.StringFixed(2), tt.want)
		}
	}
}

func TestExtractAmountCommaAndPeriodAgree(t *testing.T) {
	comma, ok1 := bot.ExtractAmount("100,50")
	period, ok2 := bot.ExtractAmount("100.50")
	if !ok1 || !ok2 {
		t.Fatal("ambos os formatos deviam ser reconhecidos")
	}
	if !comma.Equal(period) {
		t.Errorf("vírgula e ponto divergem: %s vs %s", comma, period)
	}
}
