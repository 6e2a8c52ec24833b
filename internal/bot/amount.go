package bot

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// First numeral wins: digits, optionally a '.' or ',' separator and one or
// two decimal digits.
var reAmount = regexp.MustCompile(`[0-9]+(?:[.,][0-9]{1,2})?`)

// ExtractAmount pulls the first monetary value out of free text. The second
// return is false when the text carries no numeral at all.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	m := reAmount.FindString(text)
	if m == "" {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(strings.ReplaceAll(m, ",", "."))
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}
