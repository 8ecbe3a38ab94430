package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a statement amount. Bank exports use either a comma
// or a dot as the decimal separator and may group thousands with spaces or
// dots: "1 234,56", "1.234,56" and "-200.00" all parse.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, " ", "")
	clean = strings.ReplaceAll(clean, " ", "")

	if i := strings.LastIndexByte(clean, ','); i >= 0 {
		// Comma decimal separator: dots are thousands grouping.
		clean = strings.ReplaceAll(clean[:i], ".", "") + "." + clean[i+1:]
	}

	return decimal.NewFromString(clean)
}
