package view

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

// FormatAmount renders an exact decimal amount with two digits, halves
// rounded away from zero. Rounding happens only here, stored values stay
// exact.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatMoney renders an amount following the currency's display
// settings: optional symbol, symbol position and thousand separator.
func FormatMoney(d decimal.Decimal, c model.Currency) string {
	s := FormatAmount(d)

	if c.ThousandSep {
		s = groupThousands(s, " ")
	}

	if !c.ShowSymbol {
		return s
	}

	symbol := c.FormatSymbol
	if symbol == "" {
		symbol = c.Symbol
	}

	if c.SymbolBefore {
		return symbol + " " + s
	}

	return s + " " + symbol
}

func groupThousands(s, sep string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder

	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(sep)
		}

		b.WriteRune(r)
	}

	out := b.String()
	if fracPart != "" {
		out += "." + fracPart
	}

	if neg {
		out = "-" + out
	}

	return out
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
