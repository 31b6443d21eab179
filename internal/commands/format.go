package commands

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// money formats d as "$1,234.50".
func money(d decimal.Decimal) string {
	r := d.Abs().Round(2)
	_, cents, _ := strings.Cut(r.StringFixed(2), ".")
	sign := ""
	if d.IsNegative() && !r.IsZero() {
		sign = "-"
	}
	return sign + "$" + humanize.Comma(r.IntPart()) + "." + cents
}

// bar renders value as a run of '#' scaled against peak.
func bar(value, peak decimal.Decimal, width int) string {
	if peak.IsZero() || value.IsZero() {
		return ""
	}
	n := int(value.Div(peak).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	return strings.Repeat("#", n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
