// Package moneyfmt renders whole-unit monetary amounts with thousands
// separators for terminal display.
package moneyfmt

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders d as a whole-unit amount with comma separators,
// e.g. 1234567 -> "1,234,567". Fractions are truncated.
func Format(d decimal.Decimal) string {
	s := d.Truncate(0).String()

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
