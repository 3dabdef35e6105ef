// Package price parses operator-typed price strings that use '.' or ',' as thousands separators.
package price

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ParseStrict converts "1.500.000" to 1500000 and "1,500,000.50" to 1500000.50.
// A separator followed by at least three digits is a thousands separator;
// any other comma is a decimal comma.
func ParseStrict(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("empty price")
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c == '.' || c == ',') && digitsAhead(s[i+1:]) >= 3 {
			continue
		}
		if c == ',' {
			c = '.'
		}
		b.WriteByte(c)
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid price %q", s)
	}
	return d, nil
}

// Parse is ParseStrict returning zero for anything unparseable.
func Parse(s string) decimal.Decimal {
	d, err := ParseStrict(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func digitsAhead(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
