package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is a euro amount in integer cents. Pricing arithmetic stays in
// integers so repeated quotes for the same stay never drift.
type Cents int64

// Euros builds an amount from a whole number of euros.
func Euros(n int64) Cents { return Cents(n * 100) }

// ParseCents parses a decimal euro amount ("200", "200.5", "200.50")
// with at most two fractional digits.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" || len(frac) > 2 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	eur, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	c := eur * 100
	if frac != "" {
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		if len(frac) == 1 {
			f *= 10
		}
		c += f
	}
	if neg {
		c = -c
	}
	return Cents(c), nil
}

// String formats the amount in euros, omitting a zero fractional part.
func (c Cents) String() string {
	abs := int64(c)
	sign := ""
	if abs < 0 {
		sign, abs = "-", -abs
	}
	eur, rem := abs/100, abs%100
	if rem == 0 {
		return sign + strconv.FormatInt(eur, 10)
	}
	s := fmt.Sprintf("%s%d.%02d", sign, eur, rem)
	return strings.TrimSuffix(s, "0")
}

// MarshalJSON writes the amount as a JSON number in euros.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	parsed, err := ParseCents(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
