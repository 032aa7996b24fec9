package utils

import (
	"strings"
	"unicode"
)

func NormalizeString(s string) string {
	return strings.TrimSpace(s)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips everything except digits and a leading +.
func NormalizePhone(phone string) string {
	cleaned := strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range cleaned {
		if i == 0 && r == '+' {
			b.WriteRune(r)
		} else if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidEmail checks for a local part and a dotted domain. Anything
// stricter belongs to the mail provider.
func IsValidEmail(email string) bool {
	normalized := NormalizeEmail(email)
	if strings.Count(normalized, "@") != 1 {
		return false
	}
	at := strings.IndexByte(normalized, '@')
	if at <= 0 || at == len(normalized)-1 {
		return false
	}
	domain := normalized[at+1:]
	return len(domain) > 2 && strings.Contains(domain, ".")
}

func IsValidPhone(phone string) bool {
	normalized := NormalizePhone(phone)
	digits := strings.TrimPrefix(normalized, "+")
	return len(digits) >= 7
}
