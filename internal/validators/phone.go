package validators

import (
	"strings"
	"unicode"
)

// NormalizePhone strips formatting and returns an E.164 number suitable as an
// SMS recipient. Numbers must carry their country code.
func NormalizePhone(phone string) (string, bool) {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") {
		return "", false
	}

	var b strings.Builder
	b.WriteByte('+')
	for _, r := range phone[1:] {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", false
		}
	}

	out := b.String()
	if n := len(out) - 1; n < 8 || n > 15 {
		return "", false
	}
	return out, true
}
