package validate

import (
	"regexp"
	"strconv"
	"strings"

	"prestige/internal/domain"
)

var (
	reQ    = regexp.MustCompile(`^[A-Za-z0-9 _'\\-]{1,50}$`)
	reID   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSize = regexp.MustCompile(`^[0-9]{1,4}ml$`)
)

const maxQty = 99

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// Qty parses an add-to-cart quantity. Junk and anything below one mean one.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxQty {
		return maxQty
	}
	return n
}

// SetQty parses a quantity for an update, where zero and below mean remove.
func SetQty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	if n > maxQty {
		n = maxQty
	}
	return n, true
}

// ID validates a simple resource identifier (product ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Size accepts an empty size (meaning the default bottle) or something like "30ml".
func Size(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, s == "" || reSize.MatchString(s)
}

func Category(s string) (domain.Category, bool) {
	c := domain.Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Password is the registration policy: 8 to 64 characters mixing
// lower case, upper case, a digit and a symbol.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
