package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// closingWindow is how far in the future a closing date may fall.
const closingWindow = 90 * 24 * time.Hour

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mlsPattern   = regexp.MustCompile(`^([A-Za-z]+-?)?\d{6}$`)
	nonNumeric   = regexp.MustCompile(`[^0-9.\-]`)
)

// validEmail reports whether value looks like an email address.
func validEmail(value string) bool {
	return emailPattern.MatchString(strings.TrimSpace(value))
}

// validPhone accepts ten digits, optionally prefixed with a country code 1,
// ignoring any formatting characters.
func validPhone(value string) bool {
	digits := digitsOnly(value)
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	return len(digits) == 10
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseDate accepts ISO (YYYY-MM-DD) and US (MM/DD/YYYY) forms.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func validDate(value string) bool {
	_, ok := parseDate(value)
	return ok
}

// validClosingDate requires a parseable date falling within today..+90 days.
// Both window ends are derived from the UTC calendar date, matching the UTC
// midnight that parseDate yields.
func validClosingDate(value string, now time.Time) bool {
	t, ok := parseDate(value)
	if !ok {
		return false
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !t.Before(today) && !t.After(today.Add(closingWindow))
}

// validPercent requires a number in [0,100].
func validPercent(value string) bool {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}
	return n >= 0 && n <= 100
}

// validCurrency strips formatting characters and rejects negatives.
func validCurrency(value string) bool {
	cleaned := nonNumeric.ReplaceAllString(value, "")
	if cleaned == "" {
		return false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return false
	}
	return n >= 0
}

// validMLS matches an optional letter prefix followed by six digits.
func validMLS(value string) bool {
	return mlsPattern.MatchString(strings.TrimSpace(value))
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
