package coversheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

var currencyStrip = regexp.MustCompile(`[^0-9.\-]`)

// Currency formats a string or numeric amount as US currency with exactly two
// fraction digits, e.g. "$350,000.00". Unparseable input yields an empty
// string so the caller can skip the line.
func Currency(value any) string {
	n, ok := toFloat(value, true)
	if !ok {
		return ""
	}
	return currencyPrinter.Sprintf("$%.2f", n)
}

// Percent formats a string or numeric value with one fixed fraction digit
// followed by a percent sign, e.g. "6" becomes "6.0%". Unparseable input
// yields an empty string.
func Percent(value any) string {
	n, ok := toFloat(value, false)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.1f%%", n)
}

func toFloat(value any, stripFormatting bool) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if stripFormatting {
			s = currencyStrip.ReplaceAllString(s, "")
		}
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
