package coversheet

import "testing"

func TestPercentFormatting(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{"6", "6.0%"},
		{"0", "0.0%"},
		{"100", "100.0%"},
		{"3.5", "3.5%"},
		{"", ""},
		{"six", ""},
		{6.0, "6.0%"},
		{3, "3.0%"},
	}
	for _, tc := range tests {
		if got := Percent(tc.value); got != tc.want {
			t.Errorf("Percent(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestCurrencyFormatting(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{"350000", "$350,000.00"},
		{"$350,000", "$350,000.00"},
		{"1234.5", "$1,234.50"},
		{1234.5, "$1,234.50"},
		{"", ""},
		{"free", ""},
		{nil, ""},
	}
	for _, tc := range tests {
		if got := Currency(tc.value); got != tc.want {
			t.Errorf("Currency(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
