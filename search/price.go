package search

import (
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice extracts the numeric amount from a display price such as
// "KES 45,000". Every rune that is not a digit, decimal point, or minus sign
// is stripped before parsing. ok is false when nothing numeric remains.
func ParsePrice(price string) (float64, bool) {
	var b strings.Builder
	for _, r := range price {
		if unicode.IsDigit(r) || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseLeadingInt reads the integer prefix of a feature string, so "2 bd"
// parses as 2. ok is false when the string does not start with a number.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
