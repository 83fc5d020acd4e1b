package helpers

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MatchHeader reports whether a sheet cell matches any of the given header
// patterns after normalization.
func MatchHeader(cellValue string, patterns []string) bool {
	normalizedValue := NormalizeString(cellValue)
	for _, pattern := range patterns {
		matched, _ := regexp.MatchString(pattern, normalizedValue)
		if matched {
			return true
		}
	}
	return false
}

// NormalizeString lower-cases and trims a header cell.
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseAmount reads a rupee amount out of a cell that may carry currency
// symbols, commas or unit suffixes like "95,00,000" or "₹1.2 Cr".
func ParseAmount(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "₹", "")
	cleaned = strings.ReplaceAll(cleaned, "Rs.", "")
	cleaned = strings.ReplaceAll(cleaned, "Rs", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	multiplier := 1.0
	lower := strings.ToLower(cleaned)
	switch {
	case strings.HasSuffix(lower, "cr"):
		multiplier = 10000000
		cleaned = strings.TrimSpace(cleaned[:len(cleaned)-2])
	case strings.HasSuffix(lower, "l"):
		multiplier = 100000
		cleaned = strings.TrimSpace(cleaned[:len(cleaned)-1])
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value * multiplier, true
}

// FormatINR renders an amount with Indian digit grouping (12,34,567).
func FormatINR(amount float64) string {
	n := int64(math.Round(math.Abs(amount)))
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		head := s[:len(s)-3]
		groups := []string{s[len(s)-3:]}
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",")
	}
	if amount < 0 {
		s = "-" + s
	}
	return s
}

// Round2 rounds to two decimals.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Round1 rounds to one decimal.
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// RoundRupees rounds a monetary amount to whole rupees.
func RoundRupees(value float64) float64 {
	return math.Round(value)
}

// SafePercent returns part/whole*100, or 0 when the denominator is not
// positive. Callers never see NaN or Inf.
func SafePercent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
