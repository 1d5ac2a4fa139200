package models

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	plainAmount = regexp.MustCompile(`^[0-9]+$`)

	// One pattern per separator so "1,000.000" is not accepted.
	groupedAmounts = []*regexp.Regexp{
		regexp.MustCompile(`^[0-9]{1,3}(?:,[0-9]{3})+$`),
		regexp.MustCompile(`^[0-9]{1,3}(?:\.[0-9]{3})+$`),
		regexp.MustCompile(`^[0-9]{1,3}(?: [0-9]{3})+$`),
		regexp.MustCompile(`^[0-9]{1,3}(?:_[0-9]{3})+$`),
	}

	separators = strings.NewReplacer(",", "", ".", "", " ", "", "_", "")
)

// ParseAmount parses a whole-unit amount as typed by a user.
//
// The input is either plain digits or digits grouped in threes by a single
// separator style (",", ".", " " or "_"), e.g. "20,000" or "5.000.000".
// Decimals such as "12.50" and misplaced separators are rejected.
func ParseAmount(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, Invalid("amount", "is required")
	}
	if !plainAmount.MatchString(trimmed) && !isGrouped(trimmed) {
		return 0, Invalid("amount", "must be whole digits, optionally grouped in thousands (got %q)", s)
	}
	v, err := strconv.ParseInt(separators.Replace(trimmed), 10, 64)
	if err != nil {
		return 0, Invalid("amount", "out of range (got %q)", s)
	}
	return v, nil
}

func isGrouped(s string) bool {
	for _, re := range groupedAmounts {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
