// Package core provides amount parsing utilities.
//
// Amounts are whole currency units; there is no fractional part to round.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts user input to a non-negative whole amount.
//
// Blank input yields 0. Thousands separators (comma, underscore, space) are
// ignored. Signs, decimal points and values above MaxAmount are rejected
// with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("")          -> 0, nil
//	ParseAmount("5000")      -> 5000, nil
//	ParseAmount("1,250,000") -> 1250000, nil
//	ParseAmount("-3")        -> 0, ErrInvalidAmount
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.Map(func(r rune) rune {
		if r == ',' || r == '_' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v > MaxAmount {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
