// Package http provides HTTP server and handler implementations.
//
// This file implements parsing and validation of the transaction form.
// Missing fields fall back to the form's initial values; present but
// malformed fields are rejected.

package http

import (
	"fmt"
	"net/url"
	"strings"

	"finboard/internal/core"
)

// Form field names of the transaction form.
const (
	FieldDate     = "date"
	FieldKind     = "kind"
	FieldCategory = "category"
	FieldAmount   = "amount"
)

// FormDefaults are the values the form shows before the user edits it.
type FormDefaults struct {
	Date     core.Date
	Kind     core.Kind
	Category core.Category
	Amount   int64
}

// DefaultForm returns the initial form state for the given day: the first
// kind and category options and a zero amount.
func DefaultForm(today core.Date) FormDefaults {
	return FormDefaults{
		Date:     today,
		Kind:     core.Kinds()[0],
		Category: core.Categories()[0],
		Amount:   0,
	}
}

// ParseTransactionForm builds a transaction from submitted form values.
// Blank fields take the value from defaults.
func ParseTransactionForm(form url.Values, defaults FormDefaults) (core.Transaction, error) {
	tx := core.Transaction{
		Date:     defaults.Date,
		Kind:     defaults.Kind,
		Category: defaults.Category,
		Amount:   defaults.Amount,
	}

	if v := sanitizeInput(form.Get(FieldDate)); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Transaction{}, err
		}
		tx.Date = d
	}
	if v := sanitizeInput(form.Get(FieldKind)); v != "" {
		k, err := core.ParseKind(v)
		if err != nil {
			return core.Transaction{}, err
		}
		tx.Kind = k
	}
	if v := sanitizeInput(form.Get(FieldCategory)); v != "" {
		c, err := core.ParseCategory(v)
		if err != nil {
			return core.Transaction{}, err
		}
		tx.Category = c
	}
	if v := sanitizeInput(form.Get(FieldAmount)); v != "" {
		amt, err := core.ParseAmount(v)
		if err != nil {
			return core.Transaction{}, err
		}
		tx.Amount = amt
	}

	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("transaction: %w", err)
	}
	return tx, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
