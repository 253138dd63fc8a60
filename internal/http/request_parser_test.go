package http

import (
	"errors"
	"net/url"
	"testing"

	"finboard/internal/core"
)

func TestParseTransactionForm(t *testing.T) {
	today := core.NewDate(2024, 3, 10)
	defaults := DefaultForm(today)

	tests := []struct {
		name    string
		form    url.Values
		want    core.Transaction
		wantErr error
	}{
		{
			name: "all values provided",
			form: url.Values{"date": {"2024-01-02"}, "kind": {"Expense"}, "category": {"Food"}, "amount": {"500"}},
			want: core.Transaction{Date: core.NewDate(2024, 1, 2), Kind: core.Expense, Category: core.Food, Amount: 500},
		},
		{
			name: "empty form uses defaults",
			form: url.Values{},
			want: core.Transaction{Date: today, Kind: core.Income, Category: core.Salary, Amount: 0},
		},
		{
			name: "blank amount is zero",
			form: url.Values{"kind": {"expense"}, "category": {"rent"}, "amount": {"  "}},
			want: core.Transaction{Date: today, Kind: core.Expense, Category: core.Rent, Amount: 0},
		},
		{
			name: "thousands separators accepted",
			form: url.Values{"amount": {"1,250,000"}},
			want: core.Transaction{Date: today, Kind: core.Income, Category: core.Salary, Amount: 1250000},
		},
		{
			name:    "non-numeric amount",
			form:    url.Values{"amount": {"abc"}},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			form:    url.Values{"amount": {"-5"}},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name:    "unknown kind",
			form:    url.Values{"kind": {"Gift"}},
			wantErr: core.ErrInvalidKind,
		},
		{
			name:    "unknown category",
			form:    url.Values{"category": {"Travel"}},
			wantErr: core.ErrInvalidCategory,
		},
		{
			name:    "malformed date",
			form:    url.Values{"date": {"02/01/2024"}},
			wantErr: core.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransactionForm(tt.form, defaults)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Date.Equal(tt.want.Date.Time) || got.Kind != tt.want.Kind || got.Category != tt.want.Category || got.Amount != tt.want.Amount {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  hello  ", "hello"},
		{"foo\x00bar", "foobar"},
		{"a\tb", "a\tb"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := sanitizeInput(tt.input); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
