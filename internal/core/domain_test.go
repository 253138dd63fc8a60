package core

import (
	"errors"
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Date: NewDate(2024, 1, 1), Kind: Income, Category: Salary, Amount: 5000}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	largest := good
	largest.Amount = MaxAmount
	if err := largest.Validate(); err != nil {
		t.Fatalf("MaxAmount should be accepted, got %v", err)
	}
	zero := good
	zero.Amount = 0
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount should be accepted, got %v", err)
	}

	cases := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Date: Date{Time: time.Time{}}, Kind: Income, Category: Salary, Amount: 1}, ErrInvalidDate},
		{Transaction{Date: NewDate(2024, 1, 1), Kind: "Gift", Category: Salary, Amount: 1}, ErrInvalidKind},
		{Transaction{Date: NewDate(2024, 1, 1), Kind: Expense, Category: "Travel", Amount: 1}, ErrInvalidCategory},
		{Transaction{Date: NewDate(2024, 1, 1), Kind: Expense, Category: Food, Amount: -1}, ErrInvalidAmount},
		{Transaction{Date: NewDate(2024, 1, 1), Kind: Expense, Category: Food, Amount: MaxAmount + 1}, ErrInvalidAmount},
	}
	for i, tc := range cases {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestParseKindAndCategory(t *testing.T) {
	if k, err := ParseKind(" expense "); err != nil || k != Expense {
		t.Fatalf("ParseKind: got %q, %v", k, err)
	}
	if _, err := ParseKind("refund"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	if c, err := ParseCategory("INVESTMENT"); err != nil || c != Investment {
		t.Fatalf("ParseCategory: got %q, %v", c, err)
	}
	if _, err := ParseCategory(""); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestDisplayOrder(t *testing.T) {
	cats := Categories()
	if len(cats) != 6 || cats[0] != Salary || cats[5] != Other {
		t.Fatalf("unexpected categories: %v", cats)
	}
	cats[0] = "mutated"
	if Categories()[0] != Salary {
		t.Fatalf("Categories must return a copy")
	}
	if Income.Rank() >= Expense.Rank() {
		t.Fatalf("Income must sort before Expense")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("round trip mismatch: %s", d)
	}
	if _, err := ParseDate("29/02/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	local := time.Date(2024, 3, 5, 23, 30, 0, 0, time.FixedZone("X", 3*3600))
	if got := DateOf(local); !got.Equal(NewDate(2024, 3, 5).Time) {
		t.Fatalf("DateOf kept the wrong day: %s", got)
	}
}
