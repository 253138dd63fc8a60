package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

const (
	Salary        Category = "Salary"
	Rent          Category = "Rent"
	Food          Category = "Food"
	Entertainment Category = "Entertainment"
	Investment    Category = "Investment"
	Other         Category = "Other"
)

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

// MaxAmount is the largest amount a single transaction may carry. It keeps
// any realistic number of summed transactions inside int64.
const MaxAmount int64 = 1_000_000_000_000_000

type (
	Kind     string
	Category string

	// Date is a calendar day; the time component is always UTC midnight.
	Date struct {
		time.Time
	}

	Transaction struct {
		Date     Date
		Kind     Kind
		Category Category
		Amount   int64 // whole currency units
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidAmount   = errors.New("invalid amount")
)

var (
	kinds      = []Kind{Income, Expense}
	categories = []Category{Salary, Rent, Food, Entertainment, Investment, Other}
)

// Kinds returns the transaction kinds in display order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseKind matches s case-insensitively against the known kinds.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range kinds {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", ErrInvalidKind
}

// ParseCategory matches s case-insensitively against the fixed category set.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// Rank orders kinds for display: Income first.
func (k Kind) Rank() int {
	for i, v := range kinds {
		if v == k {
			return i
		}
	}
	return len(kinds)
}

func (c Category) Valid() bool {
	return c.Rank() < len(categories)
}

// Rank is the category's position in the fixed display order.
func (c Category) Rank() int {
	for i, v := range categories {
		if v == c {
			return i
		}
	}
	return len(categories)
}

// NewDate creates a Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks field types and the amount range [0, MaxAmount].
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if t.Amount < 0 || t.Amount > MaxAmount {
		return ErrInvalidAmount
	}
	return nil
}
