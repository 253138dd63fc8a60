package http

import (
	"github.com/dustin/go-humanize"

	"finboard/internal/core"
	"finboard/internal/ledger"
)

// FormatAmount renders a whole amount with thousands separators followed by
// the currency label, e.g. "1,250,000 Toman".
func FormatAmount(amount int64, label string) string {
	s := humanize.Comma(amount)
	if label == "" {
		return s
	}
	return s + " " + label
}

type metricView struct {
	Label    string
	Value    string
	Delta    string
	Negative bool
}

type breakdownView struct {
	Category string
	Amount   string
	Share    string
}

type rowView struct {
	Date     string
	Kind     string
	Category string
	Amount   string
	Expense  bool
}

type summaryView struct {
	HasData     bool
	HasExpenses bool
	Count       int
	Metrics     []metricView
	Breakdown   []breakdownView
	Rows        []rowView
}

type formView struct {
	Date       string
	Kind       string
	Category   string
	Amount     int64
	Kinds      []core.Kind
	Categories []core.Category
}

type dashboardView struct {
	Currency string
	Form     formView
	Summary  summaryView
}

func newSummaryView(s ledger.Summary, label string) summaryView {
	v := summaryView{
		HasData:     s.HasData,
		HasExpenses: s.HasExpenses,
		Count:       s.Count,
		Metrics: []metricView{
			{Label: "Balance", Value: FormatAmount(s.Balance, label), Negative: s.Balance < 0},
			{Label: "Total Income", Value: FormatAmount(s.TotalIncome, label)},
			// decorative only; no period comparison is computed
			{Label: "Total Expense", Value: FormatAmount(s.TotalExpense, label), Delta: "-", Negative: true},
		},
		Breakdown: make([]breakdownView, 0, len(s.Breakdown)),
		Rows:      make([]rowView, 0, len(s.Rows)),
	}
	for _, b := range s.Breakdown {
		v.Breakdown = append(v.Breakdown, breakdownView{
			Category: string(b.Category),
			Amount:   FormatAmount(b.Amount, label),
			Share:    humanize.FtoaWithDigits(b.Share, 1) + "%",
		})
	}
	for _, t := range s.Rows {
		v.Rows = append(v.Rows, rowView{
			Date:     t.Date.String(),
			Kind:     string(t.Kind),
			Category: string(t.Category),
			Amount:   FormatAmount(t.Amount, label),
			Expense:  t.Kind == core.Expense,
		})
	}
	return v
}

func newFormView(d FormDefaults) formView {
	return formView{
		Date:       d.Date.String(),
		Kind:       string(d.Kind),
		Category:   string(d.Category),
		Amount:     d.Amount,
		Kinds:      core.Kinds(),
		Categories: core.Categories(),
	}
}

// JSON shapes of the /api routes.

type trendPointJSON struct {
	Date   string `json:"date"`
	Kind   string `json:"kind"`
	Amount int64  `json:"amount"`
}

type breakdownJSON struct {
	Category string  `json:"category"`
	Amount   int64   `json:"amount"`
	Share    float64 `json:"share"`
}

type transactionJSON struct {
	Date     string `json:"date"`
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

type displayJSON struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	Balance      string `json:"balance"`
}

type summaryJSON struct {
	HasData      bool              `json:"has_data"`
	Count        int               `json:"count"`
	Currency     string            `json:"currency"`
	TotalIncome  int64             `json:"total_income"`
	TotalExpense int64             `json:"total_expense"`
	Balance      int64             `json:"balance"`
	Display      displayJSON       `json:"display"`
	Breakdown    []breakdownJSON   `json:"breakdown"`
	Trend        []trendPointJSON  `json:"trend"`
	Rows         []transactionJSON `json:"rows"`
}

func toTrendJSON(points []ledger.TrendPoint) []trendPointJSON {
	out := make([]trendPointJSON, 0, len(points))
	for _, p := range points {
		out = append(out, trendPointJSON{Date: p.Date.String(), Kind: string(p.Kind), Amount: p.Amount})
	}
	return out
}

func newSummaryJSON(s ledger.Summary, label string) summaryJSON {
	out := summaryJSON{
		HasData:      s.HasData,
		Count:        s.Count,
		Currency:     label,
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Balance:      s.Balance,
		Display: displayJSON{
			TotalIncome:  FormatAmount(s.TotalIncome, label),
			TotalExpense: FormatAmount(s.TotalExpense, label),
			Balance:      FormatAmount(s.Balance, label),
		},
		Breakdown: make([]breakdownJSON, 0, len(s.Breakdown)),
		Trend:     toTrendJSON(s.Trend),
		Rows:      make([]transactionJSON, 0, len(s.Rows)),
	}
	for _, b := range s.Breakdown {
		out.Breakdown = append(out.Breakdown, breakdownJSON{Category: string(b.Category), Amount: b.Amount, Share: b.Share})
	}
	for _, t := range s.Rows {
		out.Rows = append(out.Rows, transactionJSON{
			Date:     t.Date.String(),
			Kind:     string(t.Kind),
			Category: string(t.Category),
			Amount:   t.Amount,
		})
	}
	return out
}
