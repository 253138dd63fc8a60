// Package ledger aggregates transactions into the figures shown on the
// dashboard. Every function is pure and total: empty input yields zero values.
package ledger

import (
	"math"
	"sort"

	"finboard/internal/core"
)

// CategoryAmount is one slice of the expense breakdown.
type CategoryAmount struct {
	Category core.Category
	Amount   int64
	Share    float64 // percent of total expense, 0-100
}

// TrendPoint is the sum of amounts for one (date, kind) pair.
type TrendPoint struct {
	Date   core.Date
	Kind   core.Kind
	Amount int64
}

// addSat adds two non-negative amounts, saturating at math.MaxInt64.
func addSat(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// TotalByKind sums amounts of transactions matching kind. The sum saturates
// at math.MaxInt64 instead of wrapping.
func TotalByKind(txs []core.Transaction, kind core.Kind) int64 {
	var total int64
	for _, t := range txs {
		if t.Kind == kind {
			total = addSat(total, t.Amount)
		}
	}
	return total
}

// Balance is total income minus total expense; it may be negative.
func Balance(txs []core.Transaction) int64 {
	return TotalByKind(txs, core.Income) - TotalByKind(txs, core.Expense)
}

// ExpenseBreakdown groups expense amounts by category. Categories with a
// zero sum are omitted.
func ExpenseBreakdown(txs []core.Transaction) map[core.Category]int64 {
	out := make(map[core.Category]int64)
	for _, t := range txs {
		if t.Kind != core.Expense || t.Amount == 0 {
			continue
		}
		out[t.Category] = addSat(out[t.Category], t.Amount)
	}
	return out
}

// BreakdownSlices orders a breakdown by category display order and attaches
// each category's share of the total.
func BreakdownSlices(breakdown map[core.Category]int64) []CategoryAmount {
	var total int64
	for _, v := range breakdown {
		total = addSat(total, v)
	}
	out := make([]CategoryAmount, 0, len(breakdown))
	for c, v := range breakdown {
		share := 0.0
		if total > 0 {
			share = float64(v) * 100 / float64(total)
		}
		out = append(out, CategoryAmount{Category: c, Amount: v, Share: share})
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].Category.Rank(), out[j].Category.Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].Category < out[j].Category
	})
	return out
}

type trendKey struct {
	day  string
	kind core.Kind
}

// TrendAscending sums amounts per distinct (date, kind), oldest first. Within
// a day Income precedes Expense.
func TrendAscending(txs []core.Transaction) []TrendPoint {
	index := make(map[trendKey]int)
	out := make([]TrendPoint, 0)
	for _, t := range txs {
		k := trendKey{day: t.Date.String(), kind: t.Kind}
		if i, ok := index[k]; ok {
			out[i].Amount = addSat(out[i].Amount, t.Amount)
			continue
		}
		index[k] = len(out)
		out = append(out, TrendPoint{Date: t.Date, Kind: t.Kind, Amount: t.Amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].Kind.Rank() < out[j].Kind.Rank()
	})
	return out
}

// TrendLatestFirst returns the trend points newest date first.
func TrendLatestFirst(txs []core.Transaction) []TrendPoint {
	out := TrendAscending(txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// LatestFirst returns a copy of txs sorted by date descending. Among equal
// dates the most recently appended transaction comes first.
func LatestFirst(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(txs))
	for i, t := range txs {
		out[len(txs)-1-i] = t
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}
