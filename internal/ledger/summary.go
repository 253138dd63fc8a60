package ledger

import "finboard/internal/core"

// Summary is everything the dashboard renders, computed in one pass over a
// store snapshot.
type Summary struct {
	HasData      bool
	HasExpenses  bool
	Count        int
	TotalIncome  int64
	TotalExpense int64
	Balance      int64
	Breakdown    []CategoryAmount
	Trend        []TrendPoint       // date ascending, for charting
	Rows         []core.Transaction // date descending, for the table
}

// Summarize recomputes every aggregate from txs. An empty input produces a
// Summary with HasData false and empty, non-nil collections.
func Summarize(txs []core.Transaction) Summary {
	s := Summary{
		HasData: len(txs) > 0,
		Count:   len(txs),
		Trend:   TrendAscending(txs),
		Rows:    LatestFirst(txs),
	}
	s.TotalIncome = TotalByKind(txs, core.Income)
	s.TotalExpense = TotalByKind(txs, core.Expense)
	s.Balance = s.TotalIncome - s.TotalExpense
	s.Breakdown = BreakdownSlices(ExpenseBreakdown(txs))
	s.HasExpenses = len(s.Breakdown) > 0
	return s
}
