package core

import "sort"

// Breakdown is the analysis of one non-empty subset of the ledger.
type Breakdown struct {
	Kind       Kind
	Total      float64
	ByCategory []CategoryAmount // sorted by category name
	Largest    Transaction
}

// Analysis is the result of Analyze. A nil breakdown means the ledger holds
// no transaction of that kind.
type Analysis struct {
	Summary Summary
	Income  *Breakdown
	Expense *Breakdown
	Tips    []Tip
}

// Partition splits the ledger by kind, keeping the original order in each half.
func Partition(ts []Transaction) (incomes, expenses []Transaction) {
	for _, t := range ts {
		switch t.Kind {
		case Income:
			incomes = append(incomes, t)
		case Expense:
			expenses = append(expenses, t)
		}
	}
	return incomes, expenses
}

// CategoryTotals sums amounts per distinct category.
func CategoryTotals(ts []Transaction) []CategoryAmount {
	sums := make(map[string]float64)
	for _, t := range ts {
		sums[t.Category] += t.Amount
	}
	out := make([]CategoryAmount, 0, len(sums))
	for name, amount := range sums {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Largest returns the transaction with the highest amount. Ties go to the
// earliest one. ok is false for an empty slice.
func Largest(ts []Transaction) (t Transaction, ok bool) {
	if len(ts) == 0 {
		return Transaction{}, false
	}
	best := 0
	for i := 1; i < len(ts); i++ {
		if ts[i].Amount > ts[best].Amount {
			best = i
		}
	}
	return ts[best], true
}

// NewBreakdown analyses a single-kind subset. It returns nil for an empty subset.
func NewBreakdown(kind Kind, ts []Transaction) *Breakdown {
	largest, ok := Largest(ts)
	if !ok {
		return nil
	}
	b := &Breakdown{
		Kind:       kind,
		ByCategory: CategoryTotals(ts),
		Largest:    largest,
	}
	for _, t := range ts {
		b.Total += t.Amount
	}
	return b
}

// Analyze runs the full category analysis and derives the budgeting tips.
// It returns ErrNoTransactions for an empty ledger.
func Analyze(ts []Transaction) (Analysis, error) {
	if len(ts) == 0 {
		return Analysis{}, ErrNoTransactions
	}
	incomes, expenses := Partition(ts)
	a := Analysis{
		Summary: Summarize(ts),
		Income:  NewBreakdown(Income, incomes),
		Expense: NewBreakdown(Expense, expenses),
	}

	var largestExpense *Transaction
	if a.Expense != nil {
		largestExpense = &a.Expense.Largest
	}
	a.Tips = GenerateTips(a.Summary.TotalIncome, a.Summary.TotalExpenses, largestExpense)
	return a, nil
}
