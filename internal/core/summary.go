package core

// Summary holds the ledger totals.
type Summary struct {
	TotalIncome   float64
	TotalExpenses float64
	Balance       float64
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// Summarize totals incomes and expenses. An empty ledger yields a zero Summary.
func Summarize(ts []Transaction) Summary {
	var s Summary
	for _, t := range ts {
		switch t.Kind {
		case Income:
			s.TotalIncome += t.Amount
		case Expense:
			s.TotalExpenses += t.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpenses
	return s
}
