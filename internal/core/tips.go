package core

// Thresholds used by GenerateTips, as fractions of total income.
const (
	LargestExpenseShare = 0.3
	MinSavingsShare     = 0.2
)

// Tip is one budgeting advice line. Rule is the position of the rule that
// produced it, so numbering stays stable when a conditional rule is skipped.
type Tip struct {
	Rule    int
	Warning bool
	Text    string
}

const (
	TipOverspending      = "Your expenses exceed your income. Consider reducing discretionary spending or finding additional income sources."
	TipUnderControl      = "Great job keeping expenses below income! Try to allocate some savings for emergencies or investments."
	TipLargeExpense      = "Your largest expense is significant. Look for ways to minimize costs in this category."
	TipReasonableExpense = "Your largest expense is within a reasonable range. Keep monitoring to ensure it stays manageable."
	TipLowSavings        = "Your savings margin is low. Consider creating a stricter budget to increase your savings."
	TipTrackRegularly    = "Always track your finances regularly to spot trends and adjust your spending habits as needed."
)

// GenerateTips derives ordered advice from the totals. largestExpense is nil
// when the ledger holds no expense, which counts as a reasonable largest expense.
func GenerateTips(totalIncome, totalExpenses float64, largestExpense *Transaction) []Tip {
	tips := make([]Tip, 0, 4)

	if totalIncome < totalExpenses {
		tips = append(tips, Tip{Rule: 1, Warning: true, Text: TipOverspending})
	} else {
		tips = append(tips, Tip{Rule: 1, Text: TipUnderControl})
	}

	if largestExpense != nil && largestExpense.Amount > LargestExpenseShare*totalIncome {
		tips = append(tips, Tip{Rule: 2, Warning: true, Text: TipLargeExpense})
	} else {
		tips = append(tips, Tip{Rule: 2, Text: TipReasonableExpense})
	}

	if totalIncome-totalExpenses < MinSavingsShare*totalIncome {
		tips = append(tips, Tip{Rule: 3, Warning: true, Text: TipLowSavings})
	}

	tips = append(tips, Tip{Rule: 4, Text: TipTrackRegularly})
	return tips
}
