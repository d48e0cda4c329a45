package core

import (
	"errors"
	"testing"
)

func scenarioLedger() []Transaction {
	return []Transaction{
		NewIncome(1000, "Salary", "May"),
		NewExpense(400, "Rent", "May"),
		NewExpense(700, "Rent", "June"),
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	if _, err := Analyze(nil); !errors.Is(err, ErrNoTransactions) {
		t.Fatalf("expected ErrNoTransactions, got %v", err)
	}
}

func TestPartitionKeepsOrder(t *testing.T) {
	ts := []Transaction{
		NewExpense(1, "A", "first"),
		NewIncome(2, "B", "second"),
		NewExpense(3, "C", "third"),
		NewIncome(4, "D", "fourth"),
	}
	inc, exp := Partition(ts)
	if len(inc) != 2 || inc[0].Description != "second" || inc[1].Description != "fourth" {
		t.Fatalf("unexpected incomes: %+v", inc)
	}
	if len(exp) != 2 || exp[0].Description != "first" || exp[1].Description != "third" {
		t.Fatalf("unexpected expenses: %+v", exp)
	}
}

func TestCategoryTotalsSumToSubsetTotal(t *testing.T) {
	ts := []Transaction{
		NewExpense(10, "Food", ""),
		NewExpense(25.5, "Rent", ""),
		NewExpense(4.5, "Food", ""),
		NewExpense(60, "Travel", ""),
	}
	b := NewBreakdown(Expense, ts)
	if b == nil {
		t.Fatal("expected breakdown")
	}
	var sum float64
	for _, c := range b.ByCategory {
		sum += c.Amount
	}
	if sum != b.Total || b.Total != 100 {
		t.Fatalf("category sum %v, total %v", sum, b.Total)
	}
	want := []CategoryAmount{{"Food", 14.5}, {"Rent", 25.5}, {"Travel", 60}}
	if len(b.ByCategory) != len(want) {
		t.Fatalf("got %+v", b.ByCategory)
	}
	for i := range want {
		if b.ByCategory[i] != want[i] {
			t.Fatalf("category %d: got %+v, want %+v", i, b.ByCategory[i], want[i])
		}
	}
}

func TestLargestPrefersEarliestOnTies(t *testing.T) {
	ts := []Transaction{
		NewExpense(5, "A", "small"),
		NewExpense(9, "B", "first max"),
		NewExpense(9, "C", "second max"),
		NewExpense(1, "D", "tiny"),
	}
	got, ok := Largest(ts)
	if !ok || got.Description != "first max" {
		t.Fatalf("unexpected largest: %+v ok=%v", got, ok)
	}
	for _, tr := range ts {
		if tr.Amount > got.Amount {
			t.Fatalf("%+v is larger than selected %+v", tr, got)
		}
	}
	if _, ok := Largest(nil); ok {
		t.Fatal("expected no largest for empty input")
	}
}

func TestAnalyzeScenario(t *testing.T) {
	a, err := Analyze(scenarioLedger())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.Summary != (Summary{TotalIncome: 1000, TotalExpenses: 1100, Balance: -100}) {
		t.Fatalf("unexpected summary: %+v", a.Summary)
	}
	if a.Income == nil || a.Income.Total != 1000 || a.Income.Largest.Category != "Salary" {
		t.Fatalf("unexpected income breakdown: %+v", a.Income)
	}
	if a.Expense == nil {
		t.Fatal("expected expense breakdown")
	}
	if want := NewExpense(700, "Rent", "June"); a.Expense.Largest != want {
		t.Fatalf("largest expense: got %+v, want %+v", a.Expense.Largest, want)
	}
	if len(a.Expense.ByCategory) != 1 || a.Expense.ByCategory[0] != (CategoryAmount{"Rent", 1100}) {
		t.Fatalf("unexpected expense categories: %+v", a.Expense.ByCategory)
	}

	if len(a.Tips) != 4 {
		t.Fatalf("expected 4 tips, got %+v", a.Tips)
	}
	for i, text := range []string{TipOverspending, TipLargeExpense, TipLowSavings, TipTrackRegularly} {
		if a.Tips[i].Text != text {
			t.Fatalf("tip %d: got %q", i, a.Tips[i].Text)
		}
	}
}

func TestAnalyzeOnlyIncome(t *testing.T) {
	a, err := Analyze([]Transaction{NewIncome(500, "Salary", "")})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.Expense != nil {
		t.Fatalf("expected no expense breakdown, got %+v", a.Expense)
	}
	if a.Tips[1].Text != TipReasonableExpense {
		t.Fatalf("absent expense should be reasonable, got %q", a.Tips[1].Text)
	}
}
