package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"ledger/internal/core"
)

type recordingSink struct {
	charts []Chart
	err    error
}

func (s *recordingSink) Plot(_ context.Context, c Chart) error {
	s.charts = append(s.charts, c)
	return s.err
}

func scenarioAnalysis(t *testing.T) core.Analysis {
	t.Helper()
	a, err := core.Analyze([]core.Transaction{
		core.NewIncome(1000, "Salary", "May"),
		core.NewExpense(400, "Rent", "May"),
		core.NewExpense(700, "Rent", "June"),
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return a
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, nil).Summary(core.Summary{TotalIncome: 1000, TotalExpenses: 1100, Balance: -100})

	want := "\n--- Financial Summary ---\n" +
		"Total Income: $1000.00\n" +
		"Total Expenses: $1100.00\n" +
		"Balance: $-100.00\n\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestSummaryEmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, nil).Summary(core.Summarize(nil))
	for _, want := range []string{"Total Income: $0.00", "Total Expenses: $0.00", "Balance: $0.00"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("missing %q in %q", want, buf.String())
		}
	}
}

func TestAnalysisScenario(t *testing.T) {
	var buf bytes.Buffer
	sink := &recordingSink{}
	NewRenderer(&buf, sink).Analysis(context.Background(), scenarioAnalysis(t))
	out := buf.String()

	for _, want := range []string{
		"--- Income Analysis ---",
		"Income by Category:",
		"Salary  $1000.00",
		"--- Expense Analysis ---",
		"Expenses by Category:",
		"Rent  $1100.00",
		"Largest Single Expense:\nAmount: $700.00\nCategory: Rent\nDescription: June\n",
		"--- Financial Tips ---",
		"1. " + core.TipOverspending,
		"2. " + core.TipLargeExpense,
		"3. " + core.TipLowSavings,
		"4. " + core.TipTrackRegularly,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "Income Analysis") > strings.Index(out, "Expense Analysis") {
		t.Fatal("income analysis should come first")
	}

	if len(sink.charts) != 2 {
		t.Fatalf("expected 2 charts, got %d", len(sink.charts))
	}
	if sink.charts[0].Title != "Income by Category" || sink.charts[1].Title != "Expenses by Category" {
		t.Fatalf("unexpected chart titles: %q, %q", sink.charts[0].Title, sink.charts[1].Title)
	}
}

func TestAnalysisSkipsEmptySubset(t *testing.T) {
	a, err := core.Analyze([]core.Transaction{core.NewExpense(50, "Food", "")})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var buf bytes.Buffer
	sink := &recordingSink{}
	NewRenderer(&buf, sink).Analysis(context.Background(), a)

	if strings.Contains(buf.String(), "Income Analysis") || strings.Contains(buf.String(), "Largest Single Income") {
		t.Fatalf("income section rendered for ledger without income:\n%s", buf.String())
	}
	if len(sink.charts) != 1 {
		t.Fatalf("expected 1 chart, got %d", len(sink.charts))
	}
}

func TestAnalysisKeepsGoingWhenChartFails(t *testing.T) {
	var buf bytes.Buffer
	sink := &recordingSink{err: errors.New("no display")}
	NewRenderer(&buf, sink).Analysis(context.Background(), scenarioAnalysis(t))
	if !strings.Contains(buf.String(), "--- Financial Tips ---") {
		t.Fatalf("report stopped after chart failure:\n%s", buf.String())
	}
}

func TestTipsKeepRuleNumbers(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, nil).Tips(core.GenerateTips(1000, 100, nil))
	out := buf.String()
	if strings.Contains(out, "3. ") {
		t.Fatalf("rule 3 should be omitted:\n%s", out)
	}
	if !strings.Contains(out, "4. "+core.TipTrackRegularly) {
		t.Fatalf("reminder should keep number 4:\n%s", out)
	}
}

func TestNoTransactions(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, nil).NoTransactions()
	if buf.String() != "\nNo transactions to analyze.\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestAnalysisAlignsCategoriesByDisplayWidth(t *testing.T) {
	a, err := core.Analyze([]core.Transaction{
		core.NewExpense(5, "Café", ""),
		core.NewExpense(3, "Bar", ""),
		core.NewExpense(7, "Rent", ""),
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var buf bytes.Buffer
	NewRenderer(&buf, nil).Analysis(context.Background(), a)

	want := "Expenses by Category:\n" +
		"  Bar   $3.00\n" +
		"  Café  $5.00\n" +
		"  Rent  $7.00\n"
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("missing %q in output:\n%s", want, buf.String())
	}
}
