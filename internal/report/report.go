// Package report renders ledger summaries and analyses as console text.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ledger/internal/core"
	applog "ledger/internal/log"
)

type Styles struct {
	Header   lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Warning  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header:   r.NewStyle().Bold(true),
		Positive: r.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		Negative: r.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("#d29b1d")),
	}
}

// Renderer writes reports to w and sends category charts to a ChartSink.
type Renderer struct {
	w      io.Writer
	charts ChartSink
	styles Styles
}

// NewRenderer creates a renderer. A nil sink disables charts.
func NewRenderer(w io.Writer, charts ChartSink) *Renderer {
	if charts == nil {
		charts = NopSink{}
	}
	return &Renderer{
		w:      w,
		charts: charts,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

func (r *Renderer) header(title string) {
	fmt.Fprintf(r.w, "\n%s\n", r.styles.Header.Render("--- "+title+" ---"))
}

// Summary prints the three summary lines.
func (r *Renderer) Summary(s core.Summary) {
	r.header("Financial Summary")
	fmt.Fprintf(r.w, "Total Income: %s\n", core.FormatCurrency(s.TotalIncome))
	fmt.Fprintf(r.w, "Total Expenses: %s\n", core.FormatCurrency(s.TotalExpenses))
	balance := r.styles.Positive
	if s.Balance < 0 {
		balance = r.styles.Negative
	}
	fmt.Fprintf(r.w, "Balance: %s\n\n", balance.Render(core.FormatCurrency(s.Balance)))
}

// NoTransactions reports an empty ledger for analysis.
func (r *Renderer) NoTransactions() {
	fmt.Fprintln(r.w, "\nNo transactions to analyze.")
}

// Analysis prints both breakdowns, plots their charts and lists the tips.
// Chart failures are logged and do not stop the report.
func (r *Renderer) Analysis(ctx context.Context, a core.Analysis) {
	if a.Income != nil {
		r.breakdown(ctx, "Income", "Income", a.Income)
	}
	if a.Expense != nil {
		r.breakdown(ctx, "Expense", "Expenses", a.Expense)
	}
	r.Tips(a.Tips)
}

func (r *Renderer) breakdown(ctx context.Context, singular, plural string, b *core.Breakdown) {
	r.header(singular + " Analysis")
	fmt.Fprintf(r.w, "%s by Category:\n", plural)

	width := 0
	for _, c := range b.ByCategory {
		width = max(width, lipgloss.Width(c.Name))
	}
	for _, c := range b.ByCategory {
		pad := strings.Repeat(" ", width-lipgloss.Width(c.Name))
		fmt.Fprintf(r.w, "  %s%s  %s\n", c.Name, pad, core.FormatCurrency(c.Amount))
	}

	chart := NewChart(plural+" by Category", b.ByCategory)
	if err := r.charts.Plot(ctx, chart); err != nil {
		fields := applog.NewFields().
			WithComponent(applog.ComponentReport).
			WithOperation(applog.OpRender).
			WithError(err)
		slog.WarnContext(ctx, "Failed to plot chart", append(fields.ToSlice(), "title", chart.Title)...)
	}

	fmt.Fprintf(r.w, "\nLargest Single %s:\n", singular)
	fmt.Fprintf(r.w, "Amount: %s\n", core.FormatCurrency(b.Largest.Amount))
	fmt.Fprintf(r.w, "Category: %s\n", b.Largest.Category)
	fmt.Fprintf(r.w, "Description: %s\n", b.Largest.Description)
}

// Tips prints the numbered advice list.
func (r *Renderer) Tips(tips []core.Tip) {
	r.header("Financial Tips")
	for _, tip := range tips {
		line := fmt.Sprintf("%d. %s", tip.Rule, tip.Text)
		if tip.Warning {
			line = r.styles.Warning.Render(line)
		}
		fmt.Fprintln(r.w, line)
	}
}

// Message prints a plain status line.
func (r *Renderer) Message(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	io.WriteString(r.w, msg)
}
