package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ledger/internal/core"
)

// Slice is one category's share of a chart.
type Slice struct {
	Label   string
	Value   float64
	Percent float64
}

// PercentLabel formats the share with one decimal, e.g. "63.6%".
func (s Slice) PercentLabel() string {
	return fmt.Sprintf("%.1f%%", s.Percent)
}

// Chart is a proportion chart over the categories of one subset.
type Chart struct {
	Title  string
	Slices []Slice
}

// NewChart computes each category's share of the subset total. A zero total
// gives every slice a zero share.
func NewChart(title string, categories []core.CategoryAmount) Chart {
	var total float64
	for _, c := range categories {
		total += c.Amount
	}
	chart := Chart{Title: title, Slices: make([]Slice, 0, len(categories))}
	for _, c := range categories {
		s := Slice{Label: c.Name, Value: c.Amount}
		if total > 0 {
			s.Percent = c.Amount / total * 100
		}
		chart.Slices = append(chart.Slices, s)
	}
	return chart
}

// ChartSink displays charts. The analysis never depends on what a sink does.
type ChartSink interface {
	Plot(ctx context.Context, chart Chart) error
}

// NopSink discards every chart.
type NopSink struct{}

func (NopSink) Plot(context.Context, Chart) error { return nil }

// palette loosely follows matplotlib's Paired colormap.
var palette = []lipgloss.Color{
	"#a6cee3", "#1f78b4", "#b2df8a", "#33a02c", "#fb9a99", "#e31a1c",
	"#fdbf6f", "#ff7f00", "#cab2d6", "#6a3d9a", "#ffff99", "#b15928",
}

const defaultBarWidth = 40

// TerminalSink draws charts as horizontal bars. Colors are only emitted when
// the writer is a terminal.
type TerminalSink struct {
	w          io.Writer
	width      int
	titleStyle lipgloss.Style
	barStyles  []lipgloss.Style
}

func NewTerminalSink(w io.Writer) *TerminalSink {
	r := lipgloss.NewRenderer(w)
	styles := make([]lipgloss.Style, len(palette))
	for i, c := range palette {
		styles[i] = r.NewStyle().Foreground(c)
	}
	return &TerminalSink{
		w:          w,
		width:      defaultBarWidth,
		titleStyle: r.NewStyle().Bold(true).Underline(true),
		barStyles:  styles,
	}
}

// Plot implements ChartSink.
func (s *TerminalSink) Plot(_ context.Context, chart Chart) error {
	_, err := io.WriteString(s.w, s.Render(chart))
	return err
}

// Render returns the chart as text.
func (s *TerminalSink) Render(chart Chart) string {
	labelWidth := 0
	for _, sl := range chart.Slices {
		labelWidth = max(labelWidth, lipgloss.Width(sl.Label))
	}

	var b strings.Builder
	b.WriteString("\n" + s.titleStyle.Render(chart.Title) + "\n")
	for i, sl := range chart.Slices {
		n := int(math.Round(sl.Percent / 100 * float64(s.width)))
		bar := s.barStyles[i%len(s.barStyles)].Render(strings.Repeat("█", n))
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(sl.Label))
		fmt.Fprintf(&b, "%s%s  %s %s\n", sl.Label, pad, bar, sl.PercentLabel())
	}
	return b.String()
}
