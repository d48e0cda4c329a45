// Package console implements the interactive menu that drives the ledger.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"ledger/internal/core"
	applog "ledger/internal/log"
)

const (
	choiceLoad     = "1"
	choiceIncome   = "2"
	choiceExpense  = "3"
	choiceSummary  = "4"
	choiceExport   = "5"
	choiceAnalyze  = "6"
	choiceExit     = "7"
	menuTitle      = "--- Finance App ---"
	invalidChoice  = "Invalid choice. Please try again."
	invalidAmount  = "Invalid amount. Please enter a non-negative number."
	goodbyeMessage = "Exiting the app. Goodbye!"
)

var menuItems = []string{
	"1. Load CSV",
	"2. Add Income",
	"3. Add Expense",
	"4. View Summary",
	"5. Export to CSV",
	"6. Analyze Transactions",
	"7. Exit",
}

// Ledger is the set of operations the menu dispatches to.
type Ledger interface {
	LoadCSV(ctx context.Context, path string) error
	AddIncome(ctx context.Context, amount float64, category, description string) error
	AddExpense(ctx context.Context, amount float64, category, description string) error
	ViewSummary(ctx context.Context) (core.Summary, error)
	ExportCSV(ctx context.Context, path string) error
	Analyze(ctx context.Context) (core.Analysis, error)
}

// Console reads menu choices line by line and runs the matching operation.
type Console struct {
	ledger Ledger
	in     io.Reader
	out    io.Writer

	title lipgloss.Style
	warn  lipgloss.Style

	lines   chan string
	done    chan struct{}
	readErr error
}

func New(ledger Ledger, in io.Reader, out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		ledger: ledger,
		in:     in,
		out:    out,
		title:  r.NewStyle().Bold(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("#E74C3C")),
	}
}

// Run shows the menu until the user exits, the input ends or ctx is done.
// A pending prompt is abandoned as soon as ctx is done. Operation failures
// are reported by the ledger and never end the loop.
func (c *Console) Run(ctx context.Context) error {
	c.lines = make(chan string)
	c.done = make(chan struct{})
	defer close(c.done)
	go c.readLines()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.menu()
		choice, err := c.prompt(ctx, "Choose an option: ")
		if err != nil {
			return c.stop(err)
		}

		switch choice {
		case choiceLoad:
			path, err := c.prompt(ctx, "Enter CSV filename to load: ")
			if err != nil {
				return c.stop(err)
			}
			c.report(ctx, applog.OpLoad, c.ledger.LoadCSV(ctx, path))

		case choiceIncome, choiceExpense:
			label, add := "income", c.ledger.AddIncome
			if choice == choiceExpense {
				label, add = "expense", c.ledger.AddExpense
			}
			amount, category, description, err := c.transactionInput(ctx, label)
			if err != nil {
				return c.stop(err)
			}
			c.report(ctx, applog.OpAppend, add(ctx, amount, category, description))

		case choiceSummary:
			_, err := c.ledger.ViewSummary(ctx)
			c.report(ctx, applog.OpSummary, err)

		case choiceExport:
			path, err := c.prompt(ctx, "Enter filename to export (e.g., data.csv): ")
			if err != nil {
				return c.stop(err)
			}
			c.report(ctx, applog.OpExport, c.ledger.ExportCSV(ctx, path))

		case choiceAnalyze:
			_, err := c.ledger.Analyze(ctx)
			if errors.Is(err, core.ErrNoTransactions) {
				err = nil
			}
			c.report(ctx, applog.OpAnalyze, err)

		case choiceExit:
			fmt.Fprintln(c.out, goodbyeMessage)
			return nil

		default:
			fmt.Fprintln(c.out, c.warn.Render(invalidChoice))
		}
	}
}

func (c *Console) menu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.title.Render(menuTitle))
	for _, item := range menuItems {
		fmt.Fprintln(c.out, item)
	}
}

// readLines feeds input lines to prompt until the input ends or Run returns.
// readErr is set before lines is closed.
func (c *Console) readLines() {
	defer close(c.lines)
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-c.done:
			return
		}
	}
	c.readErr = scanner.Err()
}

// prompt prints label and returns the next input line without surrounding
// whitespace. It returns io.EOF once the input is exhausted and ctx.Err()
// when ctx is done first.
func (c *Console) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			if c.readErr != nil {
				return "", c.readErr
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// amount prompts until a valid non-negative amount is entered.
func (c *Console) amount(ctx context.Context, label string) (float64, error) {
	for {
		line, err := c.prompt(ctx, label)
		if err != nil {
			return 0, err
		}
		a, err := core.ParseAmount(line)
		if err == nil {
			return a, nil
		}
		fmt.Fprintln(c.out, c.warn.Render(invalidAmount))
	}
}

func (c *Console) transactionInput(ctx context.Context, label string) (amount float64, category, description string, err error) {
	if amount, err = c.amount(ctx, "Enter "+label+" amount: "); err != nil {
		return
	}
	if category, err = c.prompt(ctx, "Enter "+label+" category: "); err != nil {
		return
	}
	description, err = c.prompt(ctx, "Enter description: ")
	return
}

// stop ends the session after a prompt failed: the end of input is a clean
// exit, anything else is returned.
func (c *Console) stop(err error) error {
	fmt.Fprintln(c.out)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Console) report(ctx context.Context, op string, err error) {
	if err != nil {
		fields := applog.NewFields().
			WithComponent(applog.ComponentConsole).
			WithOperation(op).
			WithError(err)
		slog.DebugContext(ctx, "Menu operation failed", fields.ToSlice()...)
	}
}
