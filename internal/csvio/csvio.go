// Package csvio converts between the ledger's comma-delimited file format and
// transactions. The file starts with the header row
//
//	type,amount,category,description
//
// followed by one row per transaction.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"ledger/internal/core"
)

// Header is the exact column layout of a ledger file.
var Header = []string{"type", "amount", "category", "description"}

var (
	ErrBadHeader  = errors.New("unexpected header")
	ErrFieldCount = errors.New("wrong number of fields")
)

// LoadError reports why a ledger file could not be loaded. Line is the
// 1-based line of the offending record, or 0 when the failure is not tied to
// a single record.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads every transaction from the file at path. Nothing is returned
// unless the whole file parses.
func Load(path string) ([]core.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	ts, err := Read(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return ts, nil
}

// Read parses a ledger from r.
func Read(r io.Reader) ([]core.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // checked per row to report a precise error

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Line: 1, Err: fmt.Errorf("%w: empty file", ErrBadHeader)}
	}
	if err != nil {
		return nil, &LoadError{Line: 1, Err: err}
	}
	if !equalHeader(header) {
		return nil, &LoadError{Line: 1, Err: fmt.Errorf("%w: got %q, want %q",
			ErrBadHeader, strings.Join(header, ","), strings.Join(Header, ","))}
	}

	var ts []core.Transaction
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var line int
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.StartLine
			}
			return nil, &LoadError{Line: line, Err: err}
		}
		line, _ := reader.FieldPos(0)
		t, err := ParseRecord(record)
		if err != nil {
			return nil, &LoadError{Line: line, Err: err}
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// ParseRecord turns one data row into a transaction.
func ParseRecord(record []string) (core.Transaction, error) {
	if len(record) != len(Header) {
		return core.Transaction{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(record), len(Header))
	}
	kind, err := core.ParseKind(record[0])
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(record[1])
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Kind:        kind,
		Amount:      amount,
		Category:    record[2],
		Description: record[3],
	}, nil
}

// Export writes the ledger to path, replacing any existing file.
func Export(path string, ts []core.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, ts); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Write encodes the header and every transaction to w.
func Write(w io.Writer, ts []core.Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return err
	}
	for _, t := range ts {
		if err := writer.Write(FormatRecord(t)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// FormatRecord is the inverse of ParseRecord. Amounts use the shortest
// representation that parses back to the same float64.
func FormatRecord(t core.Transaction) []string {
	return []string{
		t.Kind.String(),
		strconv.FormatFloat(t.Amount, 'f', -1, 64),
		t.Category,
		t.Description,
	}
}

func equalHeader(h []string) bool {
	if len(h) != len(Header) {
		return false
	}
	for i := range h {
		col := h[i]
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		if col != Header[i] {
			return false
		}
	}
	return true
}
