package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"ledger/internal/core"
	"ledger/internal/csvio"
	"ledger/internal/ports"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client mirrors the ledger into one tab of a spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ports.LedgerExporter = (*Client)(nil)

// Credentials selects the service account used to talk to the Sheets API.
// JSON wins over File; with neither set GOOGLE_APPLICATION_CREDENTIALS is used.
type Credentials struct {
	JSON string
	File string
}

// New creates a Sheets client for the given spreadsheet and tab.
func New(ctx context.Context, spreadsheetID, sheetName string, creds Credentials) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = "Ledger"
	}

	svc, err := newSheetsService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, creds Credentials) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(creds.JSON)
	serviceAccountFile := strings.TrimSpace(creds.File)
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		var err error
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	slog.DebugContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Export clears the tab and writes the header followed by one row per
// transaction. It returns the A1 range that was written.
func (c *Client) Export(ctx context.Context, ts []core.Transaction) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:D", c.sheetName)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to clear %s: %w", clearRange, err)
	}

	ref := dataRange(c.sheetName, len(ts))
	vr := &gsheet.ValueRange{Values: toValues(ts)}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, ref, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to update %s: %w", ref, err)
	}

	slog.InfoContext(ctx, "Ledger exported to Google Sheets", "range", ref, "count", len(ts))
	return ref, nil
}

// dataRange is the A1 range covering the header and n data rows.
func dataRange(sheet string, n int) string {
	return fmt.Sprintf("%s!A1:D%d", sheet, n+1)
}

// toValues lays out the ledger the same way as the CSV export.
func toValues(ts []core.Transaction) [][]any {
	values := make([][]any, 0, len(ts)+1)
	header := make([]any, len(csvio.Header))
	for i, h := range csvio.Header {
		header[i] = h
	}
	values = append(values, header)
	for _, t := range ts {
		values = append(values, []any{t.Kind.String(), t.Amount, t.Category, t.Description})
	}
	return values
}
