package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/jhconstruction/backoffice/internal/config"
)

const summaryRange = "Summaries!A:F"

// Exporter appends periodic financial summaries to a spreadsheet the
// management team reads. The export is best-effort bookkeeping, not a
// system of record.
type Exporter interface {
	AppendSummary(ctx context.Context, periodStart, periodEnd time.Time, income, expense, balance float64) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSummary appends one summary row for the given period.
func (e *GoogleSheetExporter) AppendSummary(ctx context.Context, periodStart, periodEnd time.Time, income, expense, balance float64) error {
	values := []interface{}{
		time.Now().UTC().Format(time.RFC3339),
		periodStart.Format("2006-01-02"),
		periodEnd.Format("2006-01-02"),
		income,
		expense,
		balance,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, summaryRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append summary row: %w", err)
	}

	e.logger.Debug("summary row appended",
		zap.String("period_start", periodStart.Format("2006-01-02")),
		zap.String("period_end", periodEnd.Format("2006-01-02")))
	return nil
}
