package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/feedbook/internal/config"
	"github.com/mamadbah2/feedbook/internal/domain/models"
)

// DigestRange is where digest rows are appended: date, category, stock items,
// purchased, paid, due, sales profit.
const DigestRange = "Digest!A:G"

// DigestExporter appends digest rows to an external spreadsheet.
type DigestExporter interface {
	AppendDigest(ctx context.Context, rows []models.DigestRow) error
}

// GoogleSheetRepository implements DigestExporter using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed exporter.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(opts) == 0 {
		opts = []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope)}
	}
	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDigest appends one row per digest line in a single call.
func (r *GoogleSheetRepository) AppendDigest(ctx context.Context, rows []models.DigestRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.WriteRows(ctx, DigestRange, digestValues(rows))
}

// WriteRows appends the provided values to the supplied sheet range.
func (r *GoogleSheetRepository) WriteRows(ctx context.Context, sheetRange string, values [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: values}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("rows appended to sheet", zap.String("range", sheetRange), zap.Int("rows", len(values)))
	return nil
}

func digestValues(rows []models.DigestRow) [][]interface{} {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, []interface{}{
			row.Date.Format(models.DateLayout),
			string(row.Category),
			row.StockItems,
			row.TotalPurchased,
			row.TotalPaid,
			row.BalanceDue,
			row.SalesProfit,
		})
	}
	return values
}
