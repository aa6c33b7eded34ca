package rowstore

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	GoogleTokenURL = "https://oauth2.googleapis.com/token"

	// sheetColumns covers the widest row layout (team rows use six columns).
	sheetColumns = "A:F"
)

// SheetsStore keeps each table as a sheet (tab) of one Google spreadsheet.
// The first row of every sheet is a header.
type SheetsStore struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	logger        *zap.Logger
}

// NewServiceAccountSheetsService authenticates against the Sheets API as a
// service account. privateKey may contain escaped "\n" sequences as they
// appear in environment variables.
func NewServiceAccountSheetsService(ctx context.Context, email, privateKey string) (*sheets.Service, error) {
	conf := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(strings.ReplaceAll(privateKey, `\n`, "\n")),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   GoogleTokenURL,
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

func NewSheetsStore(svc *sheets.Service, spreadsheetID string, logger *zap.Logger) *SheetsStore {
	return &SheetsStore{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}
}

func (s *SheetsStore) dataRows(ctx context.Context, table string) ([][]interface{}, error) {
	resp, err := s.values.Get(s.spreadsheetID, sheetRange(table)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", table, err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	return resp.Values[1:], nil
}

func (s *SheetsStore) RowCount(ctx context.Context, table string) (int, error) {
	rows, err := s.dataRows(ctx, table)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("counted rows", zap.String("sheet", table), zap.Int("rows", len(rows)))
	return len(rows), nil
}

func (s *SheetsStore) DistinctTeamCount(ctx context.Context, table string) (int, error) {
	rows, err := s.dataRows(ctx, table)
	if err != nil {
		return 0, err
	}

	teams := make(map[string]struct{})
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		key := TeamKey(fmt.Sprint(row[1]))
		if key == "" {
			continue
		}
		teams[key] = struct{}{}
	}
	s.logger.Debug("counted teams", zap.String("sheet", table), zap.Int("teams", len(teams)))
	return len(teams), nil
}

func (s *SheetsStore) AppendRow(ctx context.Context, table string, values []string) error {
	return s.AppendRows(ctx, table, [][]string{values})
}

// AppendRows sends all rows in a single append request.
func (s *SheetsStore) AppendRows(ctx context.Context, table string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	vr := &sheets.ValueRange{Values: make([][]interface{}, 0, len(rows))}
	for _, values := range rows {
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		vr.Values = append(vr.Values, cells)
	}

	_, err := s.values.Append(s.spreadsheetID, sheetRange(table), vr).
		// Cells are stored as typed: no formulas, phone numbers keep leading zeros and '+'.
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %d rows to sheet %s: %w", len(rows), table, err)
	}
	s.logger.Debug("appended rows", zap.String("sheet", table), zap.Int("rows", len(rows)))
	return nil
}

// sheetRange quotes the sheet name so names with spaces or apostrophes
// resolve in A1 notation.
func sheetRange(table string) string {
	return "'" + strings.ReplaceAll(table, "'", "''") + "'!" + sheetColumns
}
