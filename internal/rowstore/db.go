package rowstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gdg-garage/event-registration-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBStore keeps rows in a SQL database through gorm.
type DBStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDBStore(db *gorm.DB, logger *zap.Logger) *DBStore {
	return &DBStore{db: db, logger: logger}
}

func (s *DBStore) RowCount(ctx context.Context, table string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.SheetRow{}).
		Where("sheet = ?", table).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count rows in %s: %w", table, err)
	}
	return int(count), nil
}

func (s *DBStore) DistinctTeamCount(ctx context.Context, table string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.SheetRow{}).
		Where("sheet = ? AND team_key <> ''", table).
		Distinct("team_key").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count teams in %s: %w", table, err)
	}
	return int(count), nil
}

func (s *DBStore) AppendRow(ctx context.Context, table string, values []string) error {
	row, err := newSheetRow(table, values)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("append row to %s: %w", table, err)
	}
	s.logger.Debug("appended row", zap.String("table", table), zap.Uint("id", row.ID))
	return nil
}

// AppendRows writes all rows in one transaction.
func (s *DBStore) AppendRows(ctx context.Context, table string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	records := make([]models.SheetRow, 0, len(rows))
	for _, values := range rows {
		row, err := newSheetRow(table, values)
		if err != nil {
			return err
		}
		records = append(records, row)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("append %d rows to %s: %w", len(rows), table, err)
	}
	s.logger.Debug("appended rows", zap.String("table", table), zap.Int("rows", len(rows)))
	return nil
}

// Rows returns the data rows of table in insertion order.
func (s *DBStore) Rows(ctx context.Context, table string) ([][]string, error) {
	var records []models.SheetRow
	err := s.db.WithContext(ctx).
		Where("sheet = ?", table).
		Order("id asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("read rows from %s: %w", table, err)
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		var values []string
		if err := json.Unmarshal([]byte(r.Cells), &values); err != nil {
			return nil, fmt.Errorf("decode row %d of %s: %w", r.ID, table, err)
		}
		rows = append(rows, values)
	}
	return rows, nil
}

func newSheetRow(table string, values []string) (models.SheetRow, error) {
	cells, err := json.Marshal(values)
	if err != nil {
		return models.SheetRow{}, fmt.Errorf("encode row for %s: %w", table, err)
	}
	return models.SheetRow{
		Sheet:   table,
		TeamKey: teamKeyOf(values),
		Cells:   string(cells),
	}, nil
}
