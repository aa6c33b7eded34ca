package models

import (
	"gorm.io/gorm"
)

// SheetRow is one spreadsheet row kept in the local database. Cells holds the
// JSON-encoded row values; TeamKey is the normalized second column so distinct
// teams can be counted in SQL.
type SheetRow struct {
	gorm.Model
	Sheet   string `gorm:"index:idx_sheet_team"`
	TeamKey string `gorm:"index:idx_sheet_team"`
	Cells   string
}
