// Package rowstore adapts spreadsheet-like backends that keep one table per
// event and one row per registrant.
package rowstore

import (
	"context"
	"strings"
)

type Store interface {
	// RowCount returns the number of data rows in table, header excluded.
	RowCount(ctx context.Context, table string) (int, error)
	// DistinctTeamCount returns the number of distinct non-empty values in
	// the second column of table.
	DistinctTeamCount(ctx context.Context, table string) (int, error)
	AppendRow(ctx context.Context, table string, values []string) error
}

// BatchAppender is implemented by stores that can write several rows in a
// single call.
type BatchAppender interface {
	AppendRows(ctx context.Context, table string, rows [][]string) error
}

// TeamKey normalizes a team identifier for distinct counting.
func TeamKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func teamKeyOf(values []string) string {
	if len(values) < 2 {
		return ""
	}
	return TeamKey(values[1])
}
