package rowstore

import (
	"context"
	"testing"

	"github.com/gdg-garage/event-registration-api/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDBStore(t *testing.T) *DBStore {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	return NewDBStore(db, zap.NewNop())
}

func TestDBStore_AppendAndCount(t *testing.T) {
	ctx := context.Background()
	store := newTestDBStore(t)

	require.NoError(t, store.AppendRow(ctx, "Solo", []string{"ts", "Alice", "a@example.com", "", ""}))
	require.NoError(t, store.AppendRow(ctx, "Solo", []string{"ts", "Bob", "b@example.com", "555", "7"}))
	require.NoError(t, store.AppendRow(ctx, "Other", []string{"ts", "Carol", "c@example.com", "", ""}))

	count, err := store.RowCount(ctx, "Solo")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = store.RowCount(ctx, "Empty")
	require.NoError(t, err)
	assert.Zero(t, count)

	rows, err := store.Rows(ctx, "Solo")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ts", "Alice", "a@example.com", "", ""},
		{"ts", "Bob", "b@example.com", "555", "7"},
	}, rows)
}

func TestDBStore_DistinctTeamCount(t *testing.T) {
	ctx := context.Background()
	store := newTestDBStore(t)

	require.NoError(t, store.AppendRows(ctx, "Teams", [][]string{
		{"ts", "T1", "Alice", "1", "t1@example.com", ""},
		{"ts", "T1", "Bob", "2", "t1@example.com", ""},
	}))
	require.NoError(t, store.AppendRow(ctx, "Teams", []string{"ts", " t1 ", "Late", "", "t1@example.com", ""}))
	require.NoError(t, store.AppendRow(ctx, "Teams", []string{"ts", "T2", "Carol", "", "t2@example.com", ""}))
	require.NoError(t, store.AppendRow(ctx, "Teams", []string{"ts", "", "Nobody", "", "", ""}))

	teams, err := store.DistinctTeamCount(ctx, "Teams")
	require.NoError(t, err)
	assert.Equal(t, 2, teams)

	rows, err := store.RowCount(ctx, "Teams")
	require.NoError(t, err)
	assert.Equal(t, 5, rows)
}

func TestDBStore_AppendRowsEmpty(t *testing.T) {
	store := newTestDBStore(t)
	require.NoError(t, store.AppendRows(context.Background(), "Teams", nil))

	count, err := store.RowCount(context.Background(), "Teams")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDBStore_CancelledContext(t *testing.T) {
	store := newTestDBStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.RowCount(ctx, "Solo")
	assert.Error(t, err)
}
