package rowstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type fakeSheets struct {
	mu      sync.Mutex
	values  map[string][][]interface{}
	appends []appendCall
	failGet bool
}

type appendCall struct {
	path             string
	valueInputOption string
	insertDataOption string
	rows             [][]interface{}
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet:
		if f.failGet {
			http.Error(w, `{"error":{"code":403,"message":"The caller does not have permission"}}`, http.StatusForbidden)
			return
		}
		sheet := sheetFromPath(r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"range":  sheet + "!A1:F100",
			"values": f.values[sheet],
		})
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
		var body sheets.ValueRange
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.appends = append(f.appends, appendCall{
			path:             r.URL.Path,
			valueInputOption: r.URL.Query().Get("valueInputOption"),
			insertDataOption: r.URL.Query().Get("insertDataOption"),
			rows:             body.Values,
		})
		json.NewEncoder(w).Encode(map[string]interface{}{"spreadsheetId": "sheet-id"})
	default:
		http.NotFound(w, r)
	}
}

// sheetFromPath extracts the sheet name from .../values/'<sheet>'!A:F.
func sheetFromPath(path string) string {
	i := strings.LastIndex(path, "/values/")
	rng := strings.TrimSuffix(path[i+len("/values/"):], ":append")
	sheet := rng[:strings.LastIndex(rng, "!")]
	if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	return sheet
}

func newTestSheetsStore(t *testing.T, fake *fakeSheets) *SheetsStore {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return NewSheetsStore(svc, "sheet-id", zap.NewNop())
}

func TestSheetsStore_RowCountSkipsHeader(t *testing.T) {
	fake := &fakeSheets{values: map[string][][]interface{}{
		"No_Escape": {
			{"Timestamp", "Name", "Email", "Phone", "Roll Number"},
			{"ts", "Alice", "a@example.com"},
			{"ts", "Bob", "b@example.com"},
		},
		"HeaderOnly": {{"Timestamp", "Name"}},
	}}
	store := newTestSheetsStore(t, fake)
	ctx := context.Background()

	count, err := store.RowCount(ctx, "No_Escape")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = store.RowCount(ctx, "HeaderOnly")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = store.RowCount(ctx, "Missing")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSheetsStore_DistinctTeamCount(t *testing.T) {
	fake := &fakeSheets{values: map[string][][]interface{}{
		"Cyber_Quest": {
			{"Timestamp", "Team ID", "Member", "Roll", "Email", "Phone"},
			{"ts", "T1", "Alice"},
			{"ts", "T1", "Bob"},
			{"ts", "t1 ", "Carol"},
			{"ts", "T2", "Dan"},
			{"ts"},
			{"ts", "", "Eve"},
		},
	}}
	store := newTestSheetsStore(t, fake)

	teams, err := store.DistinctTeamCount(context.Background(), "Cyber_Quest")
	require.NoError(t, err)
	assert.Equal(t, 2, teams)
}

func TestSheetsStore_AppendRowsSingleCall(t *testing.T) {
	fake := &fakeSheets{}
	store := newTestSheetsStore(t, fake)

	err := store.AppendRows(context.Background(), "Cyber_Quest", [][]string{
		{"ts", "T1", "Alice", "101", "t1@example.com", ""},
		{"ts", "T1", "Bob", "102", "t1@example.com", ""},
	})
	require.NoError(t, err)

	require.Len(t, fake.appends, 1)
	call := fake.appends[0]
	assert.Equal(t, "Cyber_Quest", sheetFromPath(call.path))
	assert.Equal(t, "RAW", call.valueInputOption)
	assert.Equal(t, "INSERT_ROWS", call.insertDataOption)
	require.Len(t, call.rows, 2)
	assert.Equal(t, "Bob", call.rows[1][2])
}

func TestSheetsStore_AppendRow(t *testing.T) {
	fake := &fakeSheets{}
	store := newTestSheetsStore(t, fake)

	require.NoError(t, store.AppendRow(context.Background(), "No_Escape", []string{"ts", "Alice", "a@example.com", "", ""}))

	require.Len(t, fake.appends, 1)
	assert.Len(t, fake.appends[0].rows[0], 5)
}

func TestSheetsStore_ReadError(t *testing.T) {
	fake := &fakeSheets{failGet: true}
	store := newTestSheetsStore(t, fake)

	_, err := store.RowCount(context.Background(), "No_Escape")
	assert.ErrorContains(t, err, "read sheet No_Escape")
}

func TestSheetRange(t *testing.T) {
	assert.Equal(t, "'No_Escape'!A:F", sheetRange("No_Escape"))
	assert.Equal(t, "'Cyber Quest'!A:F", sheetRange("Cyber Quest"))
	assert.Equal(t, "'Devil''s Whisper'!A:F", sheetRange("Devil's Whisper"))
}

func TestSheetsStore_SheetNamesWithSpacesAndQuotes(t *testing.T) {
	fake := &fakeSheets{values: map[string][][]interface{}{
		"Devil's Whisper": {
			{"Timestamp", "Name"},
			{"ts", "Alice"},
		},
	}}
	store := newTestSheetsStore(t, fake)
	ctx := context.Background()

	count, err := store.RowCount(ctx, "Devil's Whisper")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, store.AppendRow(ctx, "Cyber Quest", []string{"ts", "T1", "Alice", "", "", ""}))
	require.Len(t, fake.appends, 1)
	assert.Equal(t, "Cyber Quest", sheetFromPath(fake.appends[0].path))
}

func TestSheetsStore_AppendKeepsValuesRaw(t *testing.T) {
	fake := &fakeSheets{}
	store := newTestSheetsStore(t, fake)

	require.NoError(t, store.AppendRow(context.Background(), "No_Escape", []string{"ts", "=HYPERLINK(\"x\")", "a@example.com", "+0123456789", "007"}))

	require.Len(t, fake.appends, 1)
	call := fake.appends[0]
	assert.Equal(t, "RAW", call.valueInputOption)
	assert.Equal(t, "=HYPERLINK(\"x\")", call.rows[0][1])
	assert.Equal(t, "+0123456789", call.rows[0][3])
}
