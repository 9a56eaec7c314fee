package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestSQLite(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	assert.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','fills')`)
	assert.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["fills"])
}

func TestSQLiteRunRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	run := RunRecord{
		RunID:        "01HRUN",
		Created:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Source:       "events.csv",
		Events:       10,
		Fills:        8,
		Wins:         5,
		Losses:       2,
		Anomalies:    1,
		TotalPnL:     42.25,
		TotalFees:    2.75,
		WinRate:      62.5,
		ProfitFactor: 3.1,
		MaxDrawdown:  18.0,
	}
	assert.NoError(t, j.RecordRun(run))

	got, err := j.GetRun("01HRUN")
	assert.NoError(t, err)
	assert.Equal(t, run.Source, got.Source)
	assert.Equal(t, run.Fills, got.Fills)
	assert.InDelta(t, run.TotalPnL, got.TotalPnL, 1e-9)
	assert.InDelta(t, run.WinRate, got.WinRate, 1e-9)
	assert.True(t, run.Created.Equal(got.Created))

	_, err = j.GetRun("missing")
	assert.Error(t, err)
}

func TestSQLiteFillQueries(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, rec := range []FillRecord{
		{ID: "E1", Symbol: "SOL-PERP", Side: "long", Price: 100, Quantity: 2, Status: "breakeven"},
		{ID: "E2", Symbol: "SOL-PERP", Side: "short", Price: 120, Quantity: 2, PnL: 40, PnLPct: 16.7, Status: "win"},
		{ID: "E3", Symbol: "JUP", Side: "long", Price: 1, Quantity: 100, Status: "breakeven"},
	} {
		rec.Time = base.Add(time.Duration(i) * time.Hour)
		assert.NoError(t, j.RecordFill("RUN1", rec))
	}

	byRun, err := j.ListFillsByRun("RUN1")
	assert.NoError(t, err)
	assert.Len(t, byRun, 3)
	assert.Equal(t, "E1", byRun[0].ID)
	assert.Equal(t, "E3", byRun[2].ID)

	window, err := j.ListFillsBetween(base, base.Add(90*time.Minute))
	assert.NoError(t, err)
	assert.Len(t, window, 2)

	empty, err := j.ListFillsByRun("NOPE")
	assert.NoError(t, err)
	assert.Empty(t, empty)
}
