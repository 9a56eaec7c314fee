package run

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/unnamed-lab/tradelens/event"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestReadEventsCSV(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "events.csv", `id,time,symbol,kind,side,price,qty,fee_maker,fee_taker,fee_total,rebate,funding,order_type
E1,2024-03-01T12:00:00Z,SOL-PERP,fill,buy,100,2,0,1,1,0,0,market
E2,2024-03-01T12:05:00Z,SOL-PERP,fill,sell,120,2,0.5,0,0.5,0.1,0,limit
E3,2024-03-01T16:00:00Z,SOL-PERP,funding,,0,0,,,,,0.25
E4,2024-03-01T17:00:00Z,SOL-PERP,fee,,0,0,,,2
`)

	events, err := ReadEventsCSV(path)
	assert.NoError(t, err)
	assert.Len(t, events, 4)

	assert.Equal(t, "E1", events[0].ID)
	assert.Equal(t, event.KindFill, events[0].Kind)
	assert.Equal(t, event.Long, events[0].Side)
	assert.Equal(t, 100.0, events[0].Price)
	assert.Equal(t, 2.0, events[0].Qty)
	assert.Equal(t, "market", events[0].OrderType)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), events[0].Time)

	assert.Equal(t, event.Short, events[1].Side)
	assert.Equal(t, 0.1, events[1].Rebate)

	assert.Equal(t, event.KindFunding, events[2].Kind)
	assert.Equal(t, 0.25, events[2].Funding)

	assert.Equal(t, event.KindFee, events[3].Kind)
	assert.Equal(t, 2.0, events[3].FeeTotal)
	assert.Equal(t, "", events[3].OrderType)
}

func TestReadEventsCSVNoHeader(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "events.csv", "E1,2024-03-01T12:00:00Z,SOL-PERP,fill,buy,100,2\n")

	events, err := ReadEventsCSV(path)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "E1", events[0].ID)
}

func TestReadEventsCSVErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "bad_time", data: "E1,yesterday,SOL-PERP,fill,buy,100,2\n"},
		{name: "bad_kind", data: "E1,2024-03-01T12:00:00Z,SOL-PERP,liquidation,buy,100,2\n"},
		{name: "bad_side", data: "E1,2024-03-01T12:00:00Z,SOL-PERP,fill,sideways,100,2\n"},
		{name: "bad_number", data: "E1,2024-03-01T12:00:00Z,SOL-PERP,fill,buy,abc,2\n"},
		{name: "too_few_columns", data: "E1,2024-03-01T12:00:00Z,SOL-PERP\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, "events.csv", tt.data)
			_, err := ReadEventsCSV(path)
			assert.Error(t, err)
		})
	}
}

func TestReadMarksCSV(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "marks.csv", "symbol,price\nSOL-PERP,105.5\nBONK,0.000008\n")

	marks, err := ReadMarksCSV(path)
	assert.NoError(t, err)
	assert.Len(t, marks, 2)
	assert.Equal(t, 105.5, marks["SOL-PERP"])
	assert.Equal(t, 0.000008, marks["BONK"])
}

func TestReadMarksCSVBadPrice(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "marks.csv", "SOL-PERP,not-a-price\n")
	_, err := ReadMarksCSV(path)
	assert.Error(t, err)
}
