package run

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/unnamed-lab/tradelens/event"
)

// ReadEventsCSV decodes a canonical event file. This is a thin stand-in for
// the ledger-decoding adapter; rows must already be deduplicated and sorted.
//
// Expected columns:
// id,time,symbol,kind,side,price,qty,fee_maker,fee_taker,fee_total,rebate,funding,order_type
// Header allowed; trailing columns may be omitted.
func ReadEventsCSV(path string) ([]event.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var (
		out      []event.Event
		sawFirst bool
		line     int
	)
	for {
		row, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(row) == 0 {
			continue
		}

		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "id") {
				continue
			}
		}

		ev, err := parseEventRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		out = append(out, ev)
	}
}

func parseEventRow(row []string) (event.Event, error) {
	if len(row) < 7 {
		return event.Event{}, fmt.Errorf("expected at least 7 columns, got %d", len(row))
	}

	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(row[1]))
	if err != nil {
		return event.Event{}, fmt.Errorf("bad time: %w", err)
	}

	kind, err := event.ParseKind(strings.TrimSpace(row[3]))
	if err != nil {
		return event.Event{}, err
	}

	side := event.Long
	switch strings.ToLower(strings.TrimSpace(row[4])) {
	case "buy", "long", "":
	case "sell", "short":
		side = event.Short
	default:
		return event.Event{}, fmt.Errorf("unknown side %q", row[4])
	}

	ev := event.Event{
		ID:     strings.TrimSpace(row[0]),
		Time:   ts.UTC(),
		Symbol: strings.TrimSpace(row[2]),
		Kind:   kind,
		Side:   side,
	}

	nums := []struct {
		idx int
		dst *float64
	}{
		{5, &ev.Price},
		{6, &ev.Qty},
		{7, &ev.FeeMaker},
		{8, &ev.FeeTaker},
		{9, &ev.FeeTotal},
		{10, &ev.Rebate},
		{11, &ev.Funding},
	}
	for _, n := range nums {
		if n.idx >= len(row) || strings.TrimSpace(row[n.idx]) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[n.idx]), 64)
		if err != nil {
			return event.Event{}, fmt.Errorf("bad number in column %d: %w", n.idx, err)
		}
		*n.dst = v
	}

	if len(row) > 12 {
		ev.OrderType = strings.TrimSpace(row[12])
	}
	return ev, nil
}

// ReadMarksCSV decodes a symbol,price snapshot for unrealized valuation.
// Header allowed.
func ReadMarksCSV(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	marks := map[string]float64{}
	sawFirst := false
	for {
		row, err := r.Read()
		if err == io.EOF {
			return marks, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			continue
		}
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "symbol") {
				continue
			}
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad mark price for %s: %w", row[0], err)
		}
		marks[strings.TrimSpace(row[0])] = price
	}
}
