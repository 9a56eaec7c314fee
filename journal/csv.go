// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"
)

// FillHeader is the stable export column order relied on by downstream
// tooling. Do not reorder.
var FillHeader = []string{"id", "time", "symbol", "side", "price", "quantity", "fee", "pnl", "pnl_pct", "status"}

type CSVJournal struct {
	fills *csv.Writer
	ff    *os.File
}

func NewCSV(fillsPath string) (*CSVJournal, error) {
	ff, err := os.Create(fillsPath)
	if err != nil {
		return nil, err
	}

	fw := csv.NewWriter(ff)
	if err := fw.Write(FillHeader); err != nil {
		return nil, err
	}
	fw.Flush()
	if err := fw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{fills: fw, ff: ff}, nil
}

// RecordRun is a no-op for CSV output; the run summary has no row form.
func (j *CSVJournal) RecordRun(RunRecord) error { return nil }

func (j *CSVJournal) RecordFill(_ string, rec FillRecord) error {
	j.fills.Write(fillRow(rec))
	j.fills.Flush()
	return j.fills.Error()
}

func (j *CSVJournal) Close() error {
	j.fills.Flush()
	if err := j.fills.Error(); err != nil {
		return err
	}
	return j.ff.Close()
}

// WriteFillsCSV writes the header plus one row per record to w, for callers
// exporting to something other than a file.
func WriteFillsCSV(w io.Writer, recs []FillRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(FillHeader); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := cw.Write(fillRow(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fillRow(rec FillRecord) []string {
	return []string{
		rec.ID,
		rec.Time.Format(time.RFC3339),
		rec.Symbol,
		rec.Side,
		f(rec.Price),
		f(rec.Quantity),
		f(rec.Fee),
		f(rec.PnL),
		f(rec.PnLPct),
		rec.Status,
	}
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
