// journal persists reconciliation output for downstream tooling. The core
// pipeline never requires it; callers opt in at the boundary.
package journal

import (
	"time"

	"github.com/unnamed-lab/tradelens/event"
)

// FillRecord is the exported row for one PnL-annotated event. Column order
// in every export format is fixed: id, time, symbol, side, price, quantity,
// fee, pnl, pnl_pct, status.
type FillRecord struct {
	ID       string
	Time     time.Time
	Symbol   string
	Side     string
	Price    float64
	Quantity float64
	Fee      float64
	PnL      float64
	PnLPct   float64
	Status   string
}

// FromMatched converts a matched event into its export row.
func FromMatched(m event.Matched) FillRecord {
	return FillRecord{
		ID:       m.ID,
		Time:     m.Time,
		Symbol:   m.Symbol,
		Side:     m.Side.String(),
		Price:    m.Price,
		Quantity: m.Qty,
		Fee:      m.FeeTotal - m.Rebate,
		PnL:      m.PnL,
		PnLPct:   m.PnLPct,
		Status:   string(m.Status),
	}
}

// RunRecord summarizes one reconciliation run.
type RunRecord struct {
	RunID   string
	Created time.Time
	Source  string // where the event stream came from

	Events    int
	Fills     int
	Wins      int
	Losses    int
	Anomalies int

	TotalPnL     float64
	TotalFees    float64
	WinRate      float64
	ProfitFactor float64
	MaxDrawdown  float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordFill(runID string, f FillRecord) error
	Close() error
}
