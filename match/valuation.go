package match

import (
	"sort"

	"github.com/unnamed-lab/tradelens/event"
)

// LotValue is the mark-to-market view of one open lot.
type LotValue struct {
	Symbol     string
	Side       event.Side
	EventID    string
	EntryPrice float64
	Mark       float64
	Qty        float64
	PnL        float64
}

// UnpricedLot identifies an open lot that could not be valued because no
// mark price was supplied for its instrument.
type UnpricedLot struct {
	Symbol  string
	Side    event.Side
	EventID string
	Qty     float64
}

// Valuation is the result of marking open inventory against a price
// snapshot. Unpriced lots are excluded from Total rather than valued at
// zero, so a stale price feed understates coverage, not risk.
type Valuation struct {
	Total    float64
	Lots     []LotValue
	Unpriced []UnpricedLot
}

// Value marks every remaining lot in every book against the given mark
// prices. Long lot PnL = (mark − entry) * remaining; shorts invert. The
// books are never mutated: valuation is a pure read over a point-in-time
// snapshot.
func Value(books map[string]*Book, marks map[string]float64) Valuation {
	var v Valuation

	symbols := make([]string, 0, len(books))
	for sym := range books {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	for _, sym := range symbols {
		b := books[sym]
		mark, priced := marks[b.Symbol]

		appendSide := func(side event.Side, lots []Lot) {
			for _, lot := range lots {
				if !priced {
					v.Unpriced = append(v.Unpriced, UnpricedLot{
						Symbol:  b.Symbol,
						Side:    side,
						EventID: lot.EventID,
						Qty:     lot.RemainingQty,
					})
					continue
				}
				pnl := (mark - lot.EntryPrice) * lot.RemainingQty
				if side == event.Short {
					pnl = -pnl
				}
				v.Total += pnl
				v.Lots = append(v.Lots, LotValue{
					Symbol:     b.Symbol,
					Side:       side,
					EventID:    lot.EventID,
					EntryPrice: lot.EntryPrice,
					Mark:       mark,
					Qty:        lot.RemainingQty,
					PnL:        pnl,
				})
			}
		}

		appendSide(event.Long, b.Longs)
		appendSide(event.Short, b.Shorts)
	}

	return v
}
