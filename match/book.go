package match

import (
	"time"

	"github.com/unnamed-lab/tradelens/event"
)

// Lot is an open position fragment created by one opening fill. RemainingQty
// only decreases; a lot is popped from its queue once it drops within
// epsilon of zero.
type Lot struct {
	EventID      string
	EntryTime    time.Time
	EntryPrice   float64
	EntryFee     float64
	OrigQty      float64
	RemainingQty float64
}

// Book holds the open inventory for one instrument: a FIFO queue of long
// lots and a FIFO queue of short lots. A Book is owned by exactly one
// matching run; Value reads it, nothing else touches it.
type Book struct {
	Symbol string
	Longs  []Lot
	Shorts []Lot
}

// queue returns the lot queue for the given side.
func (b *Book) queue(side event.Side) *[]Lot {
	if side == event.Long {
		return &b.Longs
	}
	return &b.Shorts
}

// OpenQty sums remaining quantity on one side.
func (b *Book) OpenQty(side event.Side) float64 {
	var total float64
	for _, l := range *b.queue(side) {
		total += l.RemainingQty
	}
	return total
}

// Empty reports whether the book holds no open inventory on either side.
func (b *Book) Empty() bool {
	return len(b.Longs) == 0 && len(b.Shorts) == 0
}
