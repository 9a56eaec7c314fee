// match reconciles a canonical trade-event stream into realized PnL using
// FIFO position matching. Each instrument keeps two independent inventory
// directions; a fill closes against the opposite side's oldest lots first
// and opens new inventory only when there is nothing left to close.
package match

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/unnamed-lab/tradelens/event"
)

// epsilon for "queue exhausted" comparisons on quantities.
const epsilon = event.Epsilon

// Anomaly records a non-fatal matching irregularity: an exit fill whose
// quantity outlived the opposite-direction inventory. The residual quantity
// is dropped rather than opening a position in the exit's own direction.
type Anomaly struct {
	EventID     string
	Time        time.Time
	Symbol      string
	Side        event.Side
	ResidualQty float64
}

func (a Anomaly) String() string {
	return fmt.Sprintf("event %s: %s %s exit has %.10g unmatched qty, residual dropped",
		a.EventID, a.Symbol, a.Side, a.ResidualQty)
}

// Result is the output of one matching run: one annotated event per input
// event in input order, the final open-inventory books per symbol, and any
// anomalies encountered along the way.
type Result struct {
	Events    []event.Matched
	Books     map[string]*Book
	Anomalies []Anomaly
}

// Matcher runs FIFO reconciliation. The zero value is not usable; construct
// with New. A Matcher owns its books for the duration of one Match call and
// resets them on the next, so a single Matcher may be reused sequentially
// but never concurrently.
type Matcher struct {
	log   logrus.FieldLogger
	books map[string]*Book
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger routes anomaly warnings to the given logger instead of the
// logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Matcher) { m.log = log }
}

func New(opts ...Option) *Matcher {
	m := &Matcher{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Matcher) book(symbol string) *Book {
	b, ok := m.books[symbol]
	if !ok {
		b = &Book{Symbol: symbol}
		m.books[symbol] = b
	}
	return b
}

// Match reconciles events into PnL-annotated events. Input is stably
// re-sorted ascending by timestamp (ties keep arrival order), every event is
// validated, and exactly one annotated event is emitted per input event. A
// malformed event aborts the run with a *event.ValidationError; matching
// anomalies never do.
func (m *Matcher) Match(events []event.Event) (*Result, error) {
	ordered := make([]event.Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Time.Before(ordered[j].Time)
	})

	for _, ev := range ordered {
		if err := ev.Validate(); err != nil {
			return nil, err
		}
	}

	m.books = make(map[string]*Book)
	res := &Result{
		Events: make([]event.Matched, 0, len(ordered)),
	}

	for _, ev := range ordered {
		if ev.Kind != event.KindFill {
			res.Events = append(res.Events, event.Matched{
				Event:  ev,
				Status: event.StatusBreakeven,
			})
			continue
		}
		res.Events = append(res.Events, m.matchFill(ev, res))
	}

	res.Books = m.books
	return res, nil
}

// matchFill closes the fill against opposite inventory, or opens a new lot
// when there is none.
func (m *Matcher) matchFill(ev event.Event, res *Result) event.Matched {
	b := m.book(ev.Symbol)
	opposite := b.queue(-ev.Side)

	if len(*opposite) == 0 {
		b.push(ev)
		return event.Matched{Event: ev, Status: event.StatusBreakeven}
	}

	var (
		pnl       float64
		notional  float64
		remaining = ev.Qty
	)

	for remaining > epsilon && len(*opposite) > 0 {
		lot := &(*opposite)[0]

		matched := lot.RemainingQty
		if remaining < matched {
			matched = remaining
		}

		entryFee := lot.EntryFee * (matched / lot.OrigQty)
		exitFee := ev.FeeTotal * (matched / ev.Qty)

		entryValue := matched * lot.EntryPrice
		exitValue := matched * ev.Price

		// Closing a long means this fill is a sell: profit when exit is
		// above entry. Closing a short inverts.
		var gross float64
		if ev.Side == event.Short {
			gross = exitValue - entryValue
		} else {
			gross = entryValue - exitValue
		}

		pnl += gross - entryFee - exitFee
		notional += exitValue

		lot.RemainingQty -= matched
		remaining -= matched

		if lot.RemainingQty <= epsilon {
			*opposite = (*opposite)[1:]
		}
	}

	if remaining > epsilon {
		// Reference behavior: drop the residual, never flip it into a new
		// position in the exit's own direction.
		a := Anomaly{
			EventID:     ev.ID,
			Time:        ev.Time,
			Symbol:      ev.Symbol,
			Side:        ev.Side,
			ResidualQty: remaining,
		}
		res.Anomalies = append(res.Anomalies, a)
		m.log.WithFields(logrus.Fields{
			"event":    a.EventID,
			"symbol":   a.Symbol,
			"side":     a.Side.String(),
			"residual": a.ResidualQty,
		}).Warn("exit quantity exceeds open inventory, residual dropped")
	}

	pct := 0.0
	if notional != 0 {
		pct = pnl / notional * 100
	}

	return event.Matched{
		Event:  ev,
		PnL:    pnl,
		PnLPct: pct,
		Status: event.StatusOf(pnl),
	}
}

// push opens a new lot on the fill's own side.
func (b *Book) push(ev event.Event) {
	q := b.queue(ev.Side)
	*q = append(*q, Lot{
		EventID:      ev.ID,
		EntryTime:    ev.Time,
		EntryPrice:   ev.Price,
		EntryFee:     ev.FeeTotal,
		OrigQty:      ev.Qty,
		RemainingQty: ev.Qty,
	})
}
