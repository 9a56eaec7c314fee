// event defines the canonical trade-event model produced by ledger decoding
// adapters and consumed by the matcher and analytics. The adapter contract is
// simple: events arrive deduplicated and sorted ascending by timestamp, with
// arrival order breaking ties.
package event

import (
	"fmt"
	"math"
	"time"
)

// Kind discriminates what a decoded ledger entry represents. Only fills
// participate in position matching; everything else flows through for fee
// and funding accounting.
type Kind int8

const (
	KindFill Kind = iota
	KindFee
	KindFunding
	KindLoss // socialized loss
	KindTransfer
)

func (k Kind) String() string {
	switch k {
	case KindFill:
		return "fill"
	case KindFee:
		return "fee"
	case KindFunding:
		return "funding"
	case KindLoss:
		return "loss"
	case KindTransfer:
		return "transfer"
	}
	return fmt.Sprintf("kind(%d)", int8(k))
}

// ParseKind maps the adapter's string form back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "fill":
		return KindFill, nil
	case "fee":
		return KindFee, nil
	case "funding":
		return KindFunding, nil
	case "loss":
		return KindLoss, nil
	case "transfer", "deposit", "withdrawal":
		return KindTransfer, nil
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// Side: +1 long/buy, -1 short/sell. Long is the entry side.
type Side int8

const (
	Long  Side = +1
	Short Side = -1
)

func (s Side) String() string {
	if s == Long {
		return "long"
	}
	return "short"
}

// Event is one decoded trading action. Price and Qty describe this single
// execution, not a position. Fee magnitudes are unsigned; sign conventions
// are applied at aggregation. Funding is signed, positive means received.
type Event struct {
	ID     string
	Time   time.Time
	Symbol string
	Kind   Kind
	Side   Side

	Price float64
	Qty   float64

	FeeMaker float64
	FeeTaker float64
	FeeTotal float64
	Rebate   float64

	Funding float64

	// OrderType is an optional adapter-supplied label (e.g. market, limit).
	OrderType string
}

// IsEntry reports whether the event is on the entry (buy/long) side.
func (e Event) IsEntry() bool { return e.Side == Long }

// Notional is price * quantity for fills, 0 otherwise.
func (e Event) Notional() float64 {
	if e.Kind != KindFill {
		return 0
	}
	return e.Price * e.Qty
}

// ValidationError identifies a malformed event and the field that failed.
type ValidationError struct {
	EventID string
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("event %s: invalid %s: %s", e.EventID, e.Field, e.Reason)
}

// Validate checks field invariants. Fill events require Qty > 0 and a finite,
// non-negative Price. All kinds reject non-finite numeric fields; the
// alternative is NaN silently poisoning every downstream aggregate.
func (e Event) Validate() error {
	if math.IsNaN(e.Price) || math.IsInf(e.Price, 0) {
		return &ValidationError{EventID: e.ID, Field: "price", Reason: "not finite"}
	}
	if math.IsNaN(e.Qty) || math.IsInf(e.Qty, 0) {
		return &ValidationError{EventID: e.ID, Field: "qty", Reason: "not finite"}
	}
	if math.IsNaN(e.Funding) || math.IsInf(e.Funding, 0) {
		return &ValidationError{EventID: e.ID, Field: "funding", Reason: "not finite"}
	}
	if e.Kind != KindFill {
		return nil
	}
	if e.Qty <= 0 {
		return &ValidationError{EventID: e.ID, Field: "qty", Reason: "must be positive for fills"}
	}
	if e.Price < 0 {
		return &ValidationError{EventID: e.ID, Field: "price", Reason: "must be non-negative for fills"}
	}
	return nil
}

// Status classifies a matched event strictly by the sign of its realized PnL.
type Status string

const (
	StatusWin       Status = "win"
	StatusLoss      Status = "loss"
	StatusBreakeven Status = "breakeven"
)

// Epsilon absorbs floating-point drift from repeated fractional lot
// consumption. PnL within this band of zero counts as breakeven.
const Epsilon = 1e-12

// StatusOf maps a realized PnL to win/loss/breakeven.
func StatusOf(pnl float64) Status {
	switch {
	case pnl > Epsilon:
		return StatusWin
	case pnl < -Epsilon:
		return StatusLoss
	}
	return StatusBreakeven
}

// Matched is an Event annotated with its realized PnL. Opening fills and
// non-fill kinds carry PnL 0 and breakeven status.
type Matched struct {
	Event

	PnL    float64
	PnLPct float64 // relative to matched notional, in percent
	Status Status
}
