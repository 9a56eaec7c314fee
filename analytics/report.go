// analytics turns a PnL-annotated event sequence into a performance report.
// Every sub-computation is a pure reduction; drawdown and the daily series
// additionally rely on the matcher's timestamp-ascending output order.
package analytics

import (
	"time"

	"github.com/unnamed-lab/tradelens/event"
)

// DayExternal carries externally sourced per-day fee and funding totals,
// used when the ledger aggregates are more trustworthy than summing events.
type DayExternal struct {
	Fees    float64
	Funding float64
}

// Externals are optional caller-supplied aggregates. When Fees/Funding are
// set they take precedence over sums derived from the events themselves.
type Externals struct {
	Fees      float64
	Funding   float64
	HasTotals bool
	PerDay    map[string]DayExternal // keyed by UTC day "2006-01-02"
}

// Summary holds the headline account figures.
type Summary struct {
	TotalPnL     float64
	Volume       float64
	TotalFees    float64
	TotalFunding float64
	Fills        int
	Wins         int
	Losses       int
	Breakeven    int
	WinRate      float64 // wins / fills * 100
}

// Direction describes long/short activity balance.
type Direction struct {
	LongCount   int
	ShortCount  int
	LongVolume  float64
	ShortVolume float64
	Ratio       float64
	Bias        string // bullish | bearish | neutral
}

// Risk holds extreme and average outcome figures.
type Risk struct {
	LargestGain  float64
	LargestLoss  float64
	AvgWin       float64
	AvgLoss      float64 // absolute value
	ProfitFactor float64 // +Inf when losses are zero and wins positive
}

// DrawdownPoint is one step of the peak-to-trough series.
type DrawdownPoint struct {
	Time       time.Time
	Cumulative float64
	Peak       float64
	Drawdown   float64 // peak - cumulative, always >= 0
}

// Drawdown is the full series plus its scalar summaries.
type Drawdown struct {
	Series  []DrawdownPoint
	Max     float64
	Current float64
}

// Bucket aggregates fills sharing a time key (day, hour, weekday).
type Bucket struct {
	Key     string
	Count   int
	PnL     float64
	Volume  float64
	WinRate float64
}

// DayPoint is one step of the calendar-day cumulative series, optionally
// blended with external per-day fees and funding.
type DayPoint struct {
	Day        string // "2006-01-02" UTC
	PnL        float64
	Fees       float64
	Funding    float64
	Net        float64 // PnL - Fees + Funding
	Cumulative float64 // running sum of Net
}

// SymbolFee is one instrument's share of total fees.
type SymbolFee struct {
	Symbol string
	Fees   float64
	Share  float64 // percent of total
}

// Fees breaks fee spend down by trading mode and instrument.
type Fees struct {
	Total    float64
	Perp     float64
	Spot     float64
	BySymbol []SymbolFee // sorted descending by fee magnitude
}

// GroupStats aggregates fills by symbol or order type.
type GroupStats struct {
	Key     string
	Count   int
	PnL     float64
	Volume  float64
	WinRate float64
}

// Report is the full analytics output consumed by the presentation layer.
type Report struct {
	Summary   Summary
	Direction Direction
	Risk      Risk
	Drawdown  Drawdown
	ByDay     []Bucket
	ByHour    []Bucket // 24 entries, index == hour
	ByWeekday []Bucket // 7 entries, Sunday first
	Daily     []DayPoint
	Fees      Fees
	Symbols    []GroupStats // sorted by volume descending
	OrderTypes []GroupStats
}

// Config tunes categorical thresholds. Zero values fall back to defaults.
type Config struct {
	BullishRatio float64 // long/short ratio above which bias is bullish
	BearishRatio float64 // ratio below which bias is bearish
}

func (c Config) withDefaults() Config {
	if c.BullishRatio == 0 {
		c.BullishRatio = 1.2
	}
	if c.BearishRatio == 0 {
		c.BearishRatio = 0.8
	}
	return c
}

// Analyze computes the full report over a matched event sequence. ext may be
// nil. Empty input yields a zero-valued report, never an error.
func Analyze(events []event.Matched, ext *Externals) *Report {
	return AnalyzeWith(events, ext, Config{})
}

// AnalyzeWith is Analyze with explicit threshold configuration.
func AnalyzeWith(events []event.Matched, ext *Externals, cfg Config) *Report {
	cfg = cfg.withDefaults()
	return &Report{
		Summary:    summarize(events, ext),
		Direction:  direction(events, cfg),
		Risk:       risk(events),
		Drawdown:   drawdown(events),
		ByDay:      bucketBy(events, dayKey),
		ByHour:     hourBuckets(events),
		ByWeekday:  weekdayBuckets(events),
		Daily:      dailySeries(events, ext),
		Fees:       feeComposition(events),
		Symbols:    symbolStats(events),
		OrderTypes: orderTypeStats(events),
	}
}
