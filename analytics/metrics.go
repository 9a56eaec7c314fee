package analytics

import (
	"math"

	"github.com/unnamed-lab/tradelens/event"
)

// feeOf applies the sign convention at aggregation: rebates offset paid fees.
func feeOf(ev event.Event) float64 {
	return ev.FeeTotal - ev.Rebate
}

// winRate uses one definition everywhere: wins over total fill count, with
// |PnL| inside the epsilon band counting as breakeven — excluded from wins
// and losses but still part of the denominator.
func winRate(wins, fills int) float64 {
	if fills == 0 {
		return 0
	}
	return float64(wins) / float64(fills) * 100
}

func summarize(events []event.Matched, ext *Externals) Summary {
	var s Summary
	var fees, funding float64

	for _, ev := range events {
		s.TotalPnL += ev.PnL
		fees += feeOf(ev.Event)
		funding += ev.Funding

		if ev.Kind != event.KindFill {
			continue
		}
		s.Fills++
		s.Volume += ev.Notional()
		switch ev.Status {
		case event.StatusWin:
			s.Wins++
		case event.StatusLoss:
			s.Losses++
		default:
			s.Breakeven++
		}
	}

	s.TotalFees = fees
	s.TotalFunding = funding
	if ext != nil && ext.HasTotals {
		s.TotalFees = ext.Fees
		s.TotalFunding = ext.Funding
	}
	s.WinRate = winRate(s.Wins, s.Fills)
	return s
}

func direction(events []event.Matched, cfg Config) Direction {
	var d Direction
	for _, ev := range events {
		if ev.Kind != event.KindFill {
			continue
		}
		if ev.Side == event.Long {
			d.LongCount++
			d.LongVolume += ev.Notional()
		} else {
			d.ShortCount++
			d.ShortVolume += ev.Notional()
		}
	}

	if d.ShortCount == 0 {
		d.Ratio = float64(d.LongCount)
	} else {
		d.Ratio = float64(d.LongCount) / float64(d.ShortCount)
	}

	switch {
	case d.LongCount == 0 && d.ShortCount == 0:
		d.Bias = "neutral"
	case d.Ratio > cfg.BullishRatio:
		d.Bias = "bullish"
	case d.Ratio < cfg.BearishRatio:
		d.Bias = "bearish"
	default:
		d.Bias = "neutral"
	}
	return d
}

func risk(events []event.Matched) Risk {
	var r Risk
	var grossWins, grossLosses float64
	var winCount, lossCount int

	for _, ev := range events {
		if ev.PnL > r.LargestGain {
			r.LargestGain = ev.PnL
		}
		if ev.PnL < r.LargestLoss {
			r.LargestLoss = ev.PnL
		}
		switch ev.Status {
		case event.StatusWin:
			grossWins += ev.PnL
			winCount++
		case event.StatusLoss:
			grossLosses += -ev.PnL
			lossCount++
		}
	}

	if winCount > 0 {
		r.AvgWin = grossWins / float64(winCount)
	}
	if lossCount > 0 {
		r.AvgLoss = grossLosses / float64(lossCount)
	}

	switch {
	case grossLosses > 0:
		r.ProfitFactor = grossWins / grossLosses
	case grossWins > 0:
		r.ProfitFactor = math.Inf(1)
	default:
		r.ProfitFactor = 0
	}
	return r
}

func drawdown(events []event.Matched) Drawdown {
	var d Drawdown
	var cumulative, peak float64

	for _, ev := range events {
		cumulative += ev.PnL
		if cumulative > peak {
			peak = cumulative
		}
		dd := peak - cumulative
		if dd > d.Max {
			d.Max = dd
		}
		d.Series = append(d.Series, DrawdownPoint{
			Time:       ev.Time,
			Cumulative: cumulative,
			Peak:       peak,
			Drawdown:   dd,
		})
	}

	if n := len(d.Series); n > 0 {
		d.Current = d.Series[n-1].Drawdown
	}
	return d
}
