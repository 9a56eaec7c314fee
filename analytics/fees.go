package analytics

import (
	"sort"
	"strings"

	"github.com/unnamed-lab/tradelens/event"
)

// IsPerp reports whether a canonical symbol names a perpetual market. The
// decoding adapter canonicalizes symbols, so the suffix is stable.
func IsPerp(symbol string) bool {
	return strings.HasSuffix(symbol, "-PERP")
}

// feeComposition totals fee spend and splits it by trading mode and symbol.
// Symbols are sorted descending by fee magnitude; share is percent of total.
func feeComposition(events []event.Matched) Fees {
	var f Fees
	bySymbol := map[string]float64{}

	for _, ev := range events {
		fee := feeOf(ev.Event)
		if fee == 0 {
			continue
		}
		f.Total += fee
		if IsPerp(ev.Symbol) {
			f.Perp += fee
		} else {
			f.Spot += fee
		}
		bySymbol[ev.Symbol] += fee
	}

	for sym, fee := range bySymbol {
		share := 0.0
		if f.Total != 0 {
			share = fee / f.Total * 100
		}
		f.BySymbol = append(f.BySymbol, SymbolFee{Symbol: sym, Fees: fee, Share: share})
	}
	sort.Slice(f.BySymbol, func(i, j int) bool {
		if f.BySymbol[i].Fees != f.BySymbol[j].Fees {
			return f.BySymbol[i].Fees > f.BySymbol[j].Fees
		}
		return f.BySymbol[i].Symbol < f.BySymbol[j].Symbol
	})
	return f
}

// groupBy aggregates fills by an arbitrary key.
func groupBy(events []event.Matched, key func(event.Matched) string) []GroupStats {
	byKey := map[string]*GroupStats{}
	wins := map[string]int{}

	for _, ev := range events {
		if ev.Kind != event.KindFill {
			continue
		}
		k := key(ev)
		g, ok := byKey[k]
		if !ok {
			g = &GroupStats{Key: k}
			byKey[k] = g
		}
		g.Count++
		g.PnL += ev.PnL
		g.Volume += ev.Notional()
		if ev.Status == event.StatusWin {
			wins[k]++
		}
	}

	out := make([]GroupStats, 0, len(byKey))
	for k, g := range byKey {
		g.WinRate = winRate(wins[k], g.Count)
		out = append(out, *g)
	}
	return out
}

// symbolStats returns per-instrument performance sorted by volume descending.
func symbolStats(events []event.Matched) []GroupStats {
	out := groupBy(events, func(ev event.Matched) string { return ev.Symbol })
	sort.Slice(out, func(i, j int) bool {
		if out[i].Volume != out[j].Volume {
			return out[i].Volume > out[j].Volume
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// orderTypeStats groups by the adapter-supplied order-type label; fills
// without one land under "unknown".
func orderTypeStats(events []event.Matched) []GroupStats {
	out := groupBy(events, func(ev event.Matched) string {
		if ev.OrderType == "" {
			return "unknown"
		}
		return ev.OrderType
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
