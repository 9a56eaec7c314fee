package report

import (
	"fmt"
	"io"
	"math"

	"github.com/unnamed-lab/tradelens/analytics"
	"github.com/unnamed-lab/tradelens/match"
)

// Print writes a human-readable summary of a reconciliation run.
func Print(w io.Writer, r *analytics.Report, anomalies []match.Anomaly) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Reconciliation Report")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Fills:         %d\n", r.Summary.Fills)
	fmt.Fprintf(w, "Wins:          %d\n", r.Summary.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", r.Summary.Losses)
	fmt.Fprintf(w, "Breakeven:     %d\n", r.Summary.Breakeven)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.Summary.WinRate)
	fmt.Fprintf(w, "Net P/L:       %.2f\n", r.Summary.TotalPnL)
	fmt.Fprintf(w, "Volume:        %.2f\n", r.Summary.Volume)
	fmt.Fprintf(w, "Fees:          %.2f\n", r.Summary.TotalFees)
	fmt.Fprintf(w, "Funding:       %.2f\n", r.Summary.TotalFunding)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Direction")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Long/Short:    %d / %d\n", r.Direction.LongCount, r.Direction.ShortCount)
	fmt.Fprintf(w, "Ratio:         %.2f\n", r.Direction.Ratio)
	fmt.Fprintf(w, "Bias:          %s\n", r.Direction.Bias)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Risk")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Largest Gain:  %.2f\n", r.Risk.LargestGain)
	fmt.Fprintf(w, "Largest Loss:  %.2f\n", r.Risk.LargestLoss)
	fmt.Fprintf(w, "Avg Win:       %.2f\n", r.Risk.AvgWin)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", r.Risk.AvgLoss)
	if math.IsInf(r.Risk.ProfitFactor, 1) {
		fmt.Fprintf(w, "Profit Factor: inf\n")
	} else {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", r.Risk.ProfitFactor)
	}
	fmt.Fprintf(w, "Max Drawdown:  %.2f\n", r.Drawdown.Max)
	fmt.Fprintf(w, "Curr Drawdown: %.2f\n", r.Drawdown.Current)

	if len(r.Symbols) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Symbols (by volume)")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, s := range r.Symbols {
			fmt.Fprintf(w, "%-14s fills=%-5d pnl=%-12.2f vol=%-14.2f win=%.1f%%\n",
				s.Key, s.Count, s.PnL, s.Volume, s.WinRate)
		}
	}

	if r.Fees.Total != 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Fees")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "Total:         %.2f (perp %.2f / spot %.2f)\n",
			r.Fees.Total, r.Fees.Perp, r.Fees.Spot)
		for _, sf := range r.Fees.BySymbol {
			fmt.Fprintf(w, "%-14s %.2f (%.1f%%)\n", sf.Symbol, sf.Fees, sf.Share)
		}
	}

	if len(anomalies) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Anomalies")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, a := range anomalies {
			fmt.Fprintf(w, "- %s\n", a)
		}
	}

	fmt.Fprintln(w)
}

// PrintValuation writes the open-inventory mark-to-market summary.
func PrintValuation(w io.Writer, v match.Valuation) {
	fmt.Fprintln(w, "Open Positions")
	fmt.Fprintln(w, "--------------------------------------------------")
	if len(v.Lots) == 0 && len(v.Unpriced) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	for _, lot := range v.Lots {
		fmt.Fprintf(w, "%-14s %-5s qty=%-12.6f entry=%-12.6f mark=%-12.6f pnl=%.2f\n",
			lot.Symbol, lot.Side, lot.Qty, lot.EntryPrice, lot.Mark, lot.PnL)
	}
	for _, u := range v.Unpriced {
		fmt.Fprintf(w, "%-14s %-5s qty=%-12.6f (no mark price)\n", u.Symbol, u.Side, u.Qty)
	}
	fmt.Fprintf(w, "Unrealized:    %.2f\n", v.Total)
}
