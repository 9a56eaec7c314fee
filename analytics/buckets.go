package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/unnamed-lab/tradelens/event"
)

const dayFormat = "2006-01-02"

func dayKey(t time.Time) string {
	return t.UTC().Format(dayFormat)
}

// bucketBy groups fill events by a time key and aggregates each bucket.
// Buckets come back sorted by key, which for day keys is chronological.
func bucketBy(events []event.Matched, key func(time.Time) string) []Bucket {
	byKey := map[string]*Bucket{}
	wins := map[string]int{}

	for _, ev := range events {
		if ev.Kind != event.KindFill {
			continue
		}
		k := key(ev.Time)
		b, ok := byKey[k]
		if !ok {
			b = &Bucket{Key: k}
			byKey[k] = b
		}
		b.Count++
		b.PnL += ev.PnL
		b.Volume += ev.Notional()
		if ev.Status == event.StatusWin {
			wins[k]++
		}
	}

	out := make([]Bucket, 0, len(byKey))
	for k, b := range byKey {
		b.WinRate = winRate(wins[k], b.Count)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// hourBuckets returns all 24 hour-of-day buckets, empty hours included, so
// the presentation layer gets a dense series.
func hourBuckets(events []event.Matched) []Bucket {
	out := make([]Bucket, 24)
	wins := make([]int, 24)

	for h := range out {
		out[h].Key = fmt.Sprintf("%02d", h)
	}
	for _, ev := range events {
		if ev.Kind != event.KindFill {
			continue
		}
		h := ev.Time.UTC().Hour()
		out[h].Count++
		out[h].PnL += ev.PnL
		out[h].Volume += ev.Notional()
		if ev.Status == event.StatusWin {
			wins[h]++
		}
	}
	for h := range out {
		out[h].WinRate = winRate(wins[h], out[h].Count)
	}
	return out
}

// weekdayBuckets returns the 7 day-of-week buckets, Sunday first.
func weekdayBuckets(events []event.Matched) []Bucket {
	out := make([]Bucket, 7)
	wins := make([]int, 7)

	for d := range out {
		out[d].Key = time.Weekday(d).String()
	}
	for _, ev := range events {
		if ev.Kind != event.KindFill {
			continue
		}
		d := int(ev.Time.UTC().Weekday())
		out[d].Count++
		out[d].PnL += ev.PnL
		out[d].Volume += ev.Notional()
		if ev.Status == event.StatusWin {
			wins[d]++
		}
	}
	for d := range out {
		out[d].WinRate = winRate(wins[d], out[d].Count)
	}
	return out
}

// dailySeries builds the calendar-day cumulative net PnL series. Externally
// supplied per-day fee/funding totals take precedence over sums from the
// events of that day; net = trade PnL - fees + funding.
func dailySeries(events []event.Matched, ext *Externals) []DayPoint {
	type acc struct {
		pnl     float64
		fees    float64
		funding float64
	}
	days := map[string]*acc{}

	for _, ev := range events {
		k := dayKey(ev.Time)
		a, ok := days[k]
		if !ok {
			a = &acc{}
			days[k] = a
		}
		a.pnl += ev.PnL
		a.fees += feeOf(ev.Event)
		a.funding += ev.Funding
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]DayPoint, 0, len(keys))
	var cumulative float64
	for _, k := range keys {
		a := days[k]
		p := DayPoint{Day: k, PnL: a.pnl, Fees: a.fees, Funding: a.funding}
		if ext != nil {
			if e, ok := ext.PerDay[k]; ok {
				p.Fees = e.Fees
				p.Funding = e.Funding
			}
		}
		p.Net = p.PnL - p.Fees + p.Funding
		cumulative += p.Net
		p.Cumulative = cumulative
		out = append(out, p)
	}
	return out
}
