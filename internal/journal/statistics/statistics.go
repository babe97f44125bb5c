// Package statistics reduces a subset of the trade ledger into summary
// metrics. All functions are pure and deterministic over the snapshot they
// are given. Percentages are rounded only once a value is final: winRate and
// avgConfidence to the nearest integer, P&L means and sums to one decimal.
package statistics

import (
	"math"
	"sort"

	"tradejournal/internal/domain"
	"tradejournal/internal/ports"
)

// UnclassifiedSector is reported for tickers the sector lookup cannot map.
const UnclassifiedSector = "Unclassified"

// Summary holds the headline metrics for a set of trades. An empty set yields
// the zero value; requesting statistics over nothing is not an error.
type Summary struct {
	Count         int     `json:"count"`
	WinRate       float64 `json:"winRate"`       // Percent of trades with pnl > 0, 0-100
	AvgConfidence float64 `json:"avgConfidence"` // Mean self-reported conviction, 0-100
	BestPnL       float64 `json:"bestPnl"`       // Highest percentage P&L in the set
	WorstPnL      float64 `json:"worstPnl"`      // Lowest percentage P&L in the set
	AvgWin        float64 `json:"avgWin"`        // Mean percentage P&L over winning trades
	AvgLoss       float64 `json:"avgLoss"`       // Mean percentage P&L over non-winning trades
	ProfitFactor  float64 `json:"profitFactor"`  // Gross wins over gross loss magnitude, 0 when undefined
}

// TagPerformance aggregates trades sharing one behavior tag. AvgPnL is a
// percentage mean and TotalPnLCurrency a base-currency sum; the two are
// different units and reported separately.
type TagPerformance struct {
	Tag              string  `json:"tag"`
	Count            int     `json:"count"`
	WinRate          float64 `json:"winRate"`
	AvgPnL           float64 `json:"avgPnl"`
	TotalPnLCurrency float64 `json:"totalPnlCurrency"`
}

// SectorAllocation aggregates trades by market sector. AllocationPercent is
// the sector's share of total trade count across the filtered set; shares sum
// to 100 within rounding tolerance.
type SectorAllocation struct {
	Sector            string  `json:"sector"`
	TradeCount        int     `json:"tradeCount"`
	TotalPnLPercent   float64 `json:"totalPnlPercent"`
	AllocationPercent float64 `json:"allocationPercent"`
}

// Summarize computes the headline metrics for the given trades.
func Summarize(trades []*domain.Trade) Summary {
	var s Summary
	if len(trades) == 0 {
		return s
	}

	var wins, losses int
	var confidenceSum, winSum, lossSum float64
	s.BestPnL = trades[0].PnL
	s.WorstPnL = trades[0].PnL

	for _, t := range trades {
		s.Count++
		confidenceSum += float64(t.Confidence)
		if t.PnL > 0 {
			wins++
			winSum += t.PnL
		} else {
			losses++
			lossSum += t.PnL
		}
		if t.PnL > s.BestPnL {
			s.BestPnL = t.PnL
		}
		if t.PnL < s.WorstPnL {
			s.WorstPnL = t.PnL
		}
	}

	s.WinRate = math.Round(100 * float64(wins) / float64(s.Count))
	s.AvgConfidence = math.Round(confidenceSum / float64(s.Count))
	// Profit factor comes from the raw sums, not the rounded means.
	if lossSum != 0 {
		s.ProfitFactor = round2(winSum / -lossSum)
	}
	if wins > 0 {
		s.AvgWin = round1(winSum / float64(wins))
	}
	if losses > 0 {
		s.AvgLoss = round1(lossSum / float64(losses))
	}
	return s
}

// GroupByBehaviorTag aggregates the trades per behavior tag, ordered by trade
// count descending then tag name for deterministic output.
func GroupByBehaviorTag(trades []*domain.Trade) []TagPerformance {
	type bucket struct {
		count    int
		wins     int
		pnlSum   float64
		currency float64
	}
	buckets := make(map[string]*bucket)

	for _, t := range trades {
		b := buckets[t.BehaviorTag]
		if b == nil {
			b = &bucket{}
			buckets[t.BehaviorTag] = b
		}
		b.count++
		if t.PnL > 0 {
			b.wins++
		}
		b.pnlSum += t.PnL
		b.currency += t.PnLCurrency()
	}

	out := make([]TagPerformance, 0, len(buckets))
	for tag, b := range buckets {
		out = append(out, TagPerformance{
			Tag:              tag,
			Count:            b.count,
			WinRate:          math.Round(100 * float64(b.wins) / float64(b.count)),
			AvgPnL:           round1(b.pnlSum / float64(b.count)),
			TotalPnLCurrency: round1(b.currency),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// GroupBySector aggregates the trades per market sector. Tickers the lookup
// cannot map are reported under UnclassifiedSector rather than dropped.
func GroupBySector(trades []*domain.Trade, sectors ports.SectorLookup) []SectorAllocation {
	type bucket struct {
		count  int
		pnlSum float64
	}
	buckets := make(map[string]*bucket)

	for _, t := range trades {
		sector, ok := sectors.Sector(t.Ticker)
		if !ok {
			sector = UnclassifiedSector
		}
		b := buckets[sector]
		if b == nil {
			b = &bucket{}
			buckets[sector] = b
		}
		b.count++
		b.pnlSum += t.PnL
	}

	out := make([]SectorAllocation, 0, len(buckets))
	for sector, b := range buckets {
		out = append(out, SectorAllocation{
			Sector:            sector,
			TradeCount:        b.count,
			TotalPnLPercent:   round1(b.pnlSum),
			AllocationPercent: math.Round(100 * float64(b.count) / float64(len(trades))),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TradeCount != out[j].TradeCount {
			return out[i].TradeCount > out[j].TradeCount
		}
		return out[i].Sector < out[j].Sector
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
