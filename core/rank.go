package core

import "github.com/huangsam/secpulse/schema"

// Classify maps an earned score against a maximum to its percentage, letter
// rank and description. A maximum of zero classifies as 0%. Bands are
// evaluated highest-first with inclusive lower bounds.
func Classify(earned, max float64) schema.RankResult {
	pct := 0.0
	if max > 0 {
		pct = earned / max * 100
	}
	for _, band := range schema.RankBands {
		if pct >= band.Floor {
			return schema.RankResult{Percentage: pct, Rank: band.Rank, Description: band.Description}
		}
	}
	// Unreachable for pct >= 0, kept for negative-input safety.
	last := schema.RankBands[len(schema.RankBands)-1]
	return schema.RankResult{Percentage: pct, Rank: last.Rank, Description: last.Description}
}
