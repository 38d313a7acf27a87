package schema

// StatusLadder maps a numeric score to a four-tier status label. Cut points
// are inclusive lower bounds. A value of exactly zero means "no data entered"
// and maps to N/A rather than the bottom tier, so absence of data is never
// confused with poor performance.
type StatusLadder struct {
	Excellent float64
	Good      float64
	Fair      float64
}

// Label classifies a score against the ladder.
func (l StatusLadder) Label(v float64) StatusLabel {
	switch {
	case v == 0:
		return NoDataStatus
	case v >= l.Excellent:
		return ExcellentStatus
	case v >= l.Good:
		return GoodStatus
	case v >= l.Fair:
		return FairStatus
	default:
		return PoorStatus
	}
}

// Per-family status ladders. The four-tier shape is constant but the cut
// points intentionally differ between metric families; these tables mirror
// the product's fixed business thresholds and must not be unified.
var (
	// DefaultLadder covers composite and accuracy-style metrics.
	DefaultLadder = StatusLadder{Excellent: 90, Good: 75, Fair: 60}

	// CoverageLadder covers deployment/monitoring coverage percentages,
	// where expectations run higher.
	CoverageLadder = StatusLadder{Excellent: 95, Good: 85, Fair: 70}

	// TimeLadder covers time-based efficiency scores, where expectations
	// run lower because baselines are aggressive.
	TimeLadder = StatusLadder{Excellent: 85, Good: 70, Fair: 50}

	// CostLadder covers budget and cost-efficiency percentages.
	CostLadder = StatusLadder{Excellent: 90, Good: 70, Fair: 50}
)

// RankBand pairs an inclusive lower percentage bound with its rank and a
// fixed one-line description.
type RankBand struct {
	Floor       float64
	Rank        Rank
	Description string
}

// RankBands is the rank ladder evaluated highest-first. The final band has a
// floor of zero and catches everything below E.
var RankBands = []RankBand{
	{90, RankS, "Outstanding security posture. Keep up the rigorous work."},
	{80, RankA, "Strong posture with only minor gaps to close."},
	{70, RankB, "Good foundation. A focused push will reach the next tier."},
	{60, RankC, "Moderate posture. Several areas need steady attention."},
	{50, RankD, "Below average. Prioritize the weakest categories first."},
	{40, RankE, "Significant gaps. Build a remediation roadmap now."},
	{0, RankF, "Critical gaps across the board. Start with the basics."},
}
