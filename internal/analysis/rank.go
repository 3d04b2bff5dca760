package analysis

import (
	"math"
	"sort"
)

type RankedVariance struct {
	Rank int
	ProductVariance
}

// RankByImpact sorts the portfolio lines by absolute total variance,
// largest gap first. Ties keep input order.
func RankByImpact(p Portfolio) []RankedVariance {
	out := make([]RankedVariance, 0, len(p.PerProduct))
	for _, pv := range p.PerProduct {
		out = append(out, RankedVariance{ProductVariance: pv})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].TotalVariance) > math.Abs(out[j].TotalVariance)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
