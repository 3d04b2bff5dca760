package analysis

import "coop-budget/internal/model"

// ProductVariance pairs a product name with its variance split.
type ProductVariance struct {
	Name   string
	Record model.ProductVarianceRecord
	model.VarianceResult
}

// Portfolio is the variance summary of a set of sales lines.
type Portfolio struct {
	PerProduct            []ProductVariance
	TotalPriceVariance    float64
	TotalQuantityVariance float64
	TotalVariance         float64
}

// Favorable reports the sign of the portfolio total.
func (p Portfolio) Favorable() bool {
	return p.TotalVariance >= 0
}

// AggregateVariances computes every record's variance in input order and sums
// the components. No rounding is applied.
func AggregateVariances(records []model.ProductVarianceRecord) Portfolio {
	p := Portfolio{
		PerProduct: make([]ProductVariance, 0, len(records)),
	}
	for _, r := range records {
		v := model.ComputeVariance(r)
		p.PerProduct = append(p.PerProduct, ProductVariance{
			Name:           r.Name,
			Record:         r,
			VarianceResult: v,
		})
		p.TotalPriceVariance += v.PriceVariance
		p.TotalQuantityVariance += v.QuantityVariance
		p.TotalVariance += v.TotalVariance
	}
	return p
}
