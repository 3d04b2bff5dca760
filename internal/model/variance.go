package model

// ProductVarianceRecord is one sales line: what was planned and what happened.
// Units:
// - quantities: units sold
// - prices and StandardUnitCost: currency per unit
//
// The record is read as revenue; a price above plan is favorable.
type ProductVarianceRecord struct {
	Name             string  `json:"name" yaml:"name" validate:"required"`
	PlannedQuantity  float64 `json:"planned_quantity" yaml:"planned_quantity"`
	PlannedPrice     float64 `json:"planned_price" yaml:"planned_price"`
	ActualQuantity   float64 `json:"actual_quantity" yaml:"actual_quantity"`
	ActualPrice      float64 `json:"actual_price" yaml:"actual_price"`
	StandardUnitCost float64 `json:"standard_unit_cost" yaml:"standard_unit_cost"`
}

// VarianceResult splits the gap between planned and actual revenue.
type VarianceResult struct {
	PriceVariance    float64 `json:"price_variance"`
	QuantityVariance float64 `json:"quantity_variance"`
	TotalVariance    float64 `json:"total_variance"`
	Favorable        bool    `json:"favorable"`
}

// ComputeVariance is a pure function of r. Non-finite inputs propagate.
func ComputeVariance(r ProductVarianceRecord) VarianceResult {
	price := (r.ActualPrice - r.PlannedPrice) * r.ActualQuantity
	quantity := (r.ActualQuantity - r.PlannedQuantity) * r.PlannedPrice
	total := price + quantity
	return VarianceResult{
		PriceVariance:    price,
		QuantityVariance: quantity,
		TotalVariance:    total,
		Favorable:        total >= 0,
	}
}

func (v VarianceResult) Direction() Direction {
	return DirectionFromVariance(v.TotalVariance)
}

// PlannedRevenue is PlannedQuantity * PlannedPrice.
func (r ProductVarianceRecord) PlannedRevenue() float64 {
	return r.PlannedQuantity * r.PlannedPrice
}

// ActualRevenue is ActualQuantity * ActualPrice.
func (r ProductVarianceRecord) ActualRevenue() float64 {
	return r.ActualQuantity * r.ActualPrice
}

// PlannedMargin is the contribution margin at plan, using the standard unit cost.
func (r ProductVarianceRecord) PlannedMargin() float64 {
	return (r.PlannedPrice - r.StandardUnitCost) * r.PlannedQuantity
}

// ActualMargin is the contribution margin realized, using the standard unit cost.
func (r ProductVarianceRecord) ActualMargin() float64 {
	return (r.ActualPrice - r.StandardUnitCost) * r.ActualQuantity
}
