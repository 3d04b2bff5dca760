package model

import "math"

// PriceOptimizationInput anchors a constant-elasticity demand curve at the
// observed (CurrentPrice, CurrentQuantity) point.
// Units:
// - CurrentPrice, VariableCostPerUnit: currency per unit
// - CurrentQuantity: units
// - FixedCosts: currency per period
// - Elasticity: dimensionless, typically negative
type PriceOptimizationInput struct {
	CurrentPrice        float64 `json:"current_price" yaml:"current_price"`
	CurrentQuantity     float64 `json:"current_quantity" yaml:"current_quantity"`
	VariableCostPerUnit float64 `json:"variable_cost_per_unit" yaml:"variable_cost_per_unit"`
	FixedCosts          float64 `json:"fixed_costs" yaml:"fixed_costs"`
	Elasticity          float64 `json:"elasticity" yaml:"elasticity"`
}

// OptimizationResult is the profit-maximizing point of the demand model.
type OptimizationResult struct {
	OptimalPrice    float64 `json:"optimal_price"`
	OptimalQuantity float64 `json:"optimal_quantity"`
	MaxProfit       float64 `json:"max_profit"`
}

// Demand returns Q(P) = CurrentQuantity * (P / CurrentPrice) ^ Elasticity.
func (in PriceOptimizationInput) Demand(price float64) float64 {
	return in.CurrentQuantity * math.Pow(price/in.CurrentPrice, in.Elasticity)
}

// Profit returns (P - VariableCostPerUnit) * Q(P) - FixedCosts.
func (in PriceOptimizationInput) Profit(price float64) float64 {
	return (price-in.VariableCostPerUnit)*in.Demand(price) - in.FixedCosts
}
