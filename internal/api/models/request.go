package models

import "coop-budget/internal/model"

// VarianceRequest is the body of POST /api/v1/variance
type VarianceRequest struct {
	Record model.ProductVarianceRecord `json:"record"`
}

// PortfolioRequest is the body of POST /api/v1/variance/portfolio.
// An empty records array is valid and yields zero totals.
type PortfolioRequest struct {
	Records []model.ProductVarianceRecord `json:"records" binding:"required"`
}

// OptimizeRequest is the body of POST /api/v1/optimize
type OptimizeRequest struct {
	CurrentPrice        float64 `json:"current_price"`
	CurrentQuantity     float64 `json:"current_quantity"`
	VariableCostPerUnit float64 `json:"variable_cost_per_unit"`
	FixedCosts          float64 `json:"fixed_costs"`
	Elasticity          float64 `json:"elasticity"`
	// Optional prices at which to sample the profit curve.
	Prices []float64 `json:"prices,omitempty" binding:"max=500"`
}

func (r OptimizeRequest) Input() model.PriceOptimizationInput {
	return model.PriceOptimizationInput{
		CurrentPrice:        r.CurrentPrice,
		CurrentQuantity:     r.CurrentQuantity,
		VariableCostPerUnit: r.VariableCostPerUnit,
		FixedCosts:          r.FixedCosts,
		Elasticity:          r.Elasticity,
	}
}

// CompareBudgetRequest is the body of POST /api/v1/budget/compare
type CompareBudgetRequest struct {
	Budgeted []model.SalesFigure `json:"budgeted"`
	Actual   []model.SalesFigure `json:"actual"`
}
