package models

import (
	"time"

	"coop-budget/internal/model"
)

// VarianceResponse represents the variance split of one sales line
type VarianceResponse struct {
	Name             string  `json:"name"`
	PriceVariance    float64 `json:"price_variance"`
	QuantityVariance float64 `json:"quantity_variance"`
	TotalVariance    float64 `json:"total_variance"`
	Favorable        bool    `json:"favorable"`
	Direction        string  `json:"direction"` // "FAVORABLE", "UNFAVORABLE"
}

// PortfolioResponse represents an aggregated variance analysis
type PortfolioResponse struct {
	ID                    string             `json:"id,omitempty"`
	PerProduct            []VarianceResponse `json:"per_product"`
	Ranking               []RankedProduct    `json:"ranking"`
	Ledger                []LedgerRow        `json:"ledger"`
	TotalPriceVariance    float64            `json:"total_price_variance"`
	TotalQuantityVariance float64            `json:"total_quantity_variance"`
	TotalVariance         float64            `json:"total_variance"`
	Favorable             bool               `json:"favorable"`
}

// RankedProduct is one product ordered by absolute variance
type RankedProduct struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	TotalVariance float64 `json:"total_variance"`
	Direction     string  `json:"direction"`
}

// LedgerRow represents one product in the variance ledger.
// Amounts are rounded to cents for display.
type LedgerRow struct {
	Index            int    `json:"index"`
	Name             string `json:"name"`
	PlannedRevenue   string `json:"planned_revenue"`
	ActualRevenue    string `json:"actual_revenue"`
	PlannedMargin    string `json:"planned_margin"`
	ActualMargin     string `json:"actual_margin"`
	PriceVariance    string `json:"price_variance"`
	QuantityVariance string `json:"quantity_variance"`
	TotalVariance    string `json:"total_variance"`
	CumVariance      string `json:"cum_variance"`
	Direction        string `json:"direction"`
}

// OptimizeResponse represents the optimal price point
type OptimizeResponse struct {
	ID              string       `json:"id,omitempty"`
	OptimalPrice    float64      `json:"optimal_price"`
	OptimalQuantity float64      `json:"optimal_quantity"`
	MaxProfit       float64      `json:"max_profit"`
	Curve           []CurvePoint `json:"curve,omitempty"`
}

// CurvePoint is one sample of the profit curve
type CurvePoint struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Profit   float64 `json:"profit"`
}

// CompareBudgetResponse represents a budget-to-actual comparison
type CompareBudgetResponse struct {
	ID      string         `json:"id,omitempty"`
	Rows    []SegmentRow   `json:"rows"`
	Summary SegmentSummary `json:"summary"`
}

// SegmentRow is one (product, market, quarter) comparison.
// Variance is null and Error is set when one side is missing.
type SegmentRow struct {
	Product  string   `json:"product"`
	Market   string   `json:"market"`
	Quarter  string   `json:"quarter"`
	Budgeted *float64 `json:"budgeted"`
	Actual   *float64 `json:"actual"`
	Variance *float64 `json:"variance"`
	Status   string   `json:"status"` // "COMPARABLE", "MISSING_ACTUAL", "MISSING_BUDGET"
	Error    string   `json:"error,omitempty"`
}

// SegmentSummary rolls comparable rows up
type SegmentSummary struct {
	TotalBudgeted float64            `json:"total_budgeted"`
	TotalActual   float64            `json:"total_actual"`
	TotalVariance float64            `json:"total_variance"`
	ByProduct     map[string]float64 `json:"by_product"`
	ByQuarter     map[string]float64 `json:"by_quarter"`
	Missing       int                `json:"missing"`
}

// AnalysisResponse wraps a cached analysis of any kind
type AnalysisResponse struct {
	ID           string                 `json:"id"`
	ExerciseID   string                 `json:"exercise_id,omitempty"`
	Name         string                 `json:"name,omitempty"`
	Kind         string                 `json:"kind"`
	CreatedAt    time.Time              `json:"created_at"`
	Portfolio    *PortfolioResponse     `json:"portfolio,omitempty"`
	Optimization *OptimizeResponse      `json:"optimization,omitempty"`
	Budget       *CompareBudgetResponse `json:"budget,omitempty"`
}

// ExerciseInfo represents a saved exercise
type ExerciseInfo struct {
	ID           string                        `json:"id"`
	Name         string                        `json:"name"`
	Kind         string                        `json:"kind"`
	CreatedAt    time.Time                     `json:"created_at"`
	Variance     []model.ProductVarianceRecord `json:"records,omitempty"`
	Optimization *model.PriceOptimizationInput `json:"optimization,omitempty"`
	Budgeted     []model.SalesFigure           `json:"budgeted,omitempty"`
	Actual       []model.SalesFigure           `json:"actual,omitempty"`
}

// DatasetInfo represents a dataset preset
type DatasetInfo struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Currency        string `json:"currency"`
	Products        int    `json:"products"`
	HasOptimization bool   `json:"has_optimization"`
	BudgetRows      int    `json:"budget_rows"`
}

// DatasetAnalysisResponse runs every engine over one dataset preset
type DatasetAnalysisResponse struct {
	Dataset      DatasetInfo        `json:"dataset"`
	Portfolio    *PortfolioResponse `json:"portfolio,omitempty"`
	Optimization *OptimizeResponse  `json:"optimization,omitempty"`
	// Set instead of Optimization when the dataset's inputs are out of range.
	OptimizationError *ErrorDetail           `json:"optimization_error,omitempty"`
	Budget            *CompareBudgetResponse `json:"budget,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
