package analysis

import (
	"errors"
	"fmt"

	"coop-budget/internal/model"
)

var (
	// ErrInvalidElasticity means demand is not elastic enough (e >= -1) for an
	// interior profit maximum.
	ErrInvalidElasticity = errors.New("invalid elasticity")
	// ErrInvalidAnchor means the observed price or quantity is not positive,
	// so the demand curve is undefined.
	ErrInvalidAnchor = errors.New("invalid anchor")
	// ErrInvalidCost means the variable cost is not positive; the optimal
	// price would be zero with unbounded demand. It is checked after the
	// elasticity and anchor errors, so callers that only handle those two
	// must still treat it as a domain error.
	ErrInvalidCost = errors.New("invalid variable cost")
)

// OptimizePrice returns the profit-maximizing price under constant elasticity:
//
//	P* = c * e / (e + 1), for e < -1
//
// Failures are returned as errors wrapping one of the sentinels above.
func OptimizePrice(in model.PriceOptimizationInput) (model.OptimizationResult, error) {
	if err := checkDomain(in); err != nil {
		return model.OptimizationResult{}, err
	}
	e := in.Elasticity
	if !(in.VariableCostPerUnit > 0) {
		return model.OptimizationResult{}, fmt.Errorf("%w: variable_cost_per_unit must be > 0 (got %v)", ErrInvalidCost, in.VariableCostPerUnit)
	}

	price := in.VariableCostPerUnit * e / (e + 1)
	return model.OptimizationResult{
		OptimalPrice:    price,
		OptimalQuantity: in.Demand(price),
		MaxProfit:       in.Profit(price),
	}, nil
}

func checkDomain(in model.PriceOptimizationInput) error {
	// Written as a negation so NaN is rejected too.
	if !(in.Elasticity < -1) {
		return fmt.Errorf("%w: elasticity must be < -1 (got %v)", ErrInvalidElasticity, in.Elasticity)
	}
	if !(in.CurrentPrice > 0) || !(in.CurrentQuantity > 0) {
		return fmt.Errorf("%w: current_price and current_quantity must be > 0 (got %v, %v)",
			ErrInvalidAnchor, in.CurrentPrice, in.CurrentQuantity)
	}
	return nil
}

// CurvePoint is one sample of the demand/profit model.
type CurvePoint struct {
	Price    float64
	Quantity float64
	Profit   float64
}

// ProfitCurve evaluates the demand model at each price, in the order given.
// It only needs a valid anchor; elasticity may be anywhere.
func ProfitCurve(in model.PriceOptimizationInput, prices []float64) ([]CurvePoint, error) {
	if !(in.CurrentPrice > 0) || !(in.CurrentQuantity > 0) {
		return nil, fmt.Errorf("%w: current_price and current_quantity must be > 0 (got %v, %v)",
			ErrInvalidAnchor, in.CurrentPrice, in.CurrentQuantity)
	}
	out := make([]CurvePoint, 0, len(prices))
	for _, p := range prices {
		out = append(out, CurvePoint{
			Price:    p,
			Quantity: in.Demand(p),
			Profit:   in.Profit(p),
		})
	}
	return out, nil
}
