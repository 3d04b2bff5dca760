package handlers

import (
	"fmt"
	"math"

	"coop-budget/internal/analysis"
	"coop-budget/internal/exercise"
	"coop-budget/internal/model"
)

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func checkVariance(name string, v model.VarianceResult) error {
	if !finite(v.PriceVariance, v.QuantityVariance, v.TotalVariance) {
		return fmt.Errorf("%w: variance of %q", errNonFinite, name)
	}
	return nil
}

func checkCurve(points []analysis.CurvePoint) error {
	for _, p := range points {
		if !finite(p.Price, p.Quantity, p.Profit) {
			return fmt.Errorf("%w: profit curve at price %v", errNonFinite, p.Price)
		}
	}
	return nil
}

// checkOutcome rejects outcomes holding a value JSON cannot carry.
// Ledger amounts are rendered as strings and are not checked.
func checkOutcome(out exercise.Outcome) error {
	if p := out.Portfolio; p != nil {
		for _, pv := range p.PerProduct {
			if err := checkVariance(pv.Name, pv.VarianceResult); err != nil {
				return err
			}
		}
		if !finite(p.TotalPriceVariance, p.TotalQuantityVariance, p.TotalVariance) {
			return fmt.Errorf("%w: portfolio totals", errNonFinite)
		}
	}
	if o := out.Optimization; o != nil {
		if !finite(o.OptimalPrice, o.OptimalQuantity, o.MaxProfit) {
			return fmt.Errorf("%w: optimal price %v, quantity %v, profit %v",
				errNonFinite, o.OptimalPrice, o.OptimalQuantity, o.MaxProfit)
		}
	}
	for _, r := range out.Comparison {
		if !finite(r.Budgeted, r.Actual, r.Variance) {
			return fmt.Errorf("%w: segment %s", errNonFinite, r.Key)
		}
	}
	if s := out.Summary; s != nil {
		if !finite(s.TotalBudgeted, s.TotalActual, s.TotalVariance) {
			return fmt.Errorf("%w: budget totals", errNonFinite)
		}
		for p, v := range s.ByProduct {
			if !finite(v) {
				return fmt.Errorf("%w: product %s total", errNonFinite, p)
			}
		}
		for q, v := range s.ByQuarter {
			if !finite(v) {
				return fmt.Errorf("%w: quarter %s total", errNonFinite, q)
			}
		}
	}
	return nil
}
