package data

import (
	"fmt"
	"math"

	"coop-budget/internal/config"
	"coop-budget/internal/model"

	"github.com/brianvoe/gofakeit/v7"
)

// SyntheticOptions shapes a generated dataset.
type SyntheticOptions struct {
	Products int
	Markets  []string
	// Share (0-1) of actual quarters left blank, to exercise missing comparables.
	MissingRate float64
}

// SyntheticDataset generates a plausible cooperative dataset: per-product plan
// vs actual lines, a pricing anchor and quarterly budget/actual tables.
// The same faker seed yields the same dataset.
func SyntheticDataset(f *gofakeit.Faker, opts SyntheticOptions) config.Dataset {
	if opts.Products <= 0 {
		opts.Products = 3
	}
	if len(opts.Markets) == 0 {
		opts.Markets = []string{"local"}
	}

	d := config.Dataset{
		Name:     f.Company(),
		Currency: "MAD",
	}

	for i := 0; i < opts.Products; i++ {
		pq := float64(f.IntRange(1000, 20000))
		pp := round2(f.Float64Range(40, 300))
		d.Products = append(d.Products, model.ProductVarianceRecord{
			Name:             fmt.Sprintf("%s %d", f.ProductName(), i+1),
			PlannedQuantity:  pq,
			PlannedPrice:     pp,
			ActualQuantity:   math.Round(pq * f.Float64Range(0.75, 1.2)),
			ActualPrice:      round2(pp * f.Float64Range(0.9, 1.1)),
			StandardUnitCost: round2(pp * f.Float64Range(0.5, 0.8)),
		})
	}

	anchor := d.Products[0]
	d.Optimization = &model.PriceOptimizationInput{
		CurrentPrice:        anchor.PlannedPrice,
		CurrentQuantity:     anchor.PlannedQuantity,
		VariableCostPerUnit: anchor.StandardUnitCost,
		FixedCosts:          round2(anchor.PlannedPrice * anchor.PlannedQuantity * f.Float64Range(0.05, 0.2)),
		Elasticity:          round2(f.Float64Range(-3.5, -1.2)),
	}

	for _, p := range d.Products {
		for _, market := range opts.Markets {
			budget := config.SalesRow{Product: p.Name, Market: market}
			actual := config.SalesRow{Product: p.Name, Market: market}
			for range model.Quarters {
				b := round2(p.PlannedPrice * p.PlannedQuantity / 4 / float64(len(opts.Markets)) * f.Float64Range(0.8, 1.2))
				budget.Quarters = append(budget.Quarters, &b)
				if f.Float64() < opts.MissingRate {
					actual.Quarters = append(actual.Quarters, nil)
					continue
				}
				a := round2(b * f.Float64Range(0.85, 1.15))
				actual.Quarters = append(actual.Quarters, &a)
			}
			d.Budget = append(d.Budget, budget)
			d.Actual = append(d.Actual, actual)
		}
	}
	return d
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
