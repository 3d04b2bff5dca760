package report

import (
	"coop-budget/internal/analysis"
	"coop-budget/internal/model"
)

// LedgerRow is one row of per-product output.
// This is the primary artifact for "what happened" against plan.
type LedgerRow struct {
	Index int
	Name  string

	PlannedQuantity float64
	PlannedPrice    float64
	ActualQuantity  float64
	ActualPrice     float64

	PlannedRevenue float64
	ActualRevenue  float64
	PlannedMargin  float64
	ActualMargin   float64

	PriceVariance    float64
	QuantityVariance float64
	TotalVariance    float64
	CumVariance      float64

	Direction model.Direction
}

type Ledger struct {
	Rows                  []LedgerRow
	TotalPriceVariance    float64
	TotalQuantityVariance float64
	TotalVariance         float64
}

// BuildLedger lays a portfolio out row by row, in portfolio order, with a
// running variance total.
func BuildLedger(p analysis.Portfolio) Ledger {
	rows := make([]LedgerRow, 0, len(p.PerProduct))
	cum := 0.0
	for idx, pv := range p.PerProduct {
		r := pv.Record
		cum += pv.TotalVariance
		rows = append(rows, LedgerRow{
			Index: idx,
			Name:  pv.Name,

			PlannedQuantity: r.PlannedQuantity,
			PlannedPrice:    r.PlannedPrice,
			ActualQuantity:  r.ActualQuantity,
			ActualPrice:     r.ActualPrice,

			PlannedRevenue: r.PlannedRevenue(),
			ActualRevenue:  r.ActualRevenue(),
			PlannedMargin:  r.PlannedMargin(),
			ActualMargin:   r.ActualMargin(),

			PriceVariance:    pv.PriceVariance,
			QuantityVariance: pv.QuantityVariance,
			TotalVariance:    pv.TotalVariance,
			CumVariance:      cum,

			Direction: pv.Direction(),
		})
	}
	return Ledger{
		Rows:                  rows,
		TotalPriceVariance:    p.TotalPriceVariance,
		TotalQuantityVariance: p.TotalQuantityVariance,
		TotalVariance:         p.TotalVariance,
	}
}
