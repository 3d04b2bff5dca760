package handlers

import (
	"coop-budget/internal/analysis"
	"coop-budget/internal/api/models"
	"coop-budget/internal/exercise"
	"coop-budget/internal/model"
	"coop-budget/internal/report"
)

func convertVariance(name string, v model.VarianceResult) models.VarianceResponse {
	return models.VarianceResponse{
		Name:             name,
		PriceVariance:    v.PriceVariance,
		QuantityVariance: v.QuantityVariance,
		TotalVariance:    v.TotalVariance,
		Favorable:        v.Favorable,
		Direction:        string(v.Direction()),
	}
}

func convertPortfolio(id string, p analysis.Portfolio, ranked []analysis.RankedVariance) *models.PortfolioResponse {
	resp := &models.PortfolioResponse{
		ID:                    id,
		PerProduct:            make([]models.VarianceResponse, len(p.PerProduct)),
		Ranking:               make([]models.RankedProduct, len(ranked)),
		TotalPriceVariance:    p.TotalPriceVariance,
		TotalQuantityVariance: p.TotalQuantityVariance,
		TotalVariance:         p.TotalVariance,
		Favorable:             p.Favorable(),
	}
	for i, pv := range p.PerProduct {
		resp.PerProduct[i] = convertVariance(pv.Name, pv.VarianceResult)
	}
	for i, r := range ranked {
		resp.Ranking[i] = models.RankedProduct{
			Rank:          r.Rank,
			Name:          r.Name,
			TotalVariance: r.TotalVariance,
			Direction:     string(r.Direction()),
		}
	}
	ledger := report.BuildLedger(p)
	resp.Ledger = make([]models.LedgerRow, len(ledger.Rows))
	for i, row := range ledger.Rows {
		resp.Ledger[i] = models.LedgerRow{
			Index:            row.Index,
			Name:             row.Name,
			PlannedRevenue:   report.FormatMoney(row.PlannedRevenue),
			ActualRevenue:    report.FormatMoney(row.ActualRevenue),
			PlannedMargin:    report.FormatMoney(row.PlannedMargin),
			ActualMargin:     report.FormatMoney(row.ActualMargin),
			PriceVariance:    report.FormatMoney(row.PriceVariance),
			QuantityVariance: report.FormatMoney(row.QuantityVariance),
			TotalVariance:    report.FormatMoney(row.TotalVariance),
			CumVariance:      report.FormatMoney(row.CumVariance),
			Direction:        string(row.Direction),
		}
	}
	return resp
}

func convertOptimization(id string, res model.OptimizationResult, curve []analysis.CurvePoint) *models.OptimizeResponse {
	resp := &models.OptimizeResponse{
		ID:              id,
		OptimalPrice:    res.OptimalPrice,
		OptimalQuantity: res.OptimalQuantity,
		MaxProfit:       res.MaxProfit,
	}
	for _, p := range curve {
		resp.Curve = append(resp.Curve, models.CurvePoint{Price: p.Price, Quantity: p.Quantity, Profit: p.Profit})
	}
	return resp
}

func convertComparison(id string, rows []analysis.SegmentVariance, s analysis.SegmentSummary) *models.CompareBudgetResponse {
	resp := &models.CompareBudgetResponse{
		ID:   id,
		Rows: make([]models.SegmentRow, len(rows)),
		Summary: models.SegmentSummary{
			TotalBudgeted: s.TotalBudgeted,
			TotalActual:   s.TotalActual,
			TotalVariance: s.TotalVariance,
			ByProduct:     s.ByProduct,
			ByQuarter:     make(map[string]float64, len(s.ByQuarter)),
			Missing:       s.Missing,
		},
	}
	for q, v := range s.ByQuarter {
		resp.Summary.ByQuarter[string(q)] = v
	}
	for i, r := range rows {
		row := models.SegmentRow{
			Product: r.Key.Product,
			Market:  r.Key.Market,
			Quarter: string(r.Key.Quarter),
			Status:  string(r.Status),
		}
		switch r.Status {
		case analysis.StatusComparable:
			row.Budgeted, row.Actual, row.Variance = ptr(r.Budgeted), ptr(r.Actual), ptr(r.Variance)
		case analysis.StatusMissingActual:
			row.Budgeted = ptr(r.Budgeted)
		case analysis.StatusMissingBudget:
			row.Actual = ptr(r.Actual)
		}
		if err := r.Err(); err != nil {
			row.Error = err.Error()
		}
		resp.Rows[i] = row
	}
	return resp
}

func convertOutcome(out exercise.Outcome) models.AnalysisResponse {
	resp := models.AnalysisResponse{
		ID:         out.ID,
		ExerciseID: out.ExerciseID,
		Name:       out.Name,
		Kind:       string(out.Kind),
		CreatedAt:  out.CreatedAt,
	}
	if out.Portfolio != nil {
		resp.Portfolio = convertPortfolio(out.ID, *out.Portfolio, out.Ranking)
	}
	if out.Optimization != nil {
		resp.Optimization = convertOptimization(out.ID, *out.Optimization, nil)
	}
	if out.Summary != nil {
		resp.Budget = convertComparison(out.ID, out.Comparison, *out.Summary)
	}
	return resp
}

func convertExercise(ex exercise.Exercise) models.ExerciseInfo {
	info := models.ExerciseInfo{
		ID:           ex.ID,
		Name:         ex.Name,
		Kind:         string(ex.Kind),
		CreatedAt:    ex.CreatedAt,
		Optimization: ex.Optimization,
	}
	if ex.Variance != nil {
		info.Variance = ex.Variance.Records
	}
	if ex.Budget != nil {
		info.Budgeted = ex.Budget.Budgeted
		info.Actual = ex.Budget.Actual
	}
	return info
}

func ptr(x float64) *float64 { return &x }
