package handlers

import (
	"net/http"

	"coop-budget/internal/analysis"
	"coop-budget/internal/api/models"
	"coop-budget/internal/data"
	"coop-budget/internal/exercise"
	"coop-budget/internal/logger"
	"coop-budget/internal/metrics"
	"coop-budget/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalysisHandler serves the stateless engine endpoints. Portfolio,
// optimization and budget results are also kept in the result cache.
type AnalysisHandler struct {
	cache   *data.ResultCache
	metrics *metrics.Metrics
}

func NewAnalysisHandler(cache *data.ResultCache, m *metrics.Metrics) *AnalysisHandler {
	return &AnalysisHandler{cache: cache, metrics: m}
}

// ComputeVariance handles POST /api/v1/variance
func (h *AnalysisHandler) ComputeVariance(c *gin.Context) {
	var req models.VarianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := exercise.Validate(req.Record); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	v := model.ComputeVariance(req.Record)
	err := checkVariance(req.Record.Name, v)
	h.metrics.ObserveAnalysis("variance", err)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, convertVariance(req.Record.Name, v))
}

// AggregatePortfolio handles POST /api/v1/variance/portfolio
func (h *AnalysisHandler) AggregatePortfolio(c *gin.Context) {
	var req models.PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	in := &exercise.VarianceInput{Records: req.Records}
	if err := exercise.Validate(in); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	out, err := h.run(c, exercise.Exercise{Kind: exercise.KindVariance, Variance: in})
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, convertPortfolio(out.ID, *out.Portfolio, out.Ranking))
}

// OptimizePrice handles POST /api/v1/optimize
func (h *AnalysisHandler) OptimizePrice(c *gin.Context) {
	var req models.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	in := req.Input()

	out, err := h.run(c, exercise.Exercise{Kind: exercise.KindOptimization, Optimization: &in})
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	var curve []analysis.CurvePoint
	if len(req.Prices) > 0 {
		curve, err = analysis.ProfitCurve(in, req.Prices)
		if err == nil {
			err = checkCurve(curve)
		}
		if err != nil {
			respondAnalysisError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, convertOptimization(out.ID, *out.Optimization, curve))
}

// CompareBudget handles POST /api/v1/budget/compare
func (h *AnalysisHandler) CompareBudget(c *gin.Context) {
	var req models.CompareBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	in := &exercise.BudgetInput{Budgeted: req.Budgeted, Actual: req.Actual}
	if err := exercise.Validate(in); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	out, err := h.run(c, exercise.Exercise{Kind: exercise.KindBudget, Budget: in})
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, convertComparison(out.ID, out.Comparison, *out.Summary))
}

// GetAnalysis handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id := c.Param("id")
	out, ok := h.cache.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "analysis "+id+" not found or expired")
		return
	}
	c.JSON(http.StatusOK, convertOutcome(out))
}

// run executes ex, records metrics and caches the outcome.
func (h *AnalysisHandler) run(c *gin.Context, ex exercise.Exercise) (exercise.Outcome, error) {
	return runAndCache(c, h.cache, h.metrics, ex)
}

func runAndCache(c *gin.Context, cache *data.ResultCache, m *metrics.Metrics, ex exercise.Exercise) (exercise.Outcome, error) {
	log := logger.FromGin(c)

	out, err := exercise.Run(ex)
	if err == nil {
		// Checked before caching so GET /analyses/:id never serves it.
		err = checkOutcome(out)
	}
	m.ObserveAnalysis(string(ex.Kind), err)
	if err != nil {
		log.Info("analysis rejected", zap.String("kind", string(ex.Kind)), zap.Error(err))
		return exercise.Outcome{}, err
	}

	if out.Summary != nil && m != nil {
		for _, row := range out.Comparison {
			switch row.Status {
			case analysis.StatusMissingActual:
				m.MissingComparables.WithLabelValues("actual").Inc()
			case analysis.StatusMissingBudget:
				m.MissingComparables.WithLabelValues("budget").Inc()
			}
		}
	}

	cache.Put(out)
	if m != nil {
		m.CachedResults.Set(float64(cache.Len()))
	}
	log.Debug("analysis cached", zap.String("id", out.ID), zap.String("kind", string(out.Kind)))
	return out, nil
}
