package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"coop-budget/internal/api/models"
	"coop-budget/internal/config"
	"coop-budget/internal/data"
	"coop-budget/internal/exercise"
	"coop-budget/internal/logger"
	"coop-budget/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DatasetHandler serves the YAML dataset presets in a directory.
type DatasetHandler struct {
	dir     string
	cache   *data.ResultCache
	metrics *metrics.Metrics
}

func NewDatasetHandler(dir string, cache *data.ResultCache, m *metrics.Metrics) *DatasetHandler {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &DatasetHandler{dir: dir, cache: cache, metrics: m}
}

// ListDatasets handles GET /api/v1/datasets
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	log := logger.FromGin(c)
	datasets := []models.DatasetInfo{}

	entries, err := os.ReadDir(h.dir)
	if err != nil {
		log.Warn("reading dataset directory", zap.String("dir", h.dir), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"datasets": datasets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".yaml")
		d, err := config.Load(filepath.Join(h.dir, entry.Name()))
		if err != nil {
			log.Warn("skipping invalid dataset", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		datasets = append(datasets, datasetInfo(id, d))
	}

	c.JSON(http.StatusOK, gin.H{"datasets": datasets})
}

// AnalyzeDataset handles GET /api/v1/datasets/:id/analysis.
// Every section the dataset provides is run through its engine.
func (h *DatasetHandler) AnalyzeDataset(c *gin.Context) {
	id := c.Param("id")
	path, err := h.resolve(id)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	d, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "dataset "+id+" not found")
			return
		}
		respondError(c, http.StatusUnprocessableEntity, "INVALID_DATASET", err.Error())
		return
	}

	resp := models.DatasetAnalysisResponse{Dataset: datasetInfo(id, d)}

	if len(d.Products) > 0 {
		out, err := runAndCache(c, h.cache, h.metrics, exercise.Exercise{
			Name:     d.Name,
			Kind:     exercise.KindVariance,
			Variance: &exercise.VarianceInput{Records: d.Products},
		})
		if err != nil {
			respondAnalysisError(c, err)
			return
		}
		resp.Portfolio = convertPortfolio(out.ID, *out.Portfolio, out.Ranking)
	}

	if d.Optimization != nil {
		out, err := runAndCache(c, h.cache, h.metrics, exercise.Exercise{
			Name:         d.Name,
			Kind:         exercise.KindOptimization,
			Optimization: d.Optimization,
		})
		if err != nil {
			_, detail := analysisError(err)
			resp.OptimizationError = &detail
		} else {
			resp.Optimization = convertOptimization(out.ID, *out.Optimization, nil)
		}
	}

	if len(d.Budget) > 0 || len(d.Actual) > 0 {
		out, err := runAndCache(c, h.cache, h.metrics, exercise.Exercise{
			Name: d.Name,
			Kind: exercise.KindBudget,
			Budget: &exercise.BudgetInput{
				Budgeted: d.BudgetFigures(),
				Actual:   d.ActualFigures(),
			},
		})
		if err != nil {
			respondAnalysisError(c, err)
			return
		}
		resp.Budget = convertComparison(out.ID, out.Comparison, *out.Summary)
	}

	c.JSON(http.StatusOK, resp)
}

// resolve maps a dataset ID to a file inside the dataset directory.
func (h *DatasetHandler) resolve(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", errors.New("invalid dataset id")
	}
	return filepath.Join(h.dir, id+".yaml"), nil
}

func datasetInfo(id string, d *config.Dataset) models.DatasetInfo {
	return models.DatasetInfo{
		ID:              id,
		Name:            d.Name,
		Currency:        d.Currency,
		Products:        len(d.Products),
		HasOptimization: d.Optimization != nil,
		BudgetRows:      len(d.Budget),
	}
}
