package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"coop-budget/internal/api/models"
	"coop-budget/internal/data"
	"coop-budget/internal/exercise"
	"coop-budget/internal/logger"
	"coop-budget/internal/metrics"
	"coop-budget/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExerciseStore is the persistence the exercise endpoints need.
type ExerciseStore interface {
	Save(ctx context.Context, ex exercise.Exercise) (exercise.Exercise, error)
	Get(ctx context.Context, id string) (exercise.Exercise, error)
	List(ctx context.Context, kind exercise.Kind) ([]exercise.Exercise, error)
	Delete(ctx context.Context, id string) error
}

// ExerciseHandler handles saved-exercise requests
type ExerciseHandler struct {
	store   ExerciseStore
	cache   *data.ResultCache
	metrics *metrics.Metrics
}

func NewExerciseHandler(s ExerciseStore, cache *data.ResultCache, m *metrics.Metrics) *ExerciseHandler {
	return &ExerciseHandler{store: s, cache: cache, metrics: m}
}

// CreateExercise handles POST /api/v1/exercises.
// The body is {"name", "kind", "payload"}.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	ex, err := exercise.Decode(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	saved, err := h.store.Save(c.Request.Context(), ex)
	if err != nil {
		logger.FromGin(c).Error("saving exercise", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusCreated, convertExercise(saved))
}

// ListExercises handles GET /api/v1/exercises[?kind=]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	kind := exercise.Kind(c.Query("kind"))
	if kind != "" && !kind.Valid() {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown kind "+string(kind))
		return
	}

	list, err := h.store.List(c.Request.Context(), kind)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	out := make([]models.ExerciseInfo, len(list))
	for i, ex := range list {
		out[i] = convertExercise(ex)
	}
	c.JSON(http.StatusOK, gin.H{"exercises": out, "count": len(out)})
}

// GetExercise handles GET /api/v1/exercises/:id
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	ex, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, convertExercise(ex))
}

// DeleteExercise handles DELETE /api/v1/exercises/:id
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RunExercise handles POST /api/v1/exercises/:id/run
func (h *ExerciseHandler) RunExercise(c *gin.Context) {
	ex, ok := h.load(c)
	if !ok {
		return
	}
	out, err := runAndCache(c, h.cache, h.metrics, ex)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, convertOutcome(out))
}

func (h *ExerciseHandler) load(c *gin.Context) (exercise.Exercise, bool) {
	ex, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return exercise.Exercise{}, false
	}
	return ex, true
}

func (h *ExerciseHandler) storeError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	logger.FromGin(c).Error("exercise store", zap.Error(err))
	respondError(c, http.StatusInternalServerError, "STORE_ERROR", err.Error())
}
