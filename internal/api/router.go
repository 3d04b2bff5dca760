// Package api assembles the HTTP surface of the analysis service.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"coop-budget/internal/api/handlers"
	"coop-budget/internal/api/middleware"
	"coop-budget/internal/data"
	"coop-budget/internal/logger"
	"coop-budget/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the shared services the router wires into handlers.
type Deps struct {
	Log         *zap.Logger
	Store       handlers.ExerciseStore
	Cache       *data.ResultCache
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	DatasetsDir string
	CORSOrigins []string
	// Optional SPA build to serve for non-API routes.
	StaticDir string
}

func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(logger.GinMiddleware(d.Log))
	router.Use(middleware.ErrorHandler(d.Log))
	router.Use(middleware.CORS(d.CORSOrigins))
	router.Use(middleware.Metrics(d.Metrics))

	analysisHandler := handlers.NewAnalysisHandler(d.Cache, d.Metrics)
	exerciseHandler := handlers.NewExerciseHandler(d.Store, d.Cache, d.Metrics)
	datasetHandler := handlers.NewDatasetHandler(d.DatasetsDir, d.Cache, d.Metrics)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	{
		api.POST("/variance", analysisHandler.ComputeVariance)
		api.POST("/variance/portfolio", analysisHandler.AggregatePortfolio)
		api.POST("/optimize", analysisHandler.OptimizePrice)
		api.POST("/budget/compare", analysisHandler.CompareBudget)
		api.GET("/analyses/:id", analysisHandler.GetAnalysis)

		api.GET("/datasets", datasetHandler.ListDatasets)
		api.GET("/datasets/:id/analysis", datasetHandler.AnalyzeDataset)

		api.POST("/exercises", exerciseHandler.CreateExercise)
		api.GET("/exercises", exerciseHandler.ListExercises)
		api.GET("/exercises/:id", exerciseHandler.GetExercise)
		api.DELETE("/exercises/:id", exerciseHandler.DeleteExercise)
		api.POST("/exercises/:id/run", exerciseHandler.RunExercise)
	}

	serveStatic(router, d.StaticDir, d.Log)
	return router
}

// serveStatic serves a built frontend from dir, with index.html as the
// fallback for client-side routes.
func serveStatic(router *gin.Engine, dir string, log *zap.Logger) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	}
	if dir == "" {
		router.NoRoute(notFound)
		return
	}
	if _, err := os.Stat(dir); err != nil {
		log.Info("static directory not found, skipping static file serving", zap.String("dir", dir))
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	log.Info("serving static files", zap.String("dir", dir))
}
