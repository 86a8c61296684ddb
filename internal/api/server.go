// Package api exposes the analysis toolkit over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"statkit/domain/stats"
	"statkit/internal"
	"statkit/internal/plotting"
	"statkit/internal/report"
)

// RunRepository persists analysis runs; satisfied by the postgres
// repository. A nil repository disables persistence without disabling
// analysis.
type RunRepository interface {
	Create(ctx context.Context, run *stats.AnalysisRun) error
	GetByID(ctx context.Context, id string) (*stats.AnalysisRun, error)
	List(ctx context.Context, limit int) ([]*stats.AnalysisRun, error)
}

// Server hosts the analysis API
type Server struct {
	router   *gin.Engine
	analyzer *report.Analyzer
	composer *plotting.Composer
	runs     RunRepository
	log      *internal.Logger
}

// NewServer creates the API server. runs may be nil to disable
// persistence.
func NewServer(analyzer *report.Analyzer, runs RunRepository) *Server {
	s := &Server{
		router:   gin.Default(),
		analyzer: analyzer,
		composer: plotting.NewComposer(),
		runs:     runs,
		log:      internal.DefaultLogger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/frequency", s.handleFrequency)
		api.POST("/plot", s.handlePlot)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
		api.GET("/runs/:id/summary", s.handleRunSummary)
	}
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.router
}
