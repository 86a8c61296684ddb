package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"statkit/domain/dataset"
	"statkit/domain/freq"
	"statkit/domain/stats"
	"statkit/internal/errors"
	"statkit/internal/report"
)

// analyzeRequest carries a frame, a test selection, and its options
type analyzeRequest struct {
	DatasetName string           `json:"dataset_name"`
	Columns     []dataset.Column `json:"columns" binding:"required"`
	Test        stats.TestType   `json:"test" binding:"required"`
	Options     report.Options   `json:"options"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	frame, err := dataset.FromColumns(req.Columns)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep, err := s.analyzer.Run(req.Test, frame, req.Options)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	run := stats.NewAnalysisRun(req.DatasetName, rep)
	if s.runs != nil {
		if err := s.runs.Create(c.Request.Context(), run); err != nil {
			s.log.Error("failed to persist analysis run: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"report": rep, "run_id": run.ID})
}

// frequencyRequest selects one column for a frequency-distribution table
type frequencyRequest struct {
	Columns        []dataset.Column `json:"columns" binding:"required"`
	Column         string           `json:"column" binding:"required"`
	CountsSupplied bool             `json:"counts_supplied"`
}

func (s *Server) handleFrequency(c *gin.Context) {
	var req frequencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	frame, err := dataset.FromColumns(req.Columns)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table, err := freq.Build(frame, req.Column, req.CountsSupplied)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, table)
}

// plotRequest selects one numeric column for the distribution view
type plotRequest struct {
	Columns []dataset.Column `json:"columns" binding:"required"`
	Column  string           `json:"column" binding:"required"`
	Bins    int              `json:"bins"`
}

func (s *Server) handlePlot(c *gin.Context) {
	var req plotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	frame, err := dataset.FromColumns(req.Columns)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := s.composer.Compose(frame, req.Column, req.Bins, &buf); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run persistence is not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := s.runs.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleGetRun(c *gin.Context) {
	run, ok := s.lookupRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) handleRunSummary(c *gin.Context) {
	run, ok := s.lookupRun(c)
	if !ok {
		return
	}

	md := runMarkdown(run)
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	html := markdown.ToHTML([]byte(md), p, renderer)

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) lookupRun(c *gin.Context) (*stats.AnalysisRun, bool) {
	if s.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run persistence is not configured"})
		return nil, false
	}

	run, err := s.runs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return run, true
}

// runMarkdown renders a run record as a short markdown summary
func runMarkdown(run *stats.AnalysisRun) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", run.Label)
	if run.DatasetName != "" {
		fmt.Fprintf(&b, "Dataset: **%s**\n\n", run.DatasetName)
	}
	fmt.Fprintf(&b, "- statistic: %.3f\n", run.Statistic)
	fmt.Fprintf(&b, "- p-value: %.3f\n", run.PValue)
	fmt.Fprintf(&b, "- alpha: %g\n", run.Alpha)
	if run.RejectNull {
		fmt.Fprintf(&b, "- verdict: **rejects the null hypothesis**\n")
	} else {
		fmt.Fprintf(&b, "- verdict: **fails to reject the null hypothesis**\n")
	}

	if len(run.Columns) > 0 {
		fmt.Fprintf(&b, "\n## Per-column normality\n\n")
		fmt.Fprintf(&b, "| Column | W | p-value | Normal |\n|---|---|---|---|\n")
		for _, col := range run.Columns {
			fmt.Fprintf(&b, "| %s | %.3f | %.3f | %t |\n", col.Column, col.Statistic, col.PValue, col.Normal)
		}
	}
	return b.String()
}

// statusFor maps application error codes onto HTTP statuses
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeInsufficientData:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
