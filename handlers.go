package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finance-reports/internal/export"
	"finance-reports/internal/report"
	"finance-reports/internal/service"
	"finance-reports/internal/store"
)

// userHeader carries the authenticated user id set by the upstream auth proxy.
const userHeader = "X-User-ID"

// healthCheck handles the health check endpoint
func (s *server) healthCheck(c *gin.Context) {
	if err := s.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "finance-reports",
	})
}

// requireUser reads the user id header. It aborts with 401 and reports false
// when the header is missing or malformed, so nothing is fetched.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(userHeader)
	if raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + userHeader + " header"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid " + userHeader + " header"})
		return uuid.Nil, false
	}
	return id, true
}

// getCategories lists the categories of the current user
func (s *server) getCategories(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	categories, err := s.categories.ListCategories(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// getReport fetches the filtered transactions and returns them with the
// aggregated report
func (s *server) getReport(c *gin.Context) {
	res, ok := s.buildReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// exportReport returns the same report as an XLSX workbook
func (s *server) exportReport(c *gin.Context) {
	res, ok := s.buildReport(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, res.Filters, res.Transactions, res.Report); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render workbook"})
		return
	}

	filename := fmt.Sprintf("relatorio-%s.xlsx", s.now().Format(time.DateOnly))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// buildReport runs the shared part of the report endpoints. A fetch failure
// answers 502 so clients can tell it apart from an empty report.
func (s *server) buildReport(c *gin.Context) (*service.Result, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return nil, false
	}

	filters := report.DefaultFilters()
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	// Dates stay unbounded unless the client picks a period preset.
	if _, explicit := c.GetQuery("period"); explicit {
		filters = filters.Resolve(s.now())
	}

	res, err := s.reports.Build(c.Request.Context(), userID, filters)
	switch {
	case err == nil:
		return res, true
	case errors.Is(err, report.ErrInvalidFilters):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNoUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch transactions"})
	}
	return nil, false
}
