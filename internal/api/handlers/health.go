package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/newsdesk/internal/search"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
)

// HealthChecker reports whether the store answers
type HealthChecker interface {
	HealthCheck() error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db          HealthChecker
	searchIndex search.Index
	logger      *logger.Logger
}

// NewHealthHandler creates a new health handler. searchIndex may be nil
// when search is disabled.
func NewHealthHandler(db HealthChecker, searchIndex search.Index, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		searchIndex: searchIndex,
		logger:      logger.WithComponent("health-handler"),
	}
}

// Health returns basic health status
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
	})
}

// Readiness checks if the service is ready to handle requests
func (h *HealthHandler) Readiness(c *gin.Context) {
	var (
		dbHealthy     bool
		searchHealthy bool
		searchCount   uint64
		wg            sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		dbHealthy = h.db.HealthCheck() == nil
	}()

	// Search is optional; the catalog works without it
	go func() {
		defer wg.Done()
		if h.searchIndex == nil {
			return
		}
		var err error
		searchCount, err = h.searchIndex.Count()
		searchHealthy = err == nil
	}()

	wg.Wait()

	checks := map[string]interface{}{
		"database": map[string]interface{}{
			"healthy":  dbHealthy,
			"required": true,
		},
		"search": map[string]interface{}{
			"enabled":        h.searchIndex != nil,
			"healthy":        searchHealthy,
			"required":       false,
			"document_count": searchCount,
		},
	}

	status := "ready"
	code := 200
	if !dbHealthy {
		status = "not ready"
		code = 503
		h.logger.Warn("Readiness check failed", "database", dbHealthy)
	}

	body := gin.H{
		"status": status,
		"checks": checks,
	}
	if h.searchIndex != nil && !searchHealthy {
		body["warnings"] = []string{"Search index not available - /api/v1/search disabled"}
	}

	c.JSON(code, body)
}

// Liveness checks if the service is alive
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "alive",
	})
}
