package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/newsdesk/internal/api/middleware"
	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/search"
	"github.com/amiyamandal-dev/newsdesk/internal/service"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
	"github.com/amiyamandal-dev/newsdesk/pkg/response"
)

// SearchHandler handles search-related requests
type SearchHandler struct {
	searchService *service.SearchService
	logger        *logger.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService, logger *logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger.WithComponent("search-handler"),
	}
}

// Search performs a relevance-ranked full-text query
func (h *SearchHandler) Search(c *gin.Context) {
	parser := NewQueryParamParser(c)
	q := parser.String("q", "")
	category := parser.OptionalID("category")
	pagination := parser.Pagination(15)

	if err := parser.Error(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if q == "" {
		response.BadRequest(c, "Query parameter 'q' is required")
		return
	}

	query := &search.SearchQuery{
		Query: q,
		Page:  pagination.Page,
		Limit: pagination.Limit,
	}
	if category != nil {
		query.CategoryID = *category
	}

	result, err := h.searchService.Search(c.Request.Context(), query)
	if errors.Is(err, domain.ErrSearchUnavailable) {
		response.ServiceUnavailable(c, "Search is disabled")
		return
	}
	if err != nil {
		h.logger.Error("Search failed", "request_id", middleware.RequestID(c), "query", q, "error", err)
		response.InternalServerError(c, "Search failed")
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"data": gin.H{
			"results":    result.Articles,
			"query_time": result.QueryTime,
		},
		"pagination": response.Pagination{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	})
}
