package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/newsdesk/internal/listing"
)

// PaginationParams holds parsed pagination parameters
type PaginationParams struct {
	Page  int
	Limit int
}

// QueryParamParser provides helpers for parsing and validating query parameters
type QueryParamParser struct {
	c   *gin.Context
	err error
}

// NewQueryParamParser creates a new query parameter parser
func NewQueryParamParser(c *gin.Context) *QueryParamParser {
	return &QueryParamParser{c: c}
}

// Error returns any parsing error that occurred
func (p *QueryParamParser) Error() error {
	return p.err
}

// Pagination parses and validates page and limit for search results
func (p *QueryParamParser) Pagination(defaultLimit int) PaginationParams {
	if p.err != nil {
		return PaginationParams{Page: 1, Limit: defaultLimit}
	}

	page := 1
	limit := defaultLimit

	if pageStr := p.c.Query("page"); pageStr != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(pageStr))
		if err != nil {
			p.err = fmt.Errorf("invalid 'page' parameter: must be a number")
			return PaginationParams{Page: 1, Limit: defaultLimit}
		}
		page = parsed
	}

	if limitStr := p.c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(limitStr))
		if err != nil {
			p.err = fmt.Errorf("invalid 'limit' parameter: must be a number")
			return PaginationParams{Page: 1, Limit: defaultLimit}
		}
		limit = parsed
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}

	return PaginationParams{Page: page, Limit: limit}
}

// OptionalID parses an optional positive integer query parameter
func (p *QueryParamParser) OptionalID(key string) *int64 {
	if p.err != nil {
		return nil
	}

	raw := strings.TrimSpace(p.c.Query(key))
	if raw == "" {
		return nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.err = fmt.Errorf("invalid '%s' parameter: must be a number", key)
		return nil
	}
	return &id
}

// String gets a trimmed string parameter with optional default
func (p *QueryParamParser) String(key, defaultValue string) string {
	if p.err != nil {
		return defaultValue
	}

	value := strings.TrimSpace(p.c.Query(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// Listing collects the raw sort, order and page parameters. They are
// never rejected; the listing resolver falls back or clamps instead.
func Listing(c *gin.Context, filter listing.FilterParams) listing.ListParams {
	return listing.ListParams{
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
		Page:   c.Query("page"),
		Filter: filter,
	}
}

// PathID parses a positive integer path parameter
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
