package listing

import (
	"context"
	"fmt"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/metrics"
	"github.com/amiyamandal-dev/newsdesk/internal/repository"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
)

// ListParams are the raw request parameters of a listing
type ListParams struct {
	Sort   string
	Order  string
	Page   string
	Filter FilterParams
}

// Page is one page of a listing plus its metadata
type Page struct {
	Articles []*domain.Article
	Total    int
	Number   int
	NumPages int
	PageSize int
	Clamp    Clamp
	Ordering domain.Ordering
	Category *domain.Category
	Tag      *domain.Tag
	Query    string
}

// HasPrevious reports whether a page precedes this one
func (p *Page) HasPrevious() bool { return p.Number > 1 }

// HasNext reports whether a page follows this one
func (p *Page) HasNext() bool { return p.Number < p.NumPages }

// PreviousNumber is the previous page number
func (p *Page) PreviousNumber() int { return p.Number - 1 }

// NextNumber is the next page number
func (p *Page) NextNumber() int { return p.Number + 1 }

// Resolver turns listing parameters into a page of articles
type Resolver struct {
	articles repository.ArticleRepository
	filters  *FilterResolver
	logger   *logger.Logger
}

// NewResolver creates a new listing resolver
func NewResolver(
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	tags repository.TagRepository,
	logger *logger.Logger,
) *Resolver {
	return &Resolver{
		articles: articles,
		filters:  NewFilterResolver(categories, tags),
		logger:   logger.WithComponent("listing"),
	}
}

// List resolves sort, then filter, then the page window, and fetches
// the window with categories and tags attached.
func (r *Resolver) List(ctx context.Context, params ListParams) (*Page, error) {
	ordering := ResolveSort(params.Sort, params.Order)

	filters, err := r.filters.Resolve(ctx, params.Filter)
	if err != nil {
		return nil, err
	}

	total, err := r.articles.Count(ctx, filters.Filter)
	if err != nil {
		return nil, fmt.Errorf("count listing: %w", err)
	}

	window := Paginate(params.Page, total, PageSize)

	articles := []*domain.Article{}
	if total > 0 {
		articles, err = r.articles.List(ctx, filters.Filter, ordering, window.Offset, window.Limit)
		if err != nil {
			return nil, fmt.Errorf("list window: %w", err)
		}
	}

	if window.Clamp != Exact {
		r.logger.Debug("Page parameter clamped",
			"requested", params.Page,
			"served", window.Number,
			"clamp", window.Clamp,
		)
		metrics.RecordClamp(window.Clamp.String())
	}

	return &Page{
		Articles: articles,
		Total:    total,
		Number:   window.Number,
		NumPages: window.NumPages,
		PageSize: window.Limit,
		Clamp:    window.Clamp,
		Ordering: ordering,
		Category: filters.Category,
		Tag:      filters.Tag,
		Query:    filters.Filter.Query,
	}, nil
}
