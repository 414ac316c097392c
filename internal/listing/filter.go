package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/repository"
)

// FilterParams holds the optional filter dimensions of a listing
// request. Nil ids mean the dimension is absent.
type FilterParams struct {
	CategoryID  *int64
	TagID       *int64
	Query       string
	FavoritedBy domain.VisitorID
}

// Filters is a resolved predicate plus the records it refers to
type Filters struct {
	Filter   domain.ArticleFilter
	Category *domain.Category
	Tag      *domain.Tag
}

// FilterResolver validates filter parameters against the store
type FilterResolver struct {
	categories repository.CategoryRepository
	tags       repository.TagRepository
}

// NewFilterResolver creates a new filter resolver
func NewFilterResolver(categories repository.CategoryRepository, tags repository.TagRepository) *FilterResolver {
	return &FilterResolver{
		categories: categories,
		tags:       tags,
	}
}

// Resolve builds the AND of every present dimension. A referenced
// category or tag that does not exist is a not-found error.
func (r *FilterResolver) Resolve(ctx context.Context, params FilterParams) (Filters, error) {
	var out Filters

	if params.CategoryID != nil {
		category, err := r.categories.GetByID(ctx, *params.CategoryID)
		if err != nil {
			return Filters{}, fmt.Errorf("resolve category %d: %w", *params.CategoryID, err)
		}
		out.Category = category
		out.Filter.CategoryID = category.ID
	}

	if params.TagID != nil {
		tag, err := r.tags.GetByID(ctx, *params.TagID)
		if err != nil {
			return Filters{}, fmt.Errorf("resolve tag %d: %w", *params.TagID, err)
		}
		out.Tag = tag
		out.Filter.TagID = tag.ID
	}

	out.Filter.Query = strings.TrimSpace(params.Query)
	out.Filter.FavoritedBy = params.FavoritedBy

	return out, nil
}
