package repository

import (
	"context"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
)

// ArticleRepository defines the interface for article persistence
type ArticleRepository interface {
	// Create persists a new article and assigns its ID
	Create(ctx context.Context, article *domain.Article) error

	// GetByID retrieves an article with its category and tags
	GetByID(ctx context.Context, id int64) (*domain.Article, error)

	// GetBySlug retrieves an article with its category and tags
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)

	// IDBySlug resolves a slug without loading the article
	IDBySlug(ctx context.Context, slug string) (int64, error)

	// SlugExists reports whether a slug is taken
	SlugExists(ctx context.Context, slug string) (bool, error)

	// IncrementViews adds one to the article's view counter
	IncrementViews(ctx context.Context, id int64) error

	// Count returns the number of articles matching the filter
	Count(ctx context.Context, filter domain.ArticleFilter) (int, error)

	// List returns a window of matching articles, category and tags attached
	List(ctx context.Context, filter domain.ArticleFilter, order domain.Ordering, offset, limit int) ([]*domain.Article, error)

	// AttachTag adds a tag to an article's tag set
	AttachTag(ctx context.Context, articleID, tagID int64) error

	// Walk calls fn for every article in id order
	Walk(ctx context.Context, fn func(*domain.Article) error) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	Create(ctx context.Context, name string) (*domain.Tag, error)
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
}
