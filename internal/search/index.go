package search

import (
	"context"
	"strconv"
	"time"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
)

// SearchDocument represents a document in the search index
type SearchDocument struct {
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Category        string    `json:"category"`
	CategoryID      float64   `json:"category_id"`
	Tags            []string  `json:"tags"`
	PublicationDate time.Time `json:"publication_date"`
}

// SearchQuery represents a search query
type SearchQuery struct {
	Query      string
	CategoryID int64
	Page       int
	Limit      int
}

// SearchResult represents a search result
type SearchResult struct {
	IDs        []int64
	Total      int
	Page       int
	Limit      int
	TotalPages int
	QueryTime  int64 // milliseconds
}

// Index defines the interface for search indexing
type Index interface {
	// Close closes the search index
	Close() error

	// IndexArticle indexes or replaces an article
	IndexArticle(ctx context.Context, article *domain.Article) error

	// DeleteArticle removes an article from the index
	DeleteArticle(ctx context.Context, articleID int64) error

	// Search searches the index
	Search(ctx context.Context, query *SearchQuery) (*SearchResult, error)

	// Count returns the number of documents in the index
	Count() (uint64, error)
}

// ArticleToDocument converts an article to a search document
func ArticleToDocument(article *domain.Article) *SearchDocument {
	tags := make([]string, 0, len(article.Tags))
	for _, t := range article.Tags {
		tags = append(tags, t.Name)
	}
	return &SearchDocument{
		Title:           article.Title,
		Content:         article.Content,
		Category:        article.CategoryName(),
		CategoryID:      float64(article.CategoryID),
		Tags:            tags,
		PublicationDate: article.PublicationDate,
	}
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}
