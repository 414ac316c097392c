package service

import (
	"context"
	"errors"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/repository"
	"github.com/amiyamandal-dev/newsdesk/internal/search"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
)

// SearchResults is a page of ranked articles
type SearchResults struct {
	Articles []*domain.Article
	*search.SearchResult
}

// SearchService handles search-related operations
type SearchService struct {
	index       search.Index
	articleRepo repository.ArticleRepository
	logger      *logger.Logger
}

// NewSearchService creates a new search service. index may be nil when
// search is disabled.
func NewSearchService(
	index search.Index,
	articleRepo repository.ArticleRepository,
	logger *logger.Logger,
) *SearchService {
	return &SearchService{
		index:       index,
		articleRepo: articleRepo,
		logger:      logger.WithComponent("search-service"),
	}
}

// Enabled reports whether a search index is configured
func (s *SearchService) Enabled() bool {
	return s.index != nil
}

// Search runs a relevance query and loads the matching articles in rank order
func (s *SearchService) Search(ctx context.Context, query *search.SearchQuery) (*SearchResults, error) {
	if s.index == nil {
		return nil, domain.ErrSearchUnavailable
	}

	result, err := s.index.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	articles := make([]*domain.Article, 0, len(result.IDs))
	for _, id := range result.IDs {
		article, err := s.articleRepo.GetByID(ctx, id)
		if errors.Is(err, domain.ErrArticleNotFound) {
			// stale document, e.g. the database was replaced under the index
			s.logger.Warn("Search index references missing article", "article_id", id)
			if err := s.index.DeleteArticle(ctx, id); err != nil {
				s.logger.Warn("Failed to prune stale search document", "article_id", id, "error", err)
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return &SearchResults{Articles: articles, SearchResult: result}, nil
}

// Reindex rebuilds the index from the article store
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, domain.ErrSearchUnavailable
	}
	n, err := search.Reindex(ctx, s.index, s.articleRepo)
	if err != nil {
		s.logger.Error("Reindex failed", "indexed", n, "error", err)
		return n, err
	}
	s.logger.Info("Reindex completed", "indexed", n)
	return n, nil
}

// GetIndexStats returns statistics about the search index
func (s *SearchService) GetIndexStats(ctx context.Context) (map[string]interface{}, error) {
	if s.index == nil {
		return nil, domain.ErrSearchUnavailable
	}
	count, err := s.index.Count()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total_documents": count,
	}, nil
}
