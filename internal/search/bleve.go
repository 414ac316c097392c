package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
)

const (
	defaultLimit = 15
	maxLimit     = 100
)

// BleveIndex implements the Index interface using Bleve
type BleveIndex struct {
	index  bleve.Index
	mu     sync.RWMutex
	logger *logger.Logger
}

// Open opens or creates the search index at indexPath
func Open(indexPath string, log *logger.Logger) (*BleveIndex, error) {
	b := &BleveIndex{logger: log.WithComponent("bleve-index")}

	if err := os.MkdirAll(filepath.Dir(indexPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	var err error
	b.index, err = bleve.Open(indexPath)
	if err == nil {
		b.logger.Info("Opened existing search index", "path", indexPath)
		return b, nil
	}

	b.index, err = bleve.New(indexPath, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	b.logger.Info("Created new search index", "path", indexPath)
	return b, nil
}

// OpenInMemory creates an index that lives only in memory
func OpenInMemory(log *logger.Logger) (*BleveIndex, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	return &BleveIndex{index: idx, logger: log.WithComponent("bleve-index")}, nil
}

// buildIndexMapping builds the index mapping for articles. The standard
// analyzer is language neutral so Cyrillic titles tokenize correctly.
func buildIndexMapping() mapping.IndexMapping {
	articleMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = standard.Name
	titleFieldMapping.Store = true
	articleMapping.AddFieldMappingsAt("title", titleFieldMapping)

	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Analyzer = standard.Name
	contentFieldMapping.Store = false
	articleMapping.AddFieldMappingsAt("content", contentFieldMapping)

	categoryFieldMapping := bleve.NewKeywordFieldMapping()
	categoryFieldMapping.Store = true
	articleMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	categoryIDFieldMapping := bleve.NewNumericFieldMapping()
	categoryIDFieldMapping.Store = false
	articleMapping.AddFieldMappingsAt("category_id", categoryIDFieldMapping)

	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = standard.Name
	tagsFieldMapping.Store = true
	articleMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	dateFieldMapping := bleve.NewDateTimeFieldMapping()
	dateFieldMapping.Store = true
	articleMapping.AddFieldMappingsAt("publication_date", dateFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = standard.Name
	indexMapping.AddDocumentMapping("article", articleMapping)
	indexMapping.DefaultMapping = articleMapping

	return indexMapping
}

// Close closes the search index
func (b *BleveIndex) Close() error {
	if b.index != nil {
		if err := b.index.Close(); err != nil {
			return fmt.Errorf("failed to close index: %w", err)
		}
		b.logger.Info("Closed search index")
	}
	return nil
}

// IndexArticle indexes an article, replacing any previous version
func (b *BleveIndex) IndexArticle(ctx context.Context, article *domain.Article) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.index.Index(docID(article.ID), ArticleToDocument(article)); err != nil {
		b.logger.Error("Failed to index article", "article_id", article.ID, "error", err)
		return fmt.Errorf("failed to index article: %w", err)
	}

	b.logger.Debug("Indexed article", "article_id", article.ID)
	return nil
}

// DeleteArticle removes an article from the index
func (b *BleveIndex) DeleteArticle(ctx context.Context, articleID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.index.Delete(docID(articleID)); err != nil {
		b.logger.Error("Failed to delete article from index", "article_id", articleID, "error", err)
		return fmt.Errorf("failed to delete from index: %w", err)
	}
	return nil
}

// Search searches the index, best match first
func (b *BleveIndex) Search(ctx context.Context, q *SearchQuery) (*SearchResult, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	startTime := time.Now()

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(q), limit, (page-1)*limit, false)

	searchResults, err := b.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		b.logger.Error("Search failed", "error", err)
		return nil, fmt.Errorf("search failed: %w", err)
	}

	ids := make([]int64, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			b.logger.Warn("Skipping malformed document id", "id", hit.ID)
			continue
		}
		ids = append(ids, id)
	}

	total := int(searchResults.Total)
	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}

	b.logger.Debug("Search completed",
		"query", q.Query,
		"results", total,
	)

	return &SearchResult{
		IDs:        ids,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		QueryTime:  time.Since(startTime).Milliseconds(),
	}, nil
}

// buildSearchQuery builds a Bleve query from search parameters
func buildSearchQuery(q *SearchQuery) query.Query {
	var queries []query.Query

	if q.Query != "" {
		title := bleve.NewMatchQuery(q.Query)
		title.SetField("title")
		title.SetBoost(2)

		content := bleve.NewMatchQuery(q.Query)
		content.SetField("content")

		tags := bleve.NewMatchQuery(q.Query)
		tags.SetField("tags")

		queries = append(queries, bleve.NewDisjunctionQuery(title, content, tags))
	}

	if q.CategoryID > 0 {
		id := float64(q.CategoryID)
		inclusive := true
		categoryQuery := bleve.NewNumericRangeInclusiveQuery(&id, &id, &inclusive, &inclusive)
		categoryQuery.SetField("category_id")
		queries = append(queries, categoryQuery)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

// Count returns the number of documents in the index
func (b *BleveIndex) Count() (uint64, error) {
	count, err := b.index.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}
	return count, nil
}
