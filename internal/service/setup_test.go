package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/repository/sqlite"
	"github.com/amiyamandal-dev/newsdesk/internal/search"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
)

type testEnv struct {
	DB              *sqlite.DB
	ArticleRepo     *sqlite.ArticleRepo
	CategoryRepo    *sqlite.CategoryRepo
	TagRepo         *sqlite.TagRepo
	ReactionRepo    *sqlite.ReactionRepo
	Index           *search.BleveIndex
	ArticleService  *ArticleService
	ReactionService *ReactionService
	SearchService   *SearchService
	Category        *domain.Category
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "service.db"), 4, 2)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	index, err := search.OpenInMemory(logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })

	env := &testEnv{
		DB:           db,
		ArticleRepo:  sqlite.NewArticleRepo(db),
		CategoryRepo: sqlite.NewCategoryRepo(db),
		TagRepo:      sqlite.NewTagRepo(db),
		ReactionRepo: sqlite.NewReactionRepo(db),
		Index:        index,
	}
	env.ArticleService = NewArticleService(env.ArticleRepo, env.CategoryRepo, env.TagRepo, index, logger.Nop())
	env.ReactionService = NewReactionService(env.ArticleRepo, env.ReactionRepo, logger.Nop())
	env.SearchService = NewSearchService(index, env.ArticleRepo, logger.Nop())

	env.Category, err = env.CategoryRepo.Create(context.Background(), "Politics")
	require.NoError(t, err)
	return env
}

// failingIndexer records calls and always fails
type failingIndexer struct {
	mu    sync.Mutex
	calls int
}

func (f *failingIndexer) IndexArticle(ctx context.Context, article *domain.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("index offline")
}
