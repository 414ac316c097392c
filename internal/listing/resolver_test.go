package listing

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/repository/sqlite"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
)

type fixture struct {
	resolver   *Resolver
	articles   *sqlite.ArticleRepo
	categories *sqlite.CategoryRepo
	tags       *sqlite.TagRepo
	category   *domain.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "listing.db"), 4, 2)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		articles:   sqlite.NewArticleRepo(db),
		categories: sqlite.NewCategoryRepo(db),
		tags:       sqlite.NewTagRepo(db),
	}
	f.resolver = NewResolver(f.articles, f.categories, f.tags, logger.Nop())

	f.category, err = f.categories.Create(context.Background(), "News")
	require.NoError(t, err)
	return f
}

func (f *fixture) add(t *testing.T, n int, views func(i int) int64) []*domain.Article {
	t.Helper()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := make([]*domain.Article, 0, n)
	for i := 0; i < n; i++ {
		a := &domain.Article{
			Slug:            fmt.Sprintf("article-%d", i),
			Title:           fmt.Sprintf("Article %d", i),
			Content:         "content",
			CategoryID:      f.category.ID,
			PublicationDate: base.Add(time.Duration(i) * time.Minute),
			Views:           views(i),
		}
		require.NoError(t, f.articles.Create(context.Background(), a))
		out = append(out, a)
	}
	return out
}

func int64Ptr(v int64) *int64 { return &v }

func TestResolver_SecondPageByViewsAscending(t *testing.T) {
	f := newFixture(t)
	// views: 16 articles, two share the maximum so the id tiebreak decides
	created := f.add(t, 16, func(i int) int64 {
		if i == 3 || i == 9 {
			return 100
		}
		return int64(i)
	})

	page, err := f.resolver.List(context.Background(), ListParams{Sort: "views", Order: "asc", Page: "2"})
	require.NoError(t, err)

	assert.Equal(t, 16, page.Total)
	assert.Equal(t, 2, page.NumPages)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, Exact, page.Clamp)
	require.Len(t, page.Articles, 1)
	assert.Equal(t, created[9].ID, page.Articles[0].ID)
	assert.True(t, page.HasPrevious())
	assert.False(t, page.HasNext())
	assert.Equal(t, 1, page.PreviousNumber())
}

func TestResolver_PageClamping(t *testing.T) {
	f := newFixture(t)
	f.add(t, 31, func(i int) int64 { return 0 })

	page, err := f.resolver.List(context.Background(), ListParams{Page: "50"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, ClampedLast, page.Clamp)
	assert.Len(t, page.Articles, 1)

	page, err = f.resolver.List(context.Background(), ListParams{Page: "two"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, ClampedFirst, page.Clamp)
	assert.Len(t, page.Articles, PageSize)
	// newest first by default
	assert.Equal(t, "article-30", page.Articles[0].Slug)
	assert.Equal(t, domain.DefaultOrdering, page.Ordering)
}

func TestResolver_EmptyListing(t *testing.T) {
	f := newFixture(t)

	page, err := f.resolver.List(context.Background(), ListParams{Page: "3"})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
	assert.Empty(t, page.Articles)
	assert.NotNil(t, page.Articles)
}

func TestResolver_FilterNotFound(t *testing.T) {
	f := newFixture(t)
	f.add(t, 2, func(i int) int64 { return 0 })

	_, err := f.resolver.List(context.Background(), ListParams{
		Filter: FilterParams{CategoryID: int64Ptr(404)},
	})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	assert.True(t, domain.IsNotFound(err))

	_, err = f.resolver.List(context.Background(), ListParams{
		Filter: FilterParams{TagID: int64Ptr(0)},
	})
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestResolver_CategoryTagAndQuery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.add(t, 3, func(i int) int64 { return 0 })

	other, err := f.categories.Create(ctx, "Other")
	require.NoError(t, err)
	tag, err := f.tags.Create(ctx, "breaking")
	require.NoError(t, err)
	require.NoError(t, f.articles.AttachTag(ctx, created[1].ID, tag.ID))

	page, err := f.resolver.List(ctx, ListParams{Filter: FilterParams{CategoryID: int64Ptr(f.category.ID)}})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.NotNil(t, page.Category)
	assert.Equal(t, "News", page.Category.Name)

	page, err = f.resolver.List(ctx, ListParams{Filter: FilterParams{CategoryID: int64Ptr(other.ID)}})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)

	page, err = f.resolver.List(ctx, ListParams{Filter: FilterParams{TagID: int64Ptr(tag.ID)}})
	require.NoError(t, err)
	require.Len(t, page.Articles, 1)
	assert.Equal(t, created[1].ID, page.Articles[0].ID)
	assert.Equal(t, []domain.Tag{*tag}, page.Articles[0].Tags)
	assert.Equal(t, "breaking", page.Tag.Name)

	page, err = f.resolver.List(ctx, ListParams{Filter: FilterParams{Query: "  ARTICLE 2 "}})
	require.NoError(t, err)
	assert.Equal(t, "ARTICLE 2", page.Query)
	require.Len(t, page.Articles, 1)
	assert.Equal(t, created[2].ID, page.Articles[0].ID)

	page, err = f.resolver.List(ctx, ListParams{Filter: FilterParams{Query: "   "}})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
}
