package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "news.db"), 4, 2)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedArticle(t *testing.T, repo *ArticleRepo, categoryID int64, slug, title, content string, views int64, published time.Time) *domain.Article {
	t.Helper()
	article := &domain.Article{
		Slug:            slug,
		Title:           title,
		Content:         content,
		CategoryID:      categoryID,
		PublicationDate: published,
		Views:           views,
	}
	require.NoError(t, repo.Create(context.Background(), article))
	return article
}

func TestArticleRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryRepo(db)
	tags := NewTagRepo(db)
	articles := NewArticleRepo(db)

	politics, err := categories.Create(ctx, "Politics")
	require.NoError(t, err)
	tag, err := tags.Create(ctx, "elections")
	require.NoError(t, err)

	created := seedArticle(t, articles, politics.ID, "first-vote", "First vote", "body", 0, time.Now().UTC())
	assert.NotZero(t, created.ID)
	require.NoError(t, articles.AttachTag(ctx, created.ID, tag.ID))
	require.NoError(t, articles.AttachTag(ctx, created.ID, tag.ID), "attaching twice is a no-op")

	got, err := articles.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "First vote", got.Title)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Politics", got.Category.Name)
	assert.Equal(t, []domain.Tag{{ID: tag.ID, Name: "elections"}}, got.Tags)

	bySlug, err := articles.GetBySlug(ctx, "first-vote")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = articles.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
	_, err = articles.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)

	exists, err := articles.SlugExists(ctx, "first-vote")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.ErrorIs(t, articles.AttachTag(ctx, created.ID, 9999), domain.ErrTagNotFound)
	assert.ErrorIs(t, articles.AttachTag(ctx, 9999, tag.ID), domain.ErrArticleNotFound)
}

func TestArticleRepo_IncrementViews(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	category, err := NewCategoryRepo(db).Create(ctx, "World")
	require.NoError(t, err)
	articles := NewArticleRepo(db)

	article := seedArticle(t, articles, category.ID, "a", "A", "b", 3, time.Now().UTC())

	require.NoError(t, articles.IncrementViews(ctx, article.ID))
	require.NoError(t, articles.IncrementViews(ctx, article.ID))

	got, err := articles.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Views)

	assert.ErrorIs(t, articles.IncrementViews(ctx, 777), domain.ErrArticleNotFound)
}

func TestArticleRepo_ListOrderingAndWindow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	category, err := NewCategoryRepo(db).Create(ctx, "Sport")
	require.NoError(t, err)
	articles := NewArticleRepo(db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		// views tie in pairs so the id tiebreak is exercised
		seedArticle(t, articles, category.ID, fmt.Sprintf("s-%d", i), fmt.Sprintf("T%d", i), "x", int64(i/2), base.Add(time.Duration(i)*time.Hour))
	}

	asc, err := articles.List(ctx, domain.ArticleFilter{}, domain.Ordering{Field: domain.SortByViews, Ascending: true}, 0, 10)
	require.NoError(t, err)
	require.Len(t, asc, 5)
	assert.Equal(t, []string{"s-0", "s-1", "s-2", "s-3", "s-4"}, slugs(asc))

	desc, err := articles.List(ctx, domain.ArticleFilter{}, domain.DefaultOrdering, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-4", "s-3", "s-2", "s-1", "s-0"}, slugs(desc))

	window, err := articles.List(ctx, domain.ArticleFilter{}, domain.Ordering{Field: domain.SortByPublicationDate, Ascending: true}, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-3", "s-4"}, slugs(window))
}

func TestArticleRepo_Filters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryRepo(db)
	tags := NewTagRepo(db)
	articles := NewArticleRepo(db)
	reactions := NewReactionRepo(db)

	science, err := categories.Create(ctx, "Science")
	require.NoError(t, err)
	culture, err := categories.Create(ctx, "Culture")
	require.NoError(t, err)
	space, err := tags.Create(ctx, "space")
	require.NoError(t, err)

	now := time.Now().UTC()
	both := seedArticle(t, articles, science.ID, "both", "Марс рядом", "Новости про МАРС", 0, now)
	titleOnly := seedArticle(t, articles, science.ID, "title-only", "Mars rover", "nothing here", 0, now)
	contentOnly := seedArticle(t, articles, culture.ID, "content-only", "Opera", "a mars themed opera", 0, now)
	seedArticle(t, articles, culture.ID, "none", "Ballet", "dance 100%", 0, now)

	require.NoError(t, articles.AttachTag(ctx, both.ID, space.ID))
	require.NoError(t, articles.AttachTag(ctx, contentOnly.ID, space.ID))

	tests := []struct {
		name   string
		filter domain.ArticleFilter
		want   []string
	}{
		{"no filter", domain.ArticleFilter{}, []string{"both", "title-only", "content-only", "none"}},
		{"category", domain.ArticleFilter{CategoryID: culture.ID}, []string{"content-only", "none"}},
		{"tag", domain.ArticleFilter{TagID: space.ID}, []string{"both", "content-only"}},
		{"ascii query any case", domain.ArticleFilter{Query: "MaRs"}, []string{"title-only", "content-only"}},
		{"cyrillic query matched once", domain.ArticleFilter{Query: "марс"}, []string{"both"}},
		{"percent is literal", domain.ArticleFilter{Query: "100%"}, []string{"none"}},
		{"underscore is literal", domain.ArticleFilter{Query: "_"}, nil},
		{"composed", domain.ArticleFilter{TagID: space.ID, CategoryID: science.ID}, []string{"both"}},
	}

	order := domain.Ordering{Field: domain.SortByPublicationDate, Ascending: true}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := articles.List(ctx, tt.filter, order, 0, 50)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, slugs(got))

			total, err := articles.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), total)
		})
	}

	visitor := domain.NewVisitorID("10.0.0.1")
	_, err = reactions.Toggle(ctx, domain.ReactionFavorite, titleOnly.ID, visitor)
	require.NoError(t, err)

	favorites, err := articles.List(ctx, domain.ArticleFilter{FavoritedBy: visitor}, order, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"title-only"}, slugs(favorites))
}

func TestArticleRepo_Walk(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	category, err := NewCategoryRepo(db).Create(ctx, "Tech")
	require.NoError(t, err)
	articles := NewArticleRepo(db)

	for i := 0; i < walkBatchSize+3; i++ {
		seedArticle(t, articles, category.ID, fmt.Sprintf("w-%d", i), "t", "c", 0, time.Now().UTC())
	}

	var seen int
	var lastID int64
	err = articles.Walk(ctx, func(a *domain.Article) error {
		assert.Greater(t, a.ID, lastID)
		lastID = a.ID
		seen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, walkBatchSize+3, seen)
}

func slugs(articles []*domain.Article) []string {
	var out []string
	for _, a := range articles {
		out = append(out, a.Slug)
	}
	return out
}
