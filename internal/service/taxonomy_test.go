package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/search"
)

func TestArticleService_CreateTaxonomy(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	category, err := env.ArticleService.CreateCategory(ctx, "  Sport ")
	require.NoError(t, err)
	assert.Equal(t, "Sport", category.Name)

	_, err = env.ArticleService.CreateCategory(ctx, "Sport")
	assert.ErrorIs(t, err, domain.ErrCategoryExists)

	_, err = env.ArticleService.CreateCategory(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	tag, err := env.ArticleService.CreateTag(ctx, "economy")
	require.NoError(t, err)
	assert.NotZero(t, tag.ID)

	_, err = env.ArticleService.CreateTag(ctx, "economy")
	assert.ErrorIs(t, err, domain.ErrTagExists)

	_, err = env.ArticleService.CreateTag(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	categories, err := env.ArticleService.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	tags, err := env.ArticleService.Tags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestArticleService_AttachTag(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	article, _, err := env.ArticleService.Submit(ctx, ArticleForm{
		Title:    "Rates held",
		Content:  "The central bank kept rates unchanged.",
		Category: categoryRef(env.Category),
	})
	require.NoError(t, err)

	tag, err := env.ArticleService.CreateTag(ctx, "economy")
	require.NoError(t, err)

	updated, err := env.ArticleService.AttachTag(ctx, article.ID, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{tag.ID}, updated.TagIDs())

	// attaching twice is a no-op
	updated, err = env.ArticleService.AttachTag(ctx, article.ID, tag.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Tags, 1)

	// the refreshed document matches on the tag name
	result, err := env.Index.Search(ctx, &search.SearchQuery{Query: "economy"})
	require.NoError(t, err)
	assert.Equal(t, []int64{article.ID}, result.IDs)

	_, err = env.ArticleService.AttachTag(ctx, article.ID+100, tag.ID)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)

	_, err = env.ArticleService.AttachTag(ctx, article.ID, tag.ID+100)
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}
