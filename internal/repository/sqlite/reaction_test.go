package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
)

func TestReactionRepo_Toggle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	category, err := NewCategoryRepo(db).Create(ctx, "Local")
	require.NoError(t, err)
	article := seedArticle(t, NewArticleRepo(db), category.ID, "x", "X", "y", 0, time.Now().UTC())
	repo := NewReactionRepo(db)

	alice := domain.NewVisitorID("192.0.2.1")
	bob := domain.NewVisitorID("192.0.2.2")

	for _, kind := range []domain.ReactionKind{domain.ReactionLike, domain.ReactionFavorite} {
		t.Run(string(kind), func(t *testing.T) {
			active, err := repo.Toggle(ctx, kind, article.ID, alice)
			require.NoError(t, err)
			assert.True(t, active)

			active, err = repo.Toggle(ctx, kind, article.ID, bob)
			require.NoError(t, err)
			assert.True(t, active)

			count, err := repo.Count(ctx, kind, article.ID)
			require.NoError(t, err)
			assert.Equal(t, 2, count)

			active, err = repo.Toggle(ctx, kind, article.ID, alice)
			require.NoError(t, err)
			assert.False(t, active)

			exists, err := repo.Exists(ctx, kind, article.ID, alice)
			require.NoError(t, err)
			assert.False(t, exists)

			exists, err = repo.Exists(ctx, kind, article.ID, bob)
			require.NoError(t, err)
			assert.True(t, exists)

			count, err = repo.Count(ctx, kind, article.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}

	t.Run("likes and favorites are independent", func(t *testing.T) {
		liked, err := repo.Exists(ctx, domain.ReactionLike, article.ID, bob)
		require.NoError(t, err)
		favorited, err := repo.Exists(ctx, domain.ReactionFavorite, article.ID, bob)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.True(t, favorited)
	})

	_, err = repo.Toggle(ctx, domain.ReactionKind("bogus"), article.ID, alice)
	assert.ErrorIs(t, err, domain.ErrInvalidReaction)
}

func TestTaxonomyRepos(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryRepo(db)
	tags := NewTagRepo(db)

	_, err := categories.Create(ctx, "Economy")
	require.NoError(t, err)
	_, err = categories.Create(ctx, "Economy")
	assert.ErrorIs(t, err, domain.ErrCategoryExists)

	_, err = categories.Create(ctx, "Arts")
	require.NoError(t, err)
	list, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Arts", list[0].Name)

	_, err = categories.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	tag, err := tags.Create(ctx, "budget")
	require.NoError(t, err)
	_, err = tags.Create(ctx, "budget")
	assert.ErrorIs(t, err, domain.ErrTagExists)

	got, err := tags.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "budget", got.Name)

	_, err = tags.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}
