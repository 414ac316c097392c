package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
)

func TestReactionService_Toggle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	article, _, err := env.ArticleService.Submit(ctx, ArticleForm{
		Title:    "Match report",
		Content:  "A draw.",
		Category: categoryRef(env.Category),
	})
	require.NoError(t, err)

	visitor := domain.NewVisitorID("198.51.100.7")

	state, err := env.ReactionService.Toggle(ctx, domain.ReactionLike, article.ID, visitor)
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionState{Kind: domain.ReactionLike, Active: true, Count: 1}, *state)

	reactions, err := env.ReactionService.State(ctx, article.ID, visitor)
	require.NoError(t, err)
	assert.Equal(t, domain.ArticleReactions{Likes: 1, Liked: true}, *reactions)

	state, err = env.ReactionService.Toggle(ctx, domain.ReactionLike, article.ID, visitor)
	require.NoError(t, err)
	assert.False(t, state.Active)
	assert.Equal(t, 0, state.Count)

	_, err = env.ReactionService.Toggle(ctx, domain.ReactionFavorite, article.ID, visitor)
	require.NoError(t, err)
	reactions, err = env.ReactionService.State(ctx, article.ID, visitor)
	require.NoError(t, err)
	assert.Equal(t, domain.ArticleReactions{Favorites: 1, Favorited: true}, *reactions)

	// anonymous state still carries counts
	reactions, err = env.ReactionService.State(ctx, article.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ArticleReactions{Favorites: 1}, *reactions)
}

func TestReactionService_ToggleErrors(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	visitor := domain.NewVisitorID("198.51.100.7")

	_, err := env.ReactionService.Toggle(ctx, domain.ReactionLike, 42, visitor)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)

	_, err = env.ReactionService.Toggle(ctx, "bookmark", 42, visitor)
	assert.ErrorIs(t, err, domain.ErrInvalidReaction)

	_, err = env.ReactionService.Toggle(ctx, domain.ReactionLike, 42, domain.NewVisitorID("  "))
	assert.ErrorIs(t, err, domain.ErrMissingVisitor)
}
