package service

import (
	"context"
	"fmt"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/metrics"
	"github.com/amiyamandal-dev/newsdesk/internal/repository"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
)

// ReactionService handles likes and favorites
type ReactionService struct {
	articleRepo  repository.ArticleRepository
	reactionRepo repository.ReactionRepository
	logger       *logger.Logger
}

// NewReactionService creates a new reaction service
func NewReactionService(
	articleRepo repository.ArticleRepository,
	reactionRepo repository.ReactionRepository,
	logger *logger.Logger,
) *ReactionService {
	return &ReactionService{
		articleRepo:  articleRepo,
		reactionRepo: reactionRepo,
		logger:       logger.WithComponent("reaction-service"),
	}
}

// Toggle flips the visitor's like or favorite on an article
func (s *ReactionService) Toggle(ctx context.Context, kind domain.ReactionKind, articleID int64, visitor domain.VisitorID) (*domain.ReactionState, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidReaction
	}
	if visitor.IsZero() {
		return nil, domain.ErrMissingVisitor
	}
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return nil, err
	}

	active, err := s.reactionRepo.Toggle(ctx, kind, articleID, visitor)
	if err != nil {
		s.logger.Error("Failed to toggle reaction", "kind", string(kind), "article_id", articleID, "error", err)
		return nil, fmt.Errorf("toggle %s: %w", kind, err)
	}
	metrics.RecordToggle(string(kind), active)

	count, err := s.reactionRepo.Count(ctx, kind, articleID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Reaction toggled",
		"kind", string(kind),
		"article_id", articleID,
		"active", active,
	)

	return &domain.ReactionState{Kind: kind, Active: active, Count: count}, nil
}

// State returns like and favorite counts plus the visitor's own flags
func (s *ReactionService) State(ctx context.Context, articleID int64, visitor domain.VisitorID) (*domain.ArticleReactions, error) {
	var state domain.ArticleReactions
	var err error

	if state.Likes, err = s.reactionRepo.Count(ctx, domain.ReactionLike, articleID); err != nil {
		return nil, err
	}
	if state.Favorites, err = s.reactionRepo.Count(ctx, domain.ReactionFavorite, articleID); err != nil {
		return nil, err
	}
	if visitor.IsZero() {
		return &state, nil
	}
	if state.Liked, err = s.reactionRepo.Exists(ctx, domain.ReactionLike, articleID, visitor); err != nil {
		return nil, err
	}
	if state.Favorited, err = s.reactionRepo.Exists(ctx, domain.ReactionFavorite, articleID, visitor); err != nil {
		return nil, err
	}
	return &state, nil
}
