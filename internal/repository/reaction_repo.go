package repository

import (
	"context"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
)

// ReactionRepository persists likes and favorites
type ReactionRepository interface {
	// Toggle deletes the (article, visitor) record if present, otherwise
	// creates it. It returns whether the record exists afterwards.
	Toggle(ctx context.Context, kind domain.ReactionKind, articleID int64, visitor domain.VisitorID) (bool, error)

	// Exists reports whether the visitor has reacted to the article
	Exists(ctx context.Context, kind domain.ReactionKind, articleID int64, visitor domain.VisitorID) (bool, error)

	// Count returns the number of records of kind for the article
	Count(ctx context.Context, kind domain.ReactionKind, articleID int64) (int, error)
}
