package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
)

// reactionTable maps a reaction kind onto its table
func reactionTable(kind domain.ReactionKind) (string, error) {
	switch kind {
	case domain.ReactionLike:
		return "likes", nil
	case domain.ReactionFavorite:
		return "favorites", nil
	default:
		return "", domain.ErrInvalidReaction
	}
}

// ReactionRepo implements the ReactionRepository interface using SQLite
type ReactionRepo struct {
	db *DB
}

// NewReactionRepo creates a new reaction repository
func NewReactionRepo(db *DB) *ReactionRepo {
	return &ReactionRepo{db: db}
}

// Toggle flips presence of the (article, visitor) record. Each statement
// is atomic on its own; two racing toggles may both insert or both delete.
func (r *ReactionRepo) Toggle(ctx context.Context, kind domain.ReactionKind, articleID int64, visitor domain.VisitorID) (bool, error) {
	table, err := reactionTable(kind)
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE article_id = ? AND visitor = ?`, table),
		articleID, visitor.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if removed > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (article_id, visitor, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`, table),
		articleID, visitor.String(), time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return true, nil
}

// Exists reports whether the visitor has a record for the article
func (r *ReactionRepo) Exists(ctx context.Context, kind domain.ReactionKind, articleID int64, visitor domain.VisitorID) (bool, error) {
	table, err := reactionTable(kind)
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE article_id = ? AND visitor = ?)`, table),
		articleID, visitor.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", kind, err)
	}
	return exists, nil
}

// Count returns how many records of kind the article has
func (r *ReactionRepo) Count(ctx context.Context, kind domain.ReactionKind, articleID int64) (int, error) {
	table, err := reactionTable(kind)
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE article_id = ?`, table), articleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", kind, err)
	}
	return count, nil
}
