package search

import (
	"context"
	"fmt"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
)

// ArticleWalker visits every stored article
type ArticleWalker interface {
	Walk(ctx context.Context, fn func(*domain.Article) error) error
}

// Reindex feeds every stored article into idx and returns how many were indexed
func Reindex(ctx context.Context, idx Index, articles ArticleWalker) (int, error) {
	indexed := 0
	err := articles.Walk(ctx, func(article *domain.Article) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := idx.IndexArticle(ctx, article); err != nil {
			return err
		}
		indexed++
		return nil
	})
	if err != nil {
		return indexed, fmt.Errorf("reindex stopped after %d articles: %w", indexed, err)
	}
	return indexed, nil
}
