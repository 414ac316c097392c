package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
)

// articleColumns defines the standard SELECT columns for articles joined with their category
const articleColumns = `a.id, a.slug, a.title, a.content, a.category_id, a.publication_date, a.views, c.id, c.name`

const articleFrom = `FROM articles a JOIN categories c ON c.id = a.category_id`

// walkBatchSize bounds the number of articles Walk holds in memory
const walkBatchSize = 200

// scanner interface for scanning rows
type scanner interface {
	Scan(dest ...any) error
}

// scanArticle scans a single row into an Article struct
func scanArticle(row scanner) (*domain.Article, error) {
	var article domain.Article
	var category domain.Category

	err := row.Scan(
		&article.ID,
		&article.Slug,
		&article.Title,
		&article.Content,
		&article.CategoryID,
		&article.PublicationDate,
		&article.Views,
		&category.ID,
		&category.Name,
	)
	if err != nil {
		return nil, err
	}

	article.Category = &category
	article.Tags = []domain.Tag{}
	return &article, nil
}

// scanArticles scans multiple rows into an Article slice
func scanArticles(rows *sql.Rows) ([]*domain.Article, error) {
	articles := []*domain.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}
	return articles, nil
}

// likeEscaper makes LIKE wildcards in user input match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWhere turns a filter into a WHERE clause; all predicates are ANDed
func buildWhere(filter domain.ArticleFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.CategoryID != 0 {
		conditions = append(conditions, "a.category_id = ?")
		args = append(args, filter.CategoryID)
	}

	if filter.TagID != 0 {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM article_tags at WHERE at.article_id = a.id AND at.tag_id = ?)")
		args = append(args, filter.TagID)
	}

	if filter.Query != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Query)) + "%"
		conditions = append(conditions,
			`(casefold(a.title) LIKE ? ESCAPE '\' OR casefold(a.content) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	if !filter.FavoritedBy.IsZero() {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM favorites fv WHERE fv.article_id = a.id AND fv.visitor = ?)")
		args = append(args, filter.FavoritedBy.String())
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause maps an ordering onto whitelisted columns
func orderClause(order domain.Ordering) string {
	column := "a.publication_date"
	if order.Field == domain.SortByViews {
		column = "a.views"
	}
	direction := "DESC"
	if order.Ascending {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, a.id %s", column, direction, direction)
}

// ArticleRepo implements the ArticleRepository interface using SQLite
type ArticleRepo struct {
	db *DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

// Create creates a new article
func (r *ArticleRepo) Create(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (slug, title, content, category_id, publication_date, views)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		article.Slug,
		article.Title,
		article.Content,
		article.CategoryID,
		article.PublicationDate,
		article.Views,
	)
	if isUniqueViolation(err) {
		return domain.ErrSlugExists
	}
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get article id: %w", err)
	}
	article.ID = id

	return nil
}

// GetByID retrieves an article by ID
func (r *ArticleRepo) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE a.id = ?`, articleColumns, articleFrom)
	return r.getOne(ctx, query, id)
}

// GetBySlug retrieves an article by slug
func (r *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE a.slug = ?`, articleColumns, articleFrom)
	return r.getOne(ctx, query, slug)
}

func (r *ArticleRepo) getOne(ctx context.Context, query string, arg any) (*domain.Article, error) {
	article, err := scanArticle(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	if err := r.attachTags(ctx, []*domain.Article{article}); err != nil {
		return nil, err
	}
	return article, nil
}

// IDBySlug resolves a slug to an article id
func (r *ArticleRepo) IDBySlug(ctx context.Context, slug string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM articles WHERE slug = ?`, slug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrArticleNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve slug: %w", err)
	}
	return id, nil
}

// SlugExists reports whether a slug is already taken
func (r *ArticleRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM articles WHERE slug = ?)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// IncrementViews adds one view to the article
func (r *ArticleRepo) IncrementViews(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE articles SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrArticleNotFound
	}

	return nil
}

// Count counts articles matching the filter
func (r *ArticleRepo) Count(ctx context.Context, filter domain.ArticleFilter) (int, error) {
	whereClause, args := buildWhere(filter)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM articles a %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}

	return total, nil
}

// List retrieves a window of articles with filtering and ordering
func (r *ArticleRepo) List(ctx context.Context, filter domain.ArticleFilter, order domain.Ordering, offset, limit int) ([]*domain.Article, error) {
	whereClause, args := buildWhere(filter)

	query := fmt.Sprintf(`SELECT %s %s %s %s LIMIT ? OFFSET ?`,
		articleColumns, articleFrom, whereClause, orderClause(order))
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachTags(ctx, articles); err != nil {
		return nil, err
	}

	return articles, nil
}

// AttachTag adds a tag to an article; attaching twice is a no-op
func (r *ArticleRepo) AttachTag(ctx context.Context, articleID, tagID int64) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM articles WHERE id = ?)`, articleID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check article: %w", err)
	}
	if !exists {
		return domain.ErrArticleNotFound
	}

	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tags WHERE id = ?)`, tagID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check tag: %w", err)
	}
	if !exists {
		return domain.ErrTagNotFound
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO article_tags (article_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		articleID, tagID)
	if err != nil {
		return fmt.Errorf("failed to attach tag: %w", err)
	}
	return nil
}

// Walk visits every article in id order, in batches
func (r *ArticleRepo) Walk(ctx context.Context, fn func(*domain.Article) error) error {
	var lastID int64
	for {
		query := fmt.Sprintf(`SELECT %s %s WHERE a.id > ? ORDER BY a.id ASC LIMIT ?`, articleColumns, articleFrom)

		rows, err := r.db.QueryContext(ctx, query, lastID, walkBatchSize)
		if err != nil {
			return fmt.Errorf("failed to query articles: %w", err)
		}
		batch, err := scanArticles(rows)
		rows.Close()
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		if err := r.attachTags(ctx, batch); err != nil {
			return err
		}
		for _, article := range batch {
			if err := fn(article); err != nil {
				return err
			}
		}
		lastID = batch[len(batch)-1].ID
	}
}

// attachTags loads tags for all given articles with one query
func (r *ArticleRepo) attachTags(ctx context.Context, articles []*domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Article, len(articles))
	placeholders := make([]string, len(articles))
	args := make([]any, len(articles))
	for i, article := range articles {
		byID[article.ID] = article
		placeholders[i] = "?"
		args[i] = article.ID
	}

	query := fmt.Sprintf(`
		SELECT at.article_id, t.id, t.name
		FROM article_tags at JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id IN (%s)
		ORDER BY t.name`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query article tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID int64
		var tag domain.Tag
		if err := rows.Scan(&articleID, &tag.ID, &tag.Name); err != nil {
			return fmt.Errorf("failed to scan article tag: %w", err)
		}
		if article, ok := byID[articleID]; ok {
			article.Tags = append(article.Tags, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating article tags: %w", err)
	}

	return nil
}
