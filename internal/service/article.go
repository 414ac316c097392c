package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gosimple/slug"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/metrics"
	"github.com/amiyamandal-dev/newsdesk/internal/repository"
	"github.com/amiyamandal-dev/newsdesk/internal/validator"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
)

const (
	// maxSlugAttempts bounds retries when a concurrent submission takes the slug
	maxSlugAttempts = 3

	invalidChoice = "Select a valid choice. That choice is not one of the available choices."
)

// SearchIndexer defines the interface for search indexing
type SearchIndexer interface {
	IndexArticle(ctx context.Context, article *domain.Article) error
}

// ArticleForm is a raw article submission
type ArticleForm struct {
	Title    string `form:"title" json:"title" validate:"required,max=255"`
	Content  string `form:"content" json:"content" validate:"required,max=5000"`
	Category string `form:"category" json:"category" validate:"required"`
}

// ArticleService handles article-related business logic
type ArticleService struct {
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	indexer      SearchIndexer
	validator    *validator.Validator
	now          func() time.Time
	logger       *logger.Logger
}

// NewArticleService creates a new article service. indexer may be nil
// when search is disabled.
func NewArticleService(
	articleRepo repository.ArticleRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	indexer SearchIndexer,
	logger *logger.Logger,
) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		indexer:      indexer,
		validator:    validator.New(),
		now:          time.Now,
		logger:       logger.WithComponent("article-service"),
	}
}

// GetDetailByID counts a view and returns the article
func (s *ArticleService) GetDetailByID(ctx context.Context, id int64) (*domain.Article, error) {
	if err := s.articleRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(ctx, id)
}

// GetDetailBySlug counts a view and returns the article
func (s *ArticleService) GetDetailBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	id, err := s.articleRepo.IDBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.GetDetailByID(ctx, id)
}

// Submit validates and persists a new article. Field errors are returned
// separately from failures so the form can be re-rendered with them.
func (s *ArticleService) Submit(ctx context.Context, form ArticleForm) (*domain.Article, validator.FieldErrors, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.Content = strings.TrimSpace(form.Content)
	form.Category = strings.TrimSpace(form.Category)

	fieldErrors := s.validator.Validate(form)
	if fieldErrors == nil {
		fieldErrors = validator.FieldErrors{}
	}

	var category *domain.Category
	if _, failed := fieldErrors["category"]; !failed {
		var err error
		category, err = s.lookupCategory(ctx, form.Category)
		if errors.Is(err, domain.ErrCategoryNotFound) {
			fieldErrors.Add("category", invalidChoice)
		} else if err != nil {
			return nil, nil, err
		}
	}

	if len(fieldErrors) > 0 {
		metrics.RecordSubmission("invalid")
		return nil, fieldErrors, nil
	}

	article := &domain.Article{
		Title:           form.Title,
		Content:         form.Content,
		CategoryID:      category.ID,
		Category:        category,
		Tags:            []domain.Tag{},
		PublicationDate: s.now().UTC(),
		Views:           0,
	}

	if err := s.create(ctx, article); err != nil {
		metrics.RecordSubmission("error")
		s.logger.Error("Failed to create article", "error", err)
		return nil, nil, err
	}
	metrics.RecordSubmission("created")

	if s.indexer != nil {
		if err := s.indexer.IndexArticle(ctx, article); err != nil {
			s.logger.Warn("Failed to index article", "article_id", article.ID, "error", err)
		}
	}

	s.logger.Info("Article created", "article_id", article.ID, "slug", article.Slug)
	return article, nil, nil
}

// create assigns a free slug and inserts the article, retrying if another
// submission claims the same slug in between
func (s *ArticleService) create(ctx context.Context, article *domain.Article) error {
	var err error
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		article.Slug, err = s.uniqueSlug(ctx, article.Title)
		if err != nil {
			return err
		}
		err = s.articleRepo.Create(ctx, article)
		if !errors.Is(err, domain.ErrSlugExists) {
			return err
		}
	}
	return err
}

func (s *ArticleService) lookupCategory(ctx context.Context, raw string) (*domain.Category, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.ErrCategoryNotFound
	}
	return s.categoryRepo.GetByID(ctx, id)
}

// uniqueSlug derives a slug from title and suffixes -2, -3... until free
func (s *ArticleService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := Slugify(title)
	candidate := base
	for n := 2; ; n++ {
		taken, err := s.articleRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

// Slugify transliterates title into a URL slug. Purely numeric slugs are
// prefixed so they cannot collide with article ids in detail URLs.
func Slugify(title string) string {
	s := slug.Make(title)
	if s == "" {
		return "article"
	}
	if strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		return "article-" + s
	}
	return s
}

// Categories returns every category, for forms and filters
func (s *ArticleService) Categories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Tags returns every tag
func (s *ArticleService) Tags(ctx context.Context) ([]*domain.Tag, error) {
	return s.tagRepo.List(ctx)
}

// Get returns an article without counting a view
func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	return s.articleRepo.GetByID(ctx, id)
}

// CreateCategory adds a category
func (s *ArticleService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is empty", domain.ErrValidationFailed)
	}
	category, err := s.categoryRepo.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Category created", "category_id", category.ID, "name", name)
	return category, nil
}

// CreateTag adds a tag
func (s *ArticleService) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is empty", domain.ErrValidationFailed)
	}
	tag, err := s.tagRepo.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Tag created", "tag_id", tag.ID, "name", name)
	return tag, nil
}

// AttachTag adds a tag to an article and refreshes its search document
func (s *ArticleService) AttachTag(ctx context.Context, articleID, tagID int64) (*domain.Article, error) {
	if err := s.articleRepo.AttachTag(ctx, articleID, tagID); err != nil {
		return nil, err
	}

	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if s.indexer != nil {
		if err := s.indexer.IndexArticle(ctx, article); err != nil {
			s.logger.Warn("Failed to reindex article", "article_id", articleID, "error", err)
		}
	}
	return article, nil
}
