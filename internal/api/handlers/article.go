package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/newsdesk/internal/api/middleware"
	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/listing"
	"github.com/amiyamandal-dev/newsdesk/internal/service"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
	"github.com/amiyamandal-dev/newsdesk/pkg/response"
)

// ArticleDetail is an article with its reaction counts
type ArticleDetail struct {
	Article   *domain.Article          `json:"article"`
	Reactions *domain.ArticleReactions `json:"reactions"`
}

// ArticleHandler handles article-related requests
type ArticleHandler struct {
	articleService  *service.ArticleService
	reactionService *service.ReactionService
	listing         *listing.Resolver
	logger          *logger.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(
	articleService *service.ArticleService,
	reactionService *service.ReactionService,
	resolver *listing.Resolver,
	logger *logger.Logger,
) *ArticleHandler {
	return &ArticleHandler{
		articleService:  articleService,
		reactionService: reactionService,
		listing:         resolver,
		logger:          logger.WithComponent("article-handler"),
	}
}

// List retrieves a page of articles. category, tag, q and favorites=1
// narrow the listing; sort, order and page follow the catalog contract.
func (h *ArticleHandler) List(c *gin.Context) {
	parser := NewQueryParamParser(c)

	filter := listing.FilterParams{
		CategoryID: parser.OptionalID("category"),
		TagID:      parser.OptionalID("tag"),
		Query:      parser.String("q", ""),
	}
	if parser.String("favorites", "") == "1" {
		filter.FavoritedBy = middleware.GetVisitor(c)
	}

	if err := parser.Error(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := h.listing.List(c.Request.Context(), Listing(c, filter))
	if err != nil {
		h.handleError(c, err, "Failed to list articles")
		return
	}

	c.Header("X-Page-Clamp", page.Clamp.String())
	response.Paginated(c, page.Articles, page.Number, page.PageSize, page.Total)
}

// Get retrieves an article by id and counts the view
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.NotFound(c, "Article not found")
		return
	}

	ctx := c.Request.Context()
	article, err := h.articleService.GetDetailByID(ctx, id)
	if err != nil {
		h.handleError(c, err, "Failed to retrieve article")
		return
	}

	reactions, err := h.reactionService.State(ctx, id, middleware.GetVisitor(c))
	if err != nil {
		h.handleError(c, err, "Failed to retrieve article")
		return
	}

	response.Success(c, ArticleDetail{Article: article, Reactions: reactions})
}

// Create submits a new article
func (h *ArticleHandler) Create(c *gin.Context) {
	var form service.ArticleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	article, fieldErrors, err := h.articleService.Submit(c.Request.Context(), form)
	if err != nil {
		h.handleError(c, err, "Failed to create article")
		return
	}
	if len(fieldErrors) > 0 {
		response.ValidationFailed(c, fieldErrors)
		return
	}

	response.Created(c, article)
}

// Like toggles the visitor's like
func (h *ArticleHandler) Like(c *gin.Context) {
	h.toggle(c, domain.ReactionLike)
}

// Favorite toggles the visitor's favorite
func (h *ArticleHandler) Favorite(c *gin.Context) {
	h.toggle(c, domain.ReactionFavorite)
}

func (h *ArticleHandler) toggle(c *gin.Context, kind domain.ReactionKind) {
	id, ok := PathID(c, "id")
	if !ok {
		response.NotFound(c, "Article not found")
		return
	}

	state, err := h.reactionService.Toggle(c.Request.Context(), kind, id, middleware.GetVisitor(c))
	if err != nil {
		h.handleError(c, err, "Failed to update article")
		return
	}

	response.Success(c, state)
}

// Categories lists all categories
func (h *ArticleHandler) Categories(c *gin.Context) {
	categories, err := h.articleService.Categories(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "Failed to list categories")
		return
	}
	response.Success(c, categories)
}

// Tags lists all tags
func (h *ArticleHandler) Tags(c *gin.Context) {
	tags, err := h.articleService.Tags(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "Failed to list tags")
		return
	}
	response.Success(c, tags)
}

// handleError maps domain errors to responses; anything else is a 500
func (h *ArticleHandler) handleError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrArticleNotFound):
		response.NotFound(c, "Article not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		response.NotFound(c, "Category not found")
	case errors.Is(err, domain.ErrTagNotFound):
		response.NotFound(c, "Tag not found")
	case errors.Is(err, domain.ErrMissingVisitor):
		response.BadRequest(c, "Client address unknown")
	default:
		h.logger.Error(message,
			"request_id", middleware.RequestID(c),
			"path", c.Request.URL.Path,
			"error", err,
		)
		response.InternalServerError(c, message)
	}
}
