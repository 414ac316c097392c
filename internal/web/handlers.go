package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/newsdesk/internal/api/middleware"
	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/listing"
	"github.com/amiyamandal-dev/newsdesk/internal/render"
	"github.com/amiyamandal-dev/newsdesk/internal/service"
	"github.com/amiyamandal-dev/newsdesk/internal/validator"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
)

// latestCount is how many articles the main page shows
const latestCount = 5

// WebHandler handles web UI requests
type WebHandler struct {
	articleService  *service.ArticleService
	reactionService *service.ReactionService
	listing         *listing.Resolver
	renderer        *render.Renderer
	site            *Site
	logger          *logger.Logger
	templates       map[string]*template.Template
}

// NewWebHandler creates a new web handler
func NewWebHandler(
	articleService *service.ArticleService,
	reactionService *service.ReactionService,
	resolver *listing.Resolver,
	site *Site,
	log *logger.Logger,
) (*WebHandler, error) {
	renderer := render.New()

	templates, err := loadTemplates(renderer)
	if err != nil {
		return nil, err
	}

	return &WebHandler{
		articleService:  articleService,
		reactionService: reactionService,
		listing:         resolver,
		renderer:        renderer,
		site:            site,
		logger:          log.WithComponent("web-handler"),
		templates:       templates,
	}, nil
}

// RegisterRoutes mounts the HTML pages on r
func (h *WebHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.IndexPage)
	r.GET("/about/", h.AboutPage)

	news := r.Group("/news")
	{
		news.GET("/catalog/", h.CatalogPage)
		news.GET("/catalog/:ref/", h.ArticlePage)
		news.POST("/catalog/:id/like/", h.Like)
		news.POST("/catalog/:id/favorite/", h.Favorite)
		news.GET("/articles_by_tag/:tag_id", h.TagPage)
		news.GET("/articles_by_category/:category_id", h.CategoryPage)
		news.GET("/search_news", h.SearchPage)
		news.GET("/favorites/", h.FavoritesPage)
		news.GET("/add_article/", h.AddArticlePage)
		news.POST("/add_article/", h.AddArticle)
	}
}

// data returns the values every page needs
func (h *WebHandler) data(c *gin.Context, title string) gin.H {
	return gin.H{
		"Title": title,
		"Site":  h.site,
		"Query": "",
		"URL":   c.Request.URL,
	}
}

// render executes a page template with the base layout
func (h *WebHandler) render(c *gin.Context, status int, page string, data gin.H) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := h.templates[page].ExecuteTemplate(c.Writer, "base.html", data); err != nil {
		h.logger.Error("Template error", "page", page, "request_id", middleware.RequestID(c), "error", err)
	}
}

// NotFound renders the 404 page
func (h *WebHandler) NotFound(c *gin.Context) {
	h.notFound(c, "The page you requested does not exist.")
}

func (h *WebHandler) notFound(c *gin.Context, message string) {
	data := h.data(c, "Not found")
	data["Message"] = message
	h.render(c, http.StatusNotFound, "not_found", data)
}

// fail renders a 404 for lookup errors and a 500 for anything else
func (h *WebHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrArticleNotFound):
		h.notFound(c, "Article not found.")
	case errors.Is(err, domain.ErrCategoryNotFound):
		h.notFound(c, "Category not found.")
	case errors.Is(err, domain.ErrTagNotFound):
		h.notFound(c, "Tag not found.")
	default:
		h.logger.Error("Request failed",
			"request_id", middleware.RequestID(c),
			"path", c.Request.URL.Path,
			"error", err,
		)
		h.render(c, http.StatusInternalServerError, "error", h.data(c, "Error"))
	}
}

// IndexPage renders the main page with the latest articles
func (h *WebHandler) IndexPage(c *gin.Context) {
	page, err := h.listing.List(c.Request.Context(), listing.ListParams{})
	if err != nil {
		h.fail(c, err)
		return
	}

	articles := page.Articles
	if len(articles) > latestCount {
		articles = articles[:latestCount]
	}

	data := h.data(c, "Main")
	data["Articles"] = articles
	data["NewsCount"] = page.Total
	h.render(c, http.StatusOK, "index", data)
}

// AboutPage renders the about page
func (h *WebHandler) AboutPage(c *gin.Context) {
	page, err := h.listing.List(c.Request.Context(), listing.ListParams{})
	if err != nil {
		h.fail(c, err)
		return
	}

	data := h.data(c, "About")
	data["NewsCount"] = page.Total
	h.render(c, http.StatusOK, "about", data)
}

// CatalogPage renders the full catalog
func (h *WebHandler) CatalogPage(c *gin.Context) {
	h.listingPage(c, "Catalog", listing.FilterParams{})
}

// TagPage renders the articles carrying a tag
func (h *WebHandler) TagPage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("tag_id"), 10, 64)
	if err != nil {
		h.notFound(c, "Tag not found.")
		return
	}
	h.listingPage(c, "Articles by tag", listing.FilterParams{TagID: &id})
}

// CategoryPage renders the articles of a category
func (h *WebHandler) CategoryPage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("category_id"), 10, 64)
	if err != nil {
		h.notFound(c, "Category not found.")
		return
	}
	h.listingPage(c, "Articles by category", listing.FilterParams{CategoryID: &id})
}

// SearchPage renders the articles whose title or content contains q
func (h *WebHandler) SearchPage(c *gin.Context) {
	h.listingPage(c, "Search", listing.FilterParams{Query: c.Query("q")})
}

// FavoritesPage renders the visitor's favorites
func (h *WebHandler) FavoritesPage(c *gin.Context) {
	h.listingPage(c, "Favorites", listing.FilterParams{FavoritedBy: middleware.GetVisitor(c)})
}

func (h *WebHandler) listingPage(c *gin.Context, title string, filter listing.FilterParams) {
	page, err := h.listing.List(c.Request.Context(), listing.ListParams{
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
		Page:   c.Query("page"),
		Filter: filter,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	data := h.data(c, title)
	data["Page"] = page
	data["Query"] = page.Query
	data["NewsCount"] = page.Total
	h.render(c, http.StatusOK, "catalog", data)
}

// ArticlePage renders one article. A numeric ref is an id, anything else
// a slug; both count a view.
func (h *WebHandler) ArticlePage(c *gin.Context) {
	ctx := c.Request.Context()
	ref := c.Param("ref")

	var (
		article *domain.Article
		err     error
	)
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		article, err = h.articleService.GetDetailByID(ctx, id)
	} else {
		article, err = h.articleService.GetDetailBySlug(ctx, ref)
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	reactions, err := h.reactionService.State(ctx, article.ID, middleware.GetVisitor(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	body, err := h.renderer.HTML(article.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	data := h.data(c, article.Title)
	data["Article"] = article
	data["Body"] = body
	data["Reactions"] = reactions
	h.render(c, http.StatusOK, "article", data)
}

// Like toggles the visitor's like and returns to the article
func (h *WebHandler) Like(c *gin.Context) {
	h.toggle(c, domain.ReactionLike)
}

// Favorite toggles the visitor's favorite and returns to the article
func (h *WebHandler) Favorite(c *gin.Context) {
	h.toggle(c, domain.ReactionFavorite)
}

func (h *WebHandler) toggle(c *gin.Context, kind domain.ReactionKind) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c, "Article not found.")
		return
	}

	if _, err := h.reactionService.Toggle(c.Request.Context(), kind, id, middleware.GetVisitor(c)); err != nil {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/news/catalog/%d/", id))
}

// AddArticlePage renders an empty submission form
func (h *WebHandler) AddArticlePage(c *gin.Context) {
	h.renderForm(c, http.StatusOK, service.ArticleForm{}, nil)
}

// AddArticle handles the submission form
func (h *WebHandler) AddArticle(c *gin.Context) {
	var form service.ArticleForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusOK, form, validator.FieldErrors{"__all__": "The form could not be read."})
		return
	}

	article, fieldErrors, err := h.articleService.Submit(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(fieldErrors) > 0 {
		h.renderForm(c, http.StatusOK, form, fieldErrors)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/news/catalog/%d/", article.ID))
}

func (h *WebHandler) renderForm(c *gin.Context, status int, form service.ArticleForm, fieldErrors validator.FieldErrors) {
	categories, err := h.articleService.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	data := h.data(c, "Add article")
	data["Form"] = form
	data["Errors"] = fieldErrors
	data["Categories"] = categories
	h.render(c, status, "add_article", data)
}
