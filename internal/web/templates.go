package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
	"github.com/amiyamandal-dev/newsdesk/internal/render"
)

//go:embed templates
var templateFS embed.FS

const baseLayout = "templates/layouts/base.html"

var pages = map[string]string{
	"index":       "templates/pages/index.html",
	"about":       "templates/pages/about.html",
	"catalog":     "templates/pages/catalog.html",
	"article":     "templates/pages/article.html",
	"add_article": "templates/pages/add_article.html",
	"not_found":   "templates/pages/not_found.html",
	"error":       "templates/pages/error.html",
}

// loadTemplates parses each page together with the base layout
func loadTemplates(renderer *render.Renderer) (map[string]*template.Template, error) {
	funcMap := template.FuncMap{
		"excerpt": func(n int, s string) string {
			return renderer.Excerpt(s, n)
		},
		"date": func(t time.Time) string {
			return t.Format("02.01.2006 15:04")
		},
		"withParams": withParams,
		"activeSort": activeSort,
		"idString": func(id int64) string {
			return fmt.Sprint(id)
		},
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, pagePath := range pages {
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templateFS, baseLayout, pagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

// withParams returns u's path and query with the given key/value pairs
// replaced. Setting sort or order drops page so a new ordering starts at
// its first page.
func withParams(u *url.URL, kv ...string) string {
	q := u.Query()
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i] == "sort" || kv[i] == "order" {
			q.Del("page")
		}
		q.Set(kv[i], kv[i+1])
	}
	out := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return out.String()
}

// activeSort reports whether o is the ordering a sort link selects
func activeSort(o domain.Ordering, field, direction string) bool {
	return string(o.Field) == field && o.Direction() == direction
}
