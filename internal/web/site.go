package web

import (
	"github.com/amiyamandal-dev/newsdesk/internal/config"
)

// MenuItem is one navigation link
type MenuItem struct {
	Title string
	URL   string
}

// Site is the read-only context every page is rendered with. It is built
// once at startup and shared by all requests.
type Site struct {
	name  string
	about string
	menu  []MenuItem
}

// NewSite builds the site context from configuration
func NewSite(cfg config.SiteConfig) *Site {
	return &Site{
		name:  cfg.Name,
		about: cfg.About,
		menu: []MenuItem{
			{Title: "Main", URL: "/"},
			{Title: "About", URL: "/about/"},
			{Title: "Catalog", URL: "/news/catalog/"},
			{Title: "Favorites", URL: "/news/favorites/"},
			{Title: "Add article", URL: "/news/add_article/"},
		},
	}
}

// Name is the site title
func (s *Site) Name() string { return s.name }

// About is the about page text
func (s *Site) About() string { return s.about }

// Menu returns a copy of the navigation links
func (s *Site) Menu() []MenuItem {
	out := make([]MenuItem, len(s.menu))
	copy(out, s.menu)
	return out
}
