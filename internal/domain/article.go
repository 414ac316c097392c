package domain

import (
	"time"
)

// Article represents a published news article
type Article struct {
	ID              int64     `json:"id" db:"id"`
	Slug            string    `json:"slug" db:"slug"`
	Title           string    `json:"title" db:"title"`
	Content         string    `json:"content" db:"content"`
	CategoryID      int64     `json:"category_id" db:"category_id"`
	Category        *Category `json:"category,omitempty"`
	Tags            []Tag     `json:"tags"`
	PublicationDate time.Time `json:"publication_date" db:"publication_date"`
	Views           int64     `json:"views" db:"views"`
}

// Category groups articles; every article belongs to exactly one
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Tag labels articles (many-to-many)
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// TagIDs returns the ids of the article's tags
func (a *Article) TagIDs() []int64 {
	ids := make([]int64, 0, len(a.Tags))
	for _, t := range a.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// CategoryName is safe to call on articles loaded without their category
func (a *Article) CategoryName() string {
	if a.Category == nil {
		return ""
	}
	return a.Category.Name
}

// ArticleFilter is a conjunction of optional predicates over articles.
// Zero values mean "no constraint".
type ArticleFilter struct {
	CategoryID  int64
	TagID       int64
	Query       string
	FavoritedBy VisitorID
}
