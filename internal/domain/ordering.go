package domain

// SortField is a column articles may be ordered by
type SortField string

const (
	SortByPublicationDate SortField = "publication_date"
	SortByViews           SortField = "views"
)

// Ordering is a concrete ordering instruction for the article store.
// Ties are broken by article id in the same direction.
type Ordering struct {
	Field     SortField
	Ascending bool
}

// DefaultOrdering is newest first
var DefaultOrdering = Ordering{Field: SortByPublicationDate, Ascending: false}

// Direction returns "asc" or "desc"
func (o Ordering) Direction() string {
	if o.Ascending {
		return "asc"
	}
	return "desc"
}
