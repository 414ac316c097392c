package listing

import (
	"github.com/amiyamandal-dev/newsdesk/internal/domain"
)

// ResolveSort maps free-form sort and order parameters onto an ordering.
// Unknown keys fall back to publication date; any direction other than
// "asc" is descending.
func ResolveSort(key, direction string) domain.Ordering {
	field := domain.SortByPublicationDate
	if domain.SortField(key) == domain.SortByViews {
		field = domain.SortByViews
	}

	return domain.Ordering{
		Field:     field,
		Ascending: direction == "asc",
	}
}
