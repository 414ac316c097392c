package listing

import (
	"errors"
	"strconv"
	"strings"
)

// PageSize is the number of articles on every listing page
const PageSize = 15

// Clamp records how the requested page number was interpreted
type Clamp int

const (
	// Exact means the requested page (or the default first page) was served
	Exact Clamp = iota
	// ClampedFirst means the input was not a positive integer
	ClampedFirst
	// ClampedLast means the input was past the last page
	ClampedLast
)

func (c Clamp) String() string {
	switch c {
	case ClampedFirst:
		return "clamped-to-first"
	case ClampedLast:
		return "clamped-to-last"
	default:
		return "exact"
	}
}

// PageWindow is the resolved slice of a listing
type PageWindow struct {
	Number   int
	NumPages int
	Offset   int
	Limit    int
	Clamp    Clamp
}

// NumPages returns the page count for total items; an empty listing
// still has one (empty) page.
func NumPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate resolves a raw page parameter against total items. It never
// fails: unparseable or non-positive input serves the first page and
// input beyond the end serves the last page.
func Paginate(rawPage string, total, pageSize int) PageWindow {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	numPages := NumPages(total, pageSize)

	number, clamp := parsePage(strings.TrimSpace(rawPage), numPages)

	return PageWindow{
		Number:   number,
		NumPages: numPages,
		Offset:   (number - 1) * pageSize,
		Limit:    pageSize,
		Clamp:    clamp,
	}
}

func parsePage(raw string, numPages int) (int, Clamp) {
	if raw == "" {
		return 1, Exact
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		// a huge positive number is still "past the end"
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return numPages, ClampedLast
		}
		return 1, ClampedFirst
	}

	switch {
	case n < 1:
		return 1, ClampedFirst
	case n > numPages:
		return numPages, ClampedLast
	default:
		return n, Exact
	}
}
