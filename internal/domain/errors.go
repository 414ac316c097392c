package domain

import (
	"errors"
)

var (
	// Lookup errors; all surface as 404
	ErrArticleNotFound  = errors.New("article not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrTagNotFound      = errors.New("tag not found")

	ErrCategoryExists = errors.New("category already exists")
	ErrTagExists      = errors.New("tag already exists")
	ErrSlugExists     = errors.New("slug already exists")

	ErrInvalidReaction  = errors.New("invalid reaction kind")
	ErrMissingVisitor   = errors.New("visitor address unknown")
	ErrValidationFailed = errors.New("validation failed")

	ErrSearchUnavailable = errors.New("search index unavailable")
)

// IsNotFound reports whether err is any of the lookup errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrArticleNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrTagNotFound)
}
