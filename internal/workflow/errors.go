package workflow

import "errors"

var (
	// ErrNotFound covers entities that do not exist for the caller,
	// whether truly absent or owned by another user.
	ErrNotFound = errors.New("not found")

	// ErrNoDocument means the book has no uploaded document to work on.
	ErrNoDocument = errors.New("book has no document")

	// ErrDegradedSummary means regeneration only managed a fallback
	// summary instead of a provider-generated one.
	ErrDegradedSummary = errors.New("summary generation degraded")
)
