package util

import "github.com/google/uuid"

// NewID returns a random identifier suitable for storage keys and
// request ids.
func NewID() string {
	return uuid.NewString()
}
