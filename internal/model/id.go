package model

import "github.com/google/uuid"

// NewID returns a random identifier for a folder or task.
// Random UUIDs stay unique under rapid successive creation.
func NewID() string {
	return uuid.NewString()
}
