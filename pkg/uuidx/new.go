package uuidx

import "github.com/google/uuid"

// New generates a version 7 UUID. It panics if generation fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewString generates a version 7 UUID and returns it as a string.
func NewString() string {
	return New().String()
}
