package utils

import "github.com/google/uuid"

// NewID returns the identifier assigned to new records.
func NewID() string { return uuid.NewString() }
