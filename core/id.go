package core

import "github.com/google/uuid"

// NewID generates a new unique identifier used to correlate outbound
// requests with log lines and spans.
func NewID() string { return uuid.NewString() }
