package widget

import "github.com/google/uuid"

// NewSessionID returns a random version 4 UUID identifying one widget instance.
func NewSessionID() string {
	return uuid.NewString()
}
