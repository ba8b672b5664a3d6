package booking

import (
	"strings"

	"github.com/google/uuid"
)

// NewBookingCode generates the short human-readable code handed to clients.
// Uniqueness is backed by the column's unique index; the uuid prefix keeps
// collisions out of normal operation.
func NewBookingCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "VS-" + raw[:8]
}
