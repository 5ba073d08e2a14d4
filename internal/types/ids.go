package types

import (
	"time"

	"github.com/google/uuid"
)

// ConventionID represents a UUIDv7 convention identifier.
// String alias enables type safety while maintaining JSON string serialization.
// UUIDv7 time-ordering ensures sequential IDs cluster in B-tree indexes.
type ConventionID string

// NewConventionID generates a UUIDv7 convention identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewConventionID() ConventionID {
	return ConventionID(uuid.Must(uuid.NewV7()).String())
}

// ParseConventionID validates and converts a string to ConventionID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the library.
func ParseConventionID(s string) (ConventionID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return ConventionID(s), nil
}

// ConventionIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Enables time-based listing without a database lookup.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func ConventionIDTime(id ConventionID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
