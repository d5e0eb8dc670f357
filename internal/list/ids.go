package list

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces ids for new items.
type IDGenerator interface {
	NewID() string
}

// TimestampIDs issues the creation time in epoch milliseconds. Two items
// added within the same millisecond share an id; callers accept that.
type TimestampIDs struct {
	Now func() time.Time
}

func (g TimestampIDs) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return strconv.FormatInt(now().UnixMilli(), 10)
}

// UUIDs issues time-ordered UUIDv7 strings.
type UUIDs struct{}

func (UUIDs) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// NewIDGenerator maps a config scheme ("timestamp" or "uuid") to a generator.
func NewIDGenerator(scheme string) IDGenerator {
	if scheme == "uuid" {
		return UUIDs{}
	}
	return TimestampIDs{}
}
