package domain

import (
	"encoding/json"
	"time"
)

// ActivityEntry is an immutable audit trail record of one domain event.
type ActivityEntry struct {
	ID        int64
	EventID   string
	EventType string
	UserID    int64
	Role      Role
	Payload   json.RawMessage
	CreatedAt time.Time
}
