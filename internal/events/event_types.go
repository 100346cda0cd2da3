package events

import (
	"time"

	"github.com/spec-kit/storefront/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserLoggedIn    EventType = "user_logged_in"
	EventProductCreated  EventType = "product_created"
	EventProductUpdated  EventType = "product_updated"
	EventProductDeleted  EventType = "product_deleted"
	EventCartItemAdded   EventType = "cart_item_added"
	EventCartItemRemoved EventType = "cart_item_removed"
)

// Actor identifies the account that caused an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProductPayload payload.
type ProductPayload struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price,omitempty"`
}

// CartPayload payload.
type CartPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity,omitempty"`
}
