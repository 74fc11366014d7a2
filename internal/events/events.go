// Package events publishes roster change notifications.
package events

import "time"

// Event types carried in the message headers.
const (
	TypeSignedUp     = "roster.signed_up"
	TypeUnregistered = "roster.unregistered"
)

// RosterChanged is the payload emitted after a successful signup or
// unregister. RosterSize is the roster length after the mutation.
type RosterChanged struct {
	EventID    string    `json:"event_id"`
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	RosterSize int       `json:"roster_size"`
	OccurredAt time.Time `json:"occurred_at"`
}
