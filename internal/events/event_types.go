package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventTicketDeleted EventType = "ticket_deleted"
	EventReviewCreated EventType = "review_created"
	EventReviewDeleted EventType = "review_deleted"
	EventUserFollowed  EventType = "user_followed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketPayload payload for ticket events.
type TicketPayload struct {
	TicketID string `json:"ticket_id"`
	Title    string `json:"title"`
}

// ReviewPayload payload for review events.
type ReviewPayload struct {
	ReviewID string `json:"review_id"`
	TicketID string `json:"ticket_id"`
	Rating   int    `json:"rating"`
	Headline string `json:"headline"`
}

// FollowPayload payload for follow events.
type FollowPayload struct {
	FollowedUserID string `json:"followed_user_id"`
}
