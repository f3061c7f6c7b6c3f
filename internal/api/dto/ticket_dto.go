package dto

import "time"

// TicketRequest payload for creating or editing a ticket.
type TicketRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageKey    *string `json:"image_key"`
}

// TicketResponse is the public view of a ticket.
type TicketResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageKey    *string   `json:"image_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TicketAndReviewRequest payload for the combined create operation.
type TicketAndReviewRequest struct {
	Ticket TicketRequest `json:"ticket"`
	Review ReviewRequest `json:"review"`
}
