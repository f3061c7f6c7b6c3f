package dto

import "time"

// ReviewRequest payload for creating or editing a review.
type ReviewRequest struct {
	Rating   int    `json:"rating"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

// ReviewResponse is the public view of a review.
type ReviewResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Headline  string    `json:"headline"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
