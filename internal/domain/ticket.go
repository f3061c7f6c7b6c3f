package domain

import "time"

// Ticket is a request for a review of a book or article. The owner is set at
// creation and never reassigned.
type Ticket struct {
	ID          string
	UserID      string
	Title       string
	Description string
	ImageKey    *string
	CreatedAt   time.Time
}
