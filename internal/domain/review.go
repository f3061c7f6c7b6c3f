package domain

import "time"

// Rating bounds, inclusive.
const (
	MinRating = 0
	MaxRating = 5
)

// Review is a rated response to exactly one ticket. Any user may review a
// ticket, including the ticket's own author, but only once per ticket.
type Review struct {
	ID        string
	TicketID  string
	UserID    string
	Rating    int
	Headline  string
	Body      string
	CreatedAt time.Time
}
