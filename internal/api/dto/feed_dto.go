package dto

// FeedItemResponse is one timeline entry: either a ticket or a review,
// discriminated by Kind.
type FeedItemResponse struct {
	Kind        string          `json:"kind"`
	IsOwn       bool            `json:"is_own"`
	HasResponse *bool           `json:"has_response,omitempty"`
	Ticket      *TicketResponse `json:"ticket,omitempty"`
	Review      *ReviewResponse `json:"review,omitempty"`
}
