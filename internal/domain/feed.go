package domain

import (
	"sort"
	"time"
)

// FeedItemKind discriminates the two post kinds in a feed.
type FeedItemKind string

const (
	FeedItemTicket FeedItemKind = "TICKET"
	FeedItemReview FeedItemKind = "REVIEW"
)

// FeedItem wraps either a Ticket or a Review plus display-only derived
// fields. Exactly one of Ticket/Review is non-nil, matching Kind.
type FeedItem struct {
	Kind   FeedItemKind
	Ticket *Ticket
	Review *Review

	// IsOwn reports whether the viewer authored the wrapped post.
	IsOwn bool
	// HasResponse is set for tickets only: true when at least one review
	// references the ticket.
	HasResponse bool
}

// CreatedAt returns the creation timestamp of the wrapped post.
func (i FeedItem) CreatedAt() time.Time {
	if i.Kind == FeedItemReview {
		return i.Review.CreatedAt
	}
	return i.Ticket.CreatedAt
}

// OwnerID returns the author of the wrapped post.
func (i FeedItem) OwnerID() string {
	if i.Kind == FeedItemReview {
		return i.Review.UserID
	}
	return i.Ticket.UserID
}

// PostID returns the ID of the wrapped post.
func (i FeedItem) PostID() string {
	if i.Kind == FeedItemReview {
		return i.Review.ID
	}
	return i.Ticket.ID
}

// MergeFeed unions tickets and reviews into one timeline sorted by creation
// time descending. Ties on exactly equal timestamps order tickets before
// reviews, then by post ID ascending, so output is deterministic. answered
// holds the IDs of tickets that already have at least one review.
func MergeFeed(viewerID string, tickets []Ticket, reviews []Review, answered map[string]bool) []FeedItem {
	items := make([]FeedItem, 0, len(tickets)+len(reviews))
	for i := range tickets {
		t := &tickets[i]
		items = append(items, FeedItem{
			Kind:        FeedItemTicket,
			Ticket:      t,
			IsOwn:       t.UserID == viewerID,
			HasResponse: answered[t.ID],
		})
	}
	for i := range reviews {
		r := &reviews[i]
		items = append(items, FeedItem{
			Kind:   FeedItemReview,
			Review: r,
			IsOwn:  r.UserID == viewerID,
		})
	}

	sort.SliceStable(items, func(a, b int) bool {
		ta, tb := items[a].CreatedAt(), items[b].CreatedAt()
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		if items[a].Kind != items[b].Kind {
			return items[a].Kind == FeedItemTicket
		}
		return items[a].PostID() < items[b].PostID()
	})
	return items
}
