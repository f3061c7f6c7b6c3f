package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litrevu/litrevu/internal/events"
	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

func newTicketService(s *fakeStore, dispatcher events.Dispatcher) *TicketService {
	repos := s.repos()
	return NewTicketService(TicketDependencies{
		TicketRepo: repos.Tickets,
		ReviewRepo: repos.Reviews,
		TxManager:  &fakeTxManager{s: s},
		Dispatcher: dispatcher,
	})
}

func TestCreateTicket(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	dispatcher := &recordingDispatcher{}
	svc := newTicketService(s, dispatcher)

	ticket, err := svc.CreateTicket(context.Background(), alice, TicketInput{
		Title:       "  Kindred  ",
		Description: "worth a read?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Kindred", ticket.Title)
	assert.Equal(t, alice, ticket.UserID)
	assert.NotEmpty(t, ticket.ID)
	assert.Contains(t, dispatcher.typesSeen(), events.EventTicketCreated)
}

// A service without a dispatcher wired performs mutations and simply skips
// publication.
func TestCreateTicketWithoutDispatcher(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	svc := newTicketService(s, nil)

	ticket, err := svc.CreateTicket(context.Background(), alice, TicketInput{Title: "quiet"})
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.ID)
}

func TestCreateTicketValidation(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	svc := newTicketService(s, nil)

	_, err := svc.CreateTicket(context.Background(), alice, TicketInput{Title: ""})
	require.Error(t, err)
	assert.Empty(t, s.tickets)
}

func TestUpdateTicketOwnership(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	bob := s.addUser("bob")
	ticketID := s.addTicket(alice, "original")
	svc := newTicketService(s, nil)

	_, err := svc.UpdateTicket(context.Background(), bob, ticketID, TicketInput{Title: "hijacked"})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	assert.Equal(t, "original", s.tickets[ticketID].Title)

	updated, err := svc.UpdateTicket(context.Background(), alice, ticketID, TicketInput{Title: "revised"})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Title)
	assert.Equal(t, alice, updated.UserID)
}

func TestDeleteTicketCascadesReviews(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	bob := s.addUser("bob")
	ticketID := s.addTicket(alice, "doomed")
	s.addReview(bob, ticketID, 4)
	svc := newTicketService(s, nil)

	require.NoError(t, svc.DeleteTicket(context.Background(), alice, ticketID))
	assert.Empty(t, s.tickets)
	assert.Empty(t, s.reviews)
}

func TestDeleteTicketNotOwner(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	bob := s.addUser("bob")
	ticketID := s.addTicket(alice, "keep")
	svc := newTicketService(s, nil)

	err := svc.DeleteTicket(context.Background(), bob, ticketID)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	assert.Len(t, s.tickets, 1)
}

func TestCreateReview(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	bob := s.addUser("bob")
	ticketID := s.addTicket(alice, "ticket")
	dispatcher := &recordingDispatcher{}
	svc := newTicketService(s, dispatcher)

	review, err := svc.CreateReview(context.Background(), bob, ticketID, ReviewInput{
		Rating:   5,
		Headline: "loved it",
	})
	require.NoError(t, err)
	assert.Equal(t, ticketID, review.TicketID)
	assert.Equal(t, bob, review.UserID)
	assert.Contains(t, dispatcher.typesSeen(), events.EventReviewCreated)
}

// The ticket's own author may review it.
func TestCreateReviewOnOwnTicket(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	ticketID := s.addTicket(alice, "self answered")
	svc := newTicketService(s, nil)

	_, err := svc.CreateReview(context.Background(), alice, ticketID, ReviewInput{Rating: 3, Headline: "my own take"})
	assert.NoError(t, err)
}

func TestCreateReviewDuplicate(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	bob := s.addUser("bob")
	ticketID := s.addTicket(alice, "ticket")
	svc := newTicketService(s, nil)

	_, err := svc.CreateReview(context.Background(), bob, ticketID, ReviewInput{Rating: 4, Headline: "first"})
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), bob, ticketID, ReviewInput{Rating: 2, Headline: "second"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)
	assert.Len(t, s.reviews, 1)
}

func TestCreateReviewInvalidRating(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	bob := s.addUser("bob")
	ticketID := s.addTicket(alice, "ticket")
	svc := newTicketService(s, nil)

	_, err := svc.CreateReview(context.Background(), bob, ticketID, ReviewInput{Rating: 7, Headline: "too high"})
	require.Error(t, err)
	assert.Empty(t, s.reviews)
}

func TestCreateReviewUnknownTicket(t *testing.T) {
	s := newFakeStore()
	bob := s.addUser("bob")
	svc := newTicketService(s, nil)

	_, err := svc.CreateReview(context.Background(), bob, "missing", ReviewInput{Rating: 4, Headline: "hmm"})
	require.Error(t, err)
}

func TestUpdateReviewOwnership(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	bob := s.addUser("bob")
	ticketID := s.addTicket(alice, "ticket")
	reviewID := s.addReview(bob, ticketID, 3)
	svc := newTicketService(s, nil)

	_, err := svc.UpdateReview(context.Background(), alice, reviewID, ReviewInput{Rating: 1, Headline: "tampered"})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	updated, err := svc.UpdateReview(context.Background(), bob, reviewID, ReviewInput{Rating: 5, Headline: "revised"})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, bob, updated.UserID)
}

func TestDeleteReview(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	bob := s.addUser("bob")
	ticketID := s.addTicket(alice, "ticket")
	reviewID := s.addReview(bob, ticketID, 3)
	svc := newTicketService(s, nil)

	assert.ErrorIs(t, svc.DeleteReview(context.Background(), alice, reviewID), apperrors.ErrNotAuthorized)
	require.NoError(t, svc.DeleteReview(context.Background(), bob, reviewID))
	assert.Empty(t, s.reviews)
	// Deleting a review never touches the ticket.
	assert.Len(t, s.tickets, 1)
}

func TestCreateTicketAndReview(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	dispatcher := &recordingDispatcher{}
	svc := newTicketService(s, dispatcher)

	ticket, review, err := svc.CreateTicketAndReview(context.Background(), alice,
		TicketInput{Title: "Piranesi"},
		ReviewInput{Rating: 5, Headline: "a marvel"},
	)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, review.TicketID)
	assert.Equal(t, alice, ticket.UserID)
	assert.Equal(t, alice, review.UserID)
	assert.Contains(t, dispatcher.typesSeen(), events.EventTicketCreated)
	assert.Contains(t, dispatcher.typesSeen(), events.EventReviewCreated)
}

// A failed review insert rolls back the ticket insert with it.
func TestCreateTicketAndReviewRollsBack(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	s.failReviewCreate = errors.New("insert failed")
	dispatcher := &recordingDispatcher{}
	svc := newTicketService(s, dispatcher)

	_, _, err := svc.CreateTicketAndReview(context.Background(), alice,
		TicketInput{Title: "doomed"},
		ReviewInput{Rating: 4, Headline: "never lands"},
	)
	require.Error(t, err)
	assert.Empty(t, s.tickets)
	assert.Empty(t, s.reviews)
	assert.Empty(t, dispatcher.events)
}

// Validation runs before the transaction opens, so a bad review leaves no
// ticket behind.
func TestCreateTicketAndReviewValidatesUpfront(t *testing.T) {
	s := newFakeStore()
	alice := s.addUser("alice")
	svc := newTicketService(s, nil)

	_, _, err := svc.CreateTicketAndReview(context.Background(), alice,
		TicketInput{Title: "fine"},
		ReviewInput{Rating: 9, Headline: "out of range"},
	)
	require.Error(t, err)
	assert.Empty(t, s.tickets)
}
