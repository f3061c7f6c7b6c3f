package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/litrevu/litrevu/internal/domain"
	"github.com/litrevu/litrevu/internal/events"
	"github.com/litrevu/litrevu/internal/repository"
	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

// fakeStore backs the in-memory repository fakes. Timestamps advance one
// second per insert so feed ordering is deterministic.
type fakeStore struct {
	now     time.Time
	seq     int
	users   map[string]domain.User
	tickets map[string]domain.Ticket
	reviews map[string]domain.Review
	follows map[string]domain.Follow
	resets  map[string]repository.PasswordResetToken

	failTicketCreate error
	failReviewCreate error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		users:   map[string]domain.User{},
		tickets: map[string]domain.Ticket{},
		reviews: map[string]domain.Review{},
		follows: map[string]domain.Follow{},
		resets:  map[string]repository.PasswordResetToken{},
	}
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *fakeStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *fakeStore) repos() repository.Repositories {
	return repository.Repositories{
		Users:   &fakeUserRepo{s: s},
		Tickets: &fakeTicketRepo{s: s},
		Reviews: &fakeReviewRepo{s: s},
		Follows: &fakeFollowRepo{s: s},
		Resets:  &fakeResetRepo{s: s},
	}
}

// snapshot deep-copies the mutable tables so a transaction can roll back.
func (s *fakeStore) snapshot() *fakeStore {
	clone := &fakeStore{
		now:              s.now,
		seq:              s.seq,
		users:            map[string]domain.User{},
		tickets:          map[string]domain.Ticket{},
		reviews:          map[string]domain.Review{},
		follows:          map[string]domain.Follow{},
		resets:           map[string]repository.PasswordResetToken{},
		failTicketCreate: s.failTicketCreate,
		failReviewCreate: s.failReviewCreate,
	}
	for k, v := range s.users {
		clone.users[k] = v
	}
	for k, v := range s.tickets {
		clone.tickets[k] = v
	}
	for k, v := range s.reviews {
		clone.reviews[k] = v
	}
	for k, v := range s.follows {
		clone.follows[k] = v
	}
	for k, v := range s.resets {
		clone.resets[k] = v
	}
	return clone
}

func (s *fakeStore) restore(from *fakeStore) {
	s.now = from.now
	s.seq = from.seq
	s.users = from.users
	s.tickets = from.tickets
	s.reviews = from.reviews
	s.follows = from.follows
	s.resets = from.resets
}

// addUser seeds an account and returns its ID.
func (s *fakeStore) addUser(username string) string {
	id := s.nextID("user")
	s.users[id] = domain.User{
		ID:        id,
		Username:  username,
		CreatedAt: s.tick(),
	}
	return id
}

func (s *fakeStore) addTicket(userID, title string) string {
	id := s.nextID("ticket")
	s.tickets[id] = domain.Ticket{
		ID:        id,
		UserID:    userID,
		Title:     title,
		CreatedAt: s.tick(),
	}
	return id
}

func (s *fakeStore) addReview(userID, ticketID string, rating int) string {
	id := s.nextID("review")
	s.reviews[id] = domain.Review{
		ID:        id,
		TicketID:  ticketID,
		UserID:    userID,
		Rating:    rating,
		Headline:  "seeded",
		CreatedAt: s.tick(),
	}
	return id
}

func (s *fakeStore) addFollow(followerID, followedID string) {
	id := s.nextID("follow")
	s.follows[id] = domain.Follow{
		ID:         id,
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  s.tick(),
	}
}

type fakeUserRepo struct {
	s *fakeStore
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return apperrors.NewConflict("username already taken", map[string]any{"username": user.Username})
		}
	}
	user.ID = r.s.nextID("user")
	user.CreatedAt = r.s.tick()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.s.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = r.s.tick()
	r.s.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, pgx.ErrNoRows
	}
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.users, id)
	for tid, t := range r.s.tickets {
		if t.UserID == id {
			delete(r.s.tickets, tid)
		}
	}
	for rid, rv := range r.s.reviews {
		if rv.UserID == id {
			delete(r.s.reviews, rid)
		}
		if _, ok := r.s.tickets[rv.TicketID]; !ok {
			delete(r.s.reviews, rid)
		}
	}
	for fid, f := range r.s.follows {
		if f.FollowerID == id || f.FollowedID == id {
			delete(r.s.follows, fid)
		}
	}
	return nil
}

type fakeTicketRepo struct {
	s *fakeStore
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	if r.s.failTicketCreate != nil {
		return r.s.failTicketCreate
	}
	ticket.ID = r.s.nextID("ticket")
	ticket.CreatedAt = r.s.tick()
	r.s.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	existing, ok := r.s.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.UserID = existing.UserID
	ticket.CreatedAt = existing.CreatedAt
	r.s.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.tickets, id)
	for rid, rv := range r.s.reviews {
		if rv.TicketID == id {
			delete(r.s.reviews, rid)
		}
	}
	return nil
}

func (r *fakeTicketRepo) ListByUser(_ context.Context, userID string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range r.s.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) ListVisible(_ context.Context, viewerID string, followedIDs []string) ([]domain.Ticket, error) {
	visible := map[string]bool{viewerID: true}
	for _, id := range followedIDs {
		visible[id] = true
	}
	var out []domain.Ticket
	for _, t := range r.s.tickets {
		if visible[t.UserID] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) IDsWithReviews(_ context.Context, ticketIDs []string) (map[string]bool, error) {
	wanted := map[string]bool{}
	for _, id := range ticketIDs {
		wanted[id] = true
	}
	answered := map[string]bool{}
	for _, rv := range r.s.reviews {
		if wanted[rv.TicketID] {
			answered[rv.TicketID] = true
		}
	}
	return answered, nil
}

type fakeReviewRepo struct {
	s *fakeStore
}

func (r *fakeReviewRepo) Create(_ context.Context, review *domain.Review) error {
	if r.s.failReviewCreate != nil {
		return r.s.failReviewCreate
	}
	for _, rv := range r.s.reviews {
		if rv.TicketID == review.TicketID && rv.UserID == review.UserID {
			return apperrors.ErrDuplicateReview
		}
	}
	review.ID = r.s.nextID("review")
	review.CreatedAt = r.s.tick()
	r.s.reviews[review.ID] = *review
	return nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *domain.Review) error {
	existing, ok := r.s.reviews[review.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	review.TicketID = existing.TicketID
	review.UserID = existing.UserID
	review.CreatedAt = existing.CreatedAt
	r.s.reviews[review.ID] = *review
	return nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id string) (*domain.Review, error) {
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &rv, nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.reviews[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.reviews, id)
	return nil
}

func (r *fakeReviewRepo) ListByUser(_ context.Context, userID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, rv := range r.s.reviews {
		if rv.UserID == userID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) ListVisible(_ context.Context, viewerID string, followedIDs []string) ([]domain.Review, error) {
	visible := map[string]bool{viewerID: true}
	for _, id := range followedIDs {
		visible[id] = true
	}
	var out []domain.Review
	for _, rv := range r.s.reviews {
		ticket, hasTicket := r.s.tickets[rv.TicketID]
		if visible[rv.UserID] || (hasTicket && ticket.UserID == viewerID) {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) ExistsForTicketAndUser(_ context.Context, ticketID, userID string) (bool, error) {
	for _, rv := range r.s.reviews {
		if rv.TicketID == ticketID && rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeFollowRepo struct {
	s *fakeStore
}

func (r *fakeFollowRepo) Create(_ context.Context, follow *domain.Follow) error {
	for _, f := range r.s.follows {
		if f.FollowerID == follow.FollowerID && f.FollowedID == follow.FollowedID {
			return apperrors.ErrAlreadyFollowing
		}
	}
	follow.ID = r.s.nextID("follow")
	follow.CreatedAt = r.s.tick()
	r.s.follows[follow.ID] = *follow
	return nil
}

func (r *fakeFollowRepo) Delete(_ context.Context, followerID, followedID string) (bool, error) {
	for id, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			delete(r.s.follows, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) Exists(_ context.Context, followerID, followedID string) (bool, error) {
	for _, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) ListFollowedIDs(_ context.Context, followerID string) ([]string, error) {
	var out []string
	for _, f := range r.s.follows {
		if f.FollowerID == followerID {
			out = append(out, f.FollowedID)
		}
	}
	return out, nil
}

func (r *fakeFollowRepo) ListFollowing(_ context.Context, userID string) ([]domain.User, error) {
	var out []domain.User
	for _, f := range r.s.follows {
		if f.FollowerID == userID {
			if u, ok := r.s.users[f.FollowedID]; ok {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (r *fakeFollowRepo) ListFollowers(_ context.Context, userID string) ([]domain.User, error) {
	var out []domain.User
	for _, f := range r.s.follows {
		if f.FollowedID == userID {
			if u, ok := r.s.users[f.FollowerID]; ok {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type fakeResetRepo struct {
	s *fakeStore
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	token.ID = r.s.nextID("reset")
	token.CreatedAt = r.s.tick()
	r.s.resets[token.ID] = *token
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, token string) (*repository.PasswordResetToken, error) {
	for _, t := range r.s.resets {
		if t.Token == token {
			t := t
			return &t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	t, ok := r.s.resets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	used := r.s.tick()
	t.UsedAt = &used
	r.s.resets[id] = t
	return nil
}

// fakeTxManager commits by keeping mutations and rolls back by restoring a
// pre-transaction snapshot, mirroring the real pgx transaction contract.
type fakeTxManager struct {
	s *fakeStore
}

func (m *fakeTxManager) WithinTx(_ context.Context, fn func(r repository.Repositories) error) error {
	before := m.s.snapshot()
	if err := fn(m.s.repos()); err != nil {
		m.s.restore(before)
		return err
	}
	return nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	events []events.Event
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) typesSeen() []events.EventType {
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}
