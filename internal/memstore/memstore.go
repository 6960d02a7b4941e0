// Package memstore is an in-memory stand-in for the Postgres repositories.
// It mirrors their error contract and is used by the HTTP tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"TOURMAP_BACK-END/internal/models"
	"TOURMAP_BACK-END/internal/repository"
)

// Store holds every table behind one lock.
type Store struct {
	mu             sync.RWMutex
	users          map[uuid.UUID]models.User
	highlights     map[uuid.UUID]models.Highlight
	suggesters     map[uuid.UUID]uuid.UUID
	tours          map[uuid.UUID]models.Tour
	tourHighlights map[uuid.UUID][]uuid.UUID
	feedbacks      map[uuid.UUID]models.Feedback

	userDeletes []uuid.UUID
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:          map[uuid.UUID]models.User{},
		highlights:     map[uuid.UUID]models.Highlight{},
		suggesters:     map[uuid.UUID]uuid.UUID{},
		tours:          map[uuid.UUID]models.Tour{},
		tourHighlights: map[uuid.UUID][]uuid.UUID{},
		feedbacks:      map[uuid.UUID]models.Feedback{},
	}
}

// Users returns the user table.
func (s *Store) Users() *Users { return &Users{s} }

// Highlights returns the highlight table.
func (s *Store) Highlights() *Highlights { return &Highlights{s} }

// Tours returns the tour table.
func (s *Store) Tours() *Tours { return &Tours{s} }

// Feedbacks returns the feedback table.
func (s *Store) Feedbacks() *Feedbacks { return &Feedbacks{s} }

// UserDeletes lists the ids passed to Users().Delete, in call order.
func (s *Store) UserDeletes() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]uuid.UUID(nil), s.userDeletes...)
}

// Suggester returns the user who suggested the highlight, if any.
func (s *Store) Suggester(highlightID uuid.UUID) (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.suggesters[highlightID]
	return id, ok
}

func now() time.Time { return time.Now().UTC() }

// Users implements the user store.
type Users struct{ s *Store }

func (u *Users) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *Users) List(_ context.Context) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	out := make([]models.User, 0, len(u.s.users))
	for _, user := range u.s.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (u *Users) Create(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	u.s.users[user.ID] = *user
	return nil
}

func (u *Users) UpdateUsername(_ context.Context, id uuid.UUID, username string) error {
	return u.update(id, func(user *models.User) { user.Username = username })
}

func (u *Users) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	return u.update(id, func(user *models.User) { user.PasswordHash = passwordHash })
}

func (u *Users) SetVerified(_ context.Context, id uuid.UUID, verified bool) error {
	return u.update(id, func(user *models.User) { user.Verified = verified })
}

func (u *Users) update(id uuid.UUID, fn func(*models.User)) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&user)
	user.UpdatedAt = now()
	u.s.users[id] = user
	return nil
}

// Delete removes the user and cascades to their feedback and suggestions.
func (u *Users) Delete(_ context.Context, id uuid.UUID) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.userDeletes = append(u.s.userDeletes, id)
	delete(u.s.users, id)
	for fid, f := range u.s.feedbacks {
		if f.UserID == id {
			delete(u.s.feedbacks, fid)
		}
	}
	for hid, uid := range u.s.suggesters {
		if uid == id {
			delete(u.s.suggesters, hid)
		}
	}
	return nil
}

// Highlights implements the highlight store.
type Highlights struct{ s *Store }

func (h *Highlights) FindByID(_ context.Context, id uuid.UUID) (*models.Highlight, error) {
	h.s.mu.RLock()
	defer h.s.mu.RUnlock()
	hl, ok := h.s.highlights[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &hl, nil
}

func (h *Highlights) List(_ context.Context, status repository.HighlightStatus) ([]models.Highlight, error) {
	var keep func(models.Highlight) bool
	switch status {
	case repository.HighlightsApproved:
		keep = func(hl models.Highlight) bool { return hl.IsApproved }
	case repository.HighlightsPending:
		keep = func(hl models.Highlight) bool { return !hl.IsApproved }
	case repository.HighlightsAll:
		keep = func(models.Highlight) bool { return true }
	default:
		return nil, fmt.Errorf("list highlights: unknown status %q", status)
	}

	h.s.mu.RLock()
	defer h.s.mu.RUnlock()
	out := []models.Highlight{}
	for _, hl := range h.s.highlights {
		if keep(hl) {
			out = append(out, hl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (h *Highlights) ListByTour(_ context.Context, tourID uuid.UUID, approvedOnly bool) ([]models.Highlight, error) {
	h.s.mu.RLock()
	defer h.s.mu.RUnlock()
	return h.s.tourHighlightsLocked(tourID, approvedOnly), nil
}

func (h *Highlights) Create(_ context.Context, hl *models.Highlight, suggesterID *uuid.UUID) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	if suggesterID != nil {
		if _, ok := h.s.users[*suggesterID]; !ok {
			return repository.ErrInvalidReference
		}
	}
	if hl.ID == uuid.Nil {
		hl.ID = uuid.New()
	}
	hl.CreatedAt = now()
	hl.UpdatedAt = hl.CreatedAt
	h.s.highlights[hl.ID] = *hl
	if suggesterID != nil {
		h.s.suggesters[hl.ID] = *suggesterID
	}
	return nil
}

func (h *Highlights) Update(_ context.Context, hl *models.Highlight) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	existing, ok := h.s.highlights[hl.ID]
	if !ok {
		return repository.ErrNotFound
	}
	hl.IsApproved = existing.IsApproved
	hl.CreatedAt = existing.CreatedAt
	hl.UpdatedAt = now()
	h.s.highlights[hl.ID] = *hl
	return nil
}

func (h *Highlights) Approve(_ context.Context, id uuid.UUID) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	hl, ok := h.s.highlights[id]
	if !ok {
		return repository.ErrNotFound
	}
	hl.IsApproved = true
	hl.UpdatedAt = now()
	h.s.highlights[id] = hl
	return nil
}

func (h *Highlights) Delete(_ context.Context, id uuid.UUID) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	delete(h.s.highlights, id)
	delete(h.s.suggesters, id)
	for tid, ids := range h.s.tourHighlights {
		h.s.tourHighlights[tid] = without(ids, id)
	}
	for fid, f := range h.s.feedbacks {
		if f.HighlightID != nil && *f.HighlightID == id {
			delete(h.s.feedbacks, fid)
		}
	}
	return nil
}

// Tours implements the tour store.
type Tours struct{ s *Store }

func (t *Tours) FindByID(_ context.Context, id uuid.UUID) (*models.Tour, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	tour, ok := t.s.tours[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	tour.Highlights = t.s.tourHighlightsLocked(id, false)
	return &tour, nil
}

func (t *Tours) List(_ context.Context) ([]models.Tour, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	out := make([]models.Tour, 0, len(t.s.tours))
	for _, tour := range t.s.tours {
		out = append(out, tour)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (t *Tours) Create(_ context.Context, tour *models.Tour, highlightIDs []uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if err := t.s.checkHighlightsLocked(highlightIDs); err != nil {
		return err
	}
	if tour.ID == uuid.Nil {
		tour.ID = uuid.New()
	}
	tour.CreatedAt = now()
	tour.UpdatedAt = tour.CreatedAt
	stored := *tour
	stored.Highlights = nil
	t.s.tours[tour.ID] = stored
	t.s.tourHighlights[tour.ID] = append([]uuid.UUID(nil), highlightIDs...)
	return nil
}

func (t *Tours) Update(_ context.Context, tour *models.Tour, highlightIDs []uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	existing, ok := t.s.tours[tour.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := t.s.checkHighlightsLocked(highlightIDs); err != nil {
		return err
	}
	tour.CreatedAt = existing.CreatedAt
	tour.UpdatedAt = now()
	stored := *tour
	stored.Highlights = nil
	t.s.tours[tour.ID] = stored
	if highlightIDs != nil {
		t.s.tourHighlights[tour.ID] = append([]uuid.UUID(nil), highlightIDs...)
	}
	return nil
}

func (t *Tours) Delete(_ context.Context, id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	delete(t.s.tours, id)
	delete(t.s.tourHighlights, id)
	for fid, f := range t.s.feedbacks {
		if f.TourID != nil && *f.TourID == id {
			delete(t.s.feedbacks, fid)
		}
	}
	return nil
}

// Feedbacks implements the feedback store.
type Feedbacks struct{ s *Store }

func (f *Feedbacks) FindByID(_ context.Context, id uuid.UUID) (*models.Feedback, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	fb, ok := f.s.feedbacks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &fb, nil
}

func (f *Feedbacks) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Feedback, error) {
	return f.filter(func(fb models.Feedback) bool { return fb.UserID == userID }), nil
}

func (f *Feedbacks) ListByHighlight(_ context.Context, highlightID uuid.UUID, approvedOnly bool) ([]models.Feedback, error) {
	return f.filter(func(fb models.Feedback) bool {
		return fb.HighlightID != nil && *fb.HighlightID == highlightID && (fb.IsApproved || !approvedOnly)
	}), nil
}

func (f *Feedbacks) ListByTour(_ context.Context, tourID uuid.UUID, approvedOnly bool) ([]models.Feedback, error) {
	return f.filter(func(fb models.Feedback) bool {
		return fb.TourID != nil && *fb.TourID == tourID && (fb.IsApproved || !approvedOnly)
	}), nil
}

func (f *Feedbacks) Create(_ context.Context, fb *models.Feedback) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[fb.UserID]; !ok {
		return repository.ErrInvalidReference
	}
	if fb.HighlightID != nil {
		if _, ok := f.s.highlights[*fb.HighlightID]; !ok {
			return repository.ErrInvalidReference
		}
	}
	if fb.TourID != nil {
		if _, ok := f.s.tours[*fb.TourID]; !ok {
			return repository.ErrInvalidReference
		}
	}
	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	fb.CreatedAt = now()
	fb.UpdatedAt = fb.CreatedAt
	f.s.feedbacks[fb.ID] = *fb
	return nil
}

func (f *Feedbacks) Update(_ context.Context, fb *models.Feedback) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	existing, ok := f.s.feedbacks[fb.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Rating = fb.Rating
	existing.Comment = fb.Comment
	existing.UpdatedAt = now()
	f.s.feedbacks[fb.ID] = existing
	fb.UpdatedAt = existing.UpdatedAt
	return nil
}

func (f *Feedbacks) Approve(_ context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	fb, ok := f.s.feedbacks[id]
	if !ok {
		return repository.ErrNotFound
	}
	fb.IsApproved = true
	fb.UpdatedAt = now()
	f.s.feedbacks[id] = fb
	return nil
}

func (f *Feedbacks) Delete(_ context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.feedbacks, id)
	return nil
}

func (f *Feedbacks) filter(keep func(models.Feedback) bool) []models.Feedback {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	out := []models.Feedback{}
	for _, fb := range f.s.feedbacks {
		if keep(fb) {
			out = append(out, fb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) tourHighlightsLocked(tourID uuid.UUID, approvedOnly bool) []models.Highlight {
	out := []models.Highlight{}
	for _, hid := range s.tourHighlights[tourID] {
		hl, ok := s.highlights[hid]
		if !ok || (approvedOnly && !hl.IsApproved) {
			continue
		}
		out = append(out, hl)
	}
	return out
}

func (s *Store) checkHighlightsLocked(ids []uuid.UUID) error {
	for _, id := range ids {
		if _, ok := s.highlights[id]; !ok {
			return repository.ErrInvalidReference
		}
	}
	return nil
}

func without(ids []uuid.UUID, drop uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
