package session

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/scheduler"
	"github.com/vytor/wordflash/internal/store"
)

// Session orchestrates the review loop: it owns the in-memory collection,
// tracks which card is currently shown and whether its answer is revealed,
// and runs the scheduler on every rating. All mutations go back to the
// store synchronously, so in-memory state and the persisted blob agree.
//
// Single-writer discipline: every entry point takes the mutex, so there is
// one logical thread of control over the collection.
type Session struct {
	mu       sync.Mutex
	store    *store.Store
	cards    []models.Card
	current  string // id of the card being shown, "" when nothing is due
	revealed bool
	now      func() time.Time
	log      *logger.Logger
}

// New creates a Session over the given store. The clock defaults to
// time.Now and is injectable for tests.
func New(st *store.Store) *Session {
	return &Session{
		store: st,
		now:   time.Now,
		log:   logger.Default().WithPrefix("session"),
	}
}

// SetClock overrides the session clock.
func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load pulls the persisted collection into memory and selects the first due
// card. Called once at startup.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.cards = cards
	s.pickLocked()
	s.log.Info("session loaded: %d cards, current=%q", len(s.cards), s.current)
	return nil
}

// Current returns the card being shown and whether its answer is revealed.
// ok is false when nothing is due.
func (s *Session) Current() (card models.Card, revealed bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.findLocked(s.current)
	if !found {
		return models.Card{}, false, false
	}
	return *c, s.revealed, true
}

// Reveal shows the answer side of the current card.
func (s *Session) Reveal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != "" {
		s.revealed = true
	}
}

// Hide flips the current card back to its question side.
func (s *Session) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revealed = false
}

// Rate applies the rating to the card with the given id, persists the
// updated collection and re-selects the next due card. An unknown rating is
// a no-op: the card is left untouched and no error is returned.
func (s *Session) Rate(ctx context.Context, id string, rating scheduler.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("session")

	card, found := s.findLocked(id)
	if !found {
		return apperrors.NewNotFoundError("card", id)
	}

	if !rating.IsValid() {
		log.Warn("ignoring unknown rating %q for card %s", rating, id)
		return nil
	}

	updated := scheduler.ApplyRating(*card, rating, s.now())
	*card = updated
	log.Debug("rated card %s: rating=%s interval=%d ease=%.2f", id, rating, updated.IntervalDays, updated.Ease)

	if err := s.store.Save(ctx, s.cards); err != nil {
		return err
	}

	s.pickLocked()
	return nil
}

// Append adds cards to the end of the collection and persists it. Imports
// call this one card at a time, so an abandoned import keeps whatever was
// already appended.
func (s *Session) Append(ctx context.Context, cards ...models.Card) error {
	if len(cards) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards = append(s.cards, cards...)
	if err := s.store.Save(ctx, s.cards); err != nil {
		return err
	}
	s.pickLocked()
	return nil
}

// Cards returns a copy of the collection in insertion order.
func (s *Session) Cards() []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Stats returns the collection size and how many cards are currently due.
func (s *Session) Stats() (total, due int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, c := range s.cards {
		if c.IsDue(now) {
			due++
		}
	}
	return len(s.cards), due
}

// Refresh re-runs due-card selection against the current clock. Selection is
// event-triggered elsewhere (after ratings and imports); this exists for
// callers that want to re-check after idle time.
func (s *Session) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pickLocked()
}

// pickLocked re-selects the current card: first due card in insertion
// order. Changing cards resets answer visibility.
func (s *Session) pickLocked() {
	next, ok := scheduler.PickNext(s.cards, s.now())
	if !ok {
		s.current = ""
		s.revealed = false
		return
	}
	if next.ID != s.current {
		s.current = next.ID
		s.revealed = false
	}
}

func (s *Session) findLocked(id string) (*models.Card, bool) {
	if id == "" {
		return nil, false
	}
	for i := range s.cards {
		if s.cards[i].ID == id {
			return &s.cards[i], true
		}
	}
	return nil, false
}
