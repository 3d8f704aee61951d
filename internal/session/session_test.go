package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/scheduler"
	"github.com/vytor/wordflash/internal/session"
	"github.com/vytor/wordflash/internal/store"
	"github.com/vytor/wordflash/internal/testutil"
)

type SessionSuite struct {
	suite.Suite
	store *store.Store
	sess  *session.Session
	now   time.Time
}

func (s *SessionSuite) SetupTest() {
	s.store = testutil.NewTestStore(s.T())
	s.sess = session.New(s.store)
	s.now = time.Now()
	s.sess.SetClock(func() time.Time { return s.now })
	s.Require().NoError(s.sess.Load(context.Background()))
}

func (s *SessionSuite) appendWords(words ...string) []models.Card {
	cards := make([]models.Card, 0, len(words))
	for _, w := range words {
		cards = append(cards, models.NewCard(w, s.now))
	}
	s.Require().NoError(s.sess.Append(context.Background(), cards...))
	return cards
}

func (s *SessionSuite) TestEmptyCollectionHasNoCurrent() {
	_, _, ok := s.sess.Current()
	s.Assert().False(ok)
}

func (s *SessionSuite) TestAppendSelectsFirstDueCard() {
	cards := s.appendWords("cat", "dog")

	current, revealed, ok := s.sess.Current()
	s.Require().True(ok)
	s.Assert().Equal(cards[0].ID, current.ID, "first-inserted due card is shown")
	s.Assert().False(revealed)
}

func (s *SessionSuite) TestRevealAndHide() {
	s.appendWords("cat")

	s.sess.Reveal()
	_, revealed, ok := s.sess.Current()
	s.Require().True(ok)
	s.Assert().True(revealed)

	s.sess.Hide()
	_, revealed, _ = s.sess.Current()
	s.Assert().False(revealed)
}

func (s *SessionSuite) TestRevealWithoutCurrentIsNoOp() {
	s.sess.Reveal()
	_, revealed, ok := s.sess.Current()
	s.Assert().False(ok)
	s.Assert().False(revealed)
}

func (s *SessionSuite) TestRateReschedulesAndAdvances() {
	ctx := context.Background()
	cards := s.appendWords("cat", "dog")

	s.Require().NoError(s.sess.Rate(ctx, cards[0].ID, scheduler.Good))

	// cat is now due in 2 days, so dog comes up.
	current, _, ok := s.sess.Current()
	s.Require().True(ok)
	s.Assert().Equal(cards[1].ID, current.ID)

	// The reschedule hit the store too.
	persisted, err := s.store.Load(ctx)
	s.Require().NoError(err)
	s.Require().Len(persisted, 2)
	s.Assert().Equal(2, persisted[0].IntervalDays)
	s.Assert().InDelta(2.6, persisted[0].Ease, 1e-9)
}

func (s *SessionSuite) TestRateAllCardsLeavesNothingDue() {
	ctx := context.Background()
	cards := s.appendWords("cat", "dog")

	s.Require().NoError(s.sess.Rate(ctx, cards[0].ID, scheduler.Good))
	s.Require().NoError(s.sess.Rate(ctx, cards[1].ID, scheduler.Again))

	_, _, ok := s.sess.Current()
	s.Assert().False(ok, "everything is scheduled in the future")

	total, due := s.sess.Stats()
	s.Assert().Equal(2, total)
	s.Assert().Equal(0, due)
}

func (s *SessionSuite) TestRateUnknownRatingIsNoOp() {
	ctx := context.Background()
	cards := s.appendWords("cat")

	s.Require().NoError(s.sess.Rate(ctx, cards[0].ID, scheduler.Rating("meh")))

	current, _, ok := s.sess.Current()
	s.Require().True(ok)
	s.Assert().Equal(cards[0].ID, current.ID, "card stays current, untouched")
	s.Assert().Equal(0, current.IntervalDays)
	s.Assert().Equal(models.DefaultEase, current.Ease)
}

func (s *SessionSuite) TestRateUnknownCard() {
	err := s.sess.Rate(context.Background(), "no-such-id", scheduler.Good)
	s.Assert().Error(err)
}

func (s *SessionSuite) TestRateResetsReveal() {
	ctx := context.Background()
	cards := s.appendWords("cat", "dog")

	s.sess.Reveal()
	s.Require().NoError(s.sess.Rate(ctx, cards[0].ID, scheduler.Good))

	_, revealed, ok := s.sess.Current()
	s.Require().True(ok)
	s.Assert().False(revealed, "advancing to the next card hides the answer")
}

func (s *SessionSuite) TestCardBecomesDueAgainAfterClockAdvance() {
	ctx := context.Background()
	cards := s.appendWords("cat")

	s.Require().NoError(s.sess.Rate(ctx, cards[0].ID, scheduler.Again))
	_, _, ok := s.sess.Current()
	s.Require().False(ok)

	// One day later the card is back.
	s.now = s.now.Add(25 * time.Hour)
	s.sess.Refresh()

	current, _, ok := s.sess.Current()
	s.Require().True(ok)
	s.Assert().Equal(cards[0].ID, current.ID)
}

func (s *SessionSuite) TestLoadRestoresPersistedCollection() {
	ctx := context.Background()
	cards := s.appendWords("cat", "dog")

	// A second session over the same store sees the same collection.
	other := session.New(s.store)
	other.SetClock(func() time.Time { return s.now })
	s.Require().NoError(other.Load(ctx))

	loaded := other.Cards()
	s.Require().Len(loaded, 2)
	s.Assert().Equal(cards[0].ID, loaded[0].ID)

	current, _, ok := other.Current()
	s.Require().True(ok)
	s.Assert().Equal(cards[0].ID, current.ID)
}

func (s *SessionSuite) TestCardsReturnsCopy() {
	s.appendWords("cat")

	cards := s.sess.Cards()
	cards[0].Word = "mutated"

	fresh := s.sess.Cards()
	s.Assert().Equal("cat", fresh[0].Word)
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}
