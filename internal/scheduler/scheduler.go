package scheduler

import (
	"math"
	"time"

	"github.com/vytor/wordflash/internal/models"
)

const dayMillis = 86_400_000

// ApplyRating returns a copy of the card with ease, interval and due updated
// for the given rating. It is a pure function of the card, the rating and
// now; all other fields pass through unchanged.
//
// Unknown ratings are a deliberate no-op: the card comes back untouched
// rather than raising an error.
func ApplyRating(card models.Card, rating Rating, now time.Time) models.Card {
	switch rating {
	case Again:
		card.Ease = math.Max(card.Ease-0.2, models.MinEase)
		card.IntervalDays = 1
	case Hard:
		next := int(math.Ceil(float64(card.IntervalDays) * 1.2))
		if next < 1 {
			next = 1
		}
		card.IntervalDays = next
		card.Ease += 0.05
	case Good:
		if card.IntervalDays > 0 {
			card.IntervalDays = int(math.Ceil(float64(card.IntervalDays) * card.Ease))
		} else {
			card.IntervalDays = 2
		}
		card.Ease += 0.1
	default:
		return card
	}

	card.Due = now.UnixMilli() + int64(card.IntervalDays)*dayMillis
	return card
}

// PickNext returns the next card eligible for review: the first card in
// collection order whose due timestamp has passed. Selection is strictly
// insertion-ordered; an earlier due date never jumps the queue. The second
// return value is false when nothing is due.
func PickNext(cards []models.Card, now time.Time) (models.Card, bool) {
	nowMillis := now.UnixMilli()
	for _, c := range cards {
		if c.Due <= nowMillis {
			return c, true
		}
	}
	return models.Card{}, false
}
