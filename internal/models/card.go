package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultEase is the starting difficulty factor for a new card.
	DefaultEase = 2.5
	// MinEase is the floor the difficulty factor never drops below.
	MinEase = 1.3
)

// Card is one vocabulary item under review. Due is an absolute timestamp in
// milliseconds since the Unix epoch; IntervalDays counts days until the next
// review. Empty string means "absent" for the optional display fields.
type Card struct {
	ID           string  `json:"id"`
	Word         string  `json:"word"`
	IPA          string  `json:"ipa"`
	Audio        string  `json:"audio"`
	Meaning      string  `json:"meaning"`
	Example      string  `json:"example"`
	Ease         float64 `json:"ease"`
	IntervalDays int     `json:"interval"`
	Due          int64   `json:"due"`
	CreatedAt    int64   `json:"created_at"`
}

// NewCard creates a card with default scheduling state: ease 2.5, interval 0
// and due immediately. The id is fresh and never reused.
func NewCard(word string, now time.Time) Card {
	return Card{
		ID:        uuid.NewString(),
		Word:      word,
		Ease:      DefaultEase,
		Due:       now.UnixMilli(),
		CreatedAt: now.UnixMilli(),
	}
}

// IsDue reports whether the card is eligible for review at the given time.
func (c Card) IsDue(now time.Time) bool {
	return c.Due <= now.UnixMilli()
}
