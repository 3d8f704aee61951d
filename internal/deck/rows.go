package deck

import (
	"strings"
	"time"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
)

// Row is one raw imported record: a string-keyed mapping of column name to
// cell value, before any normalization.
type Row map[string]string

// Candidate key names tried in priority order when resolving card fields
// from a raw row.
var (
	wordKeys    = []string{"word", "Word", "term", "Term"}
	ipaKeys     = []string{"ipa", "IPA", "Ipa"}
	audioKeys   = []string{"audio", "Audio"}
	meaningKeys = []string{"meaning", "Meaning"}
	exampleKeys = []string{"example", "Example"}
)

// ResolveField returns the first non-empty trimmed value among the candidate
// keys, or the empty string when none match.
func ResolveField(row Row, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(row[k]); v != "" {
			return v
		}
	}
	return ""
}

// ParseRows normalizes raw rows into cards with default scheduling state.
// Rows whose resolved word is empty after trimming are dropped.
func ParseRows(rows []Row, now time.Time) []models.Card {
	log := logger.Default().WithPrefix("deck")

	cards := make([]models.Card, 0, len(rows))
	for i, row := range rows {
		word := ResolveField(row, wordKeys...)
		if word == "" {
			log.Debug("skipping row %d: no word", i)
			continue
		}
		card := models.NewCard(word, now)
		card.IPA = ResolveField(row, ipaKeys...)
		card.Audio = ResolveField(row, audioKeys...)
		card.Meaning = ResolveField(row, meaningKeys...)
		card.Example = ResolveField(row, exampleKeys...)
		cards = append(cards, card)
	}
	log.Debug("parsed %d cards from %d rows", len(cards), len(rows))
	return cards
}
