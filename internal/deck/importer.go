package deck

import (
	"context"

	"github.com/vytor/wordflash/internal/dictionary"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
)

// Importer fills gaps in imported cards via the dictionary port. Enrichment
// is best-effort: the lookup never fails upward, so a dead dictionary only
// means the card keeps its empty fields.
type Importer struct {
	Lookup       dictionary.Lookup
	Autocomplete bool
}

// NewImporter creates an Importer. When autocomplete is off, or lookup is
// nil, Enrich is a pass-through.
func NewImporter(lookup dictionary.Lookup, autocomplete bool) *Importer {
	return &Importer{Lookup: lookup, Autocomplete: autocomplete}
}

// Enrich looks the card's word up and fills only the fields that are still
// empty. Imported values are never overwritten.
func (imp *Importer) Enrich(ctx context.Context, card models.Card) models.Card {
	if !imp.Autocomplete || imp.Lookup == nil {
		return card
	}
	if card.IPA != "" && card.Audio != "" && card.Meaning != "" {
		return card
	}

	log := logger.FromContext(ctx).WithPrefix("deck")
	log.Debug("enriching card: word=%s", card.Word)

	entry := imp.Lookup.Lookup(ctx, card.Word)
	if card.IPA == "" {
		card.IPA = entry.IPA
	}
	if card.Audio == "" {
		card.Audio = entry.Audio
	}
	if card.Meaning == "" {
		card.Meaning = entry.Meaning
	}
	return card
}
