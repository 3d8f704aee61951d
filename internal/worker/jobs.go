package worker

import (
	"context"
	"fmt"

	"github.com/vytor/wordflash/internal/deck"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/session"
)

// ImportCardsJob enriches and appends parsed cards in the background so a
// slow dictionary lookup never blocks the request path. Cards are processed
// strictly one at a time in input order, each appended (and persisted) as
// soon as it is ready; cancelling mid-import keeps what was already added.
type ImportCardsJob struct {
	Session  *session.Session
	Importer *deck.Importer
	Cards    []models.Card
	Source   string
}

func (j *ImportCardsJob) Name() string {
	return fmt.Sprintf("import-cards[%s,%d]", j.Source, len(j.Cards))
}

func (j *ImportCardsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	added := 0
	for _, card := range j.Cards {
		select {
		case <-ctx.Done():
			log.Warn("import abandoned after %d of %d cards", added, len(j.Cards))
			return ctx.Err()
		default:
		}

		card = j.Importer.Enrich(ctx, card)
		if err := j.Session.Append(ctx, card); err != nil {
			log.Error("failed to append card %s: %v", card.Word, err)
			return err
		}
		added++
	}

	log.Info("imported %d cards", added)
	return nil
}
