package api

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/wordflash/internal/deck"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/scheduler"
	"github.com/vytor/wordflash/internal/worker"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// reviewCard is the wire shape of the card under review. Meaning and
// example stay hidden until the answer is revealed.
type reviewCard struct {
	ID      string `json:"id"`
	Word    string `json:"word"`
	IPA     string `json:"ipa"`
	Audio   string `json:"audio"`
	Meaning string `json:"meaning,omitempty"`
	Example string `json:"example,omitempty"`
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	card, revealed, ok := s.Session.Current()
	if !ok {
		log.Debug("no cards due for review")
		respondJSON(w, r, http.StatusOK, map[string]any{"due": false})
		return
	}

	out := reviewCard{
		ID:    card.ID,
		Word:  card.Word,
		IPA:   card.IPA,
		Audio: card.Audio,
	}
	if revealed {
		out.Meaning = card.Meaning
		out.Example = card.Example
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"due":      true,
		"revealed": revealed,
		"card":     out,
	})
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	s.Session.Reveal()
	s.handleReview(w, r)
}

func (s *Server) handleHide(w http.ResponseWriter, r *http.Request) {
	s.Session.Hide()
	s.handleReview(w, r)
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id := chi.URLParam(r, "id")
	rating := scheduler.Rating(strings.TrimSpace(r.FormValue("rating")))

	log = log.WithFields(map[string]any{"card_id": id, "rating": rating})
	log.Debug("rating card")

	// Unknown ratings are passed through: the session treats them as a
	// no-op rather than an error.
	if err := s.Session.Rate(r.Context(), id, rating); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("card rated")
	s.handleReview(w, r)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("failed to read import body"))
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		if strings.Contains(r.Header.Get("Content-Type"), "json") {
			format = "json"
		} else {
			format = "csv"
		}
	}

	var rows []deck.Row
	switch format {
	case "csv":
		rows, err = deck.ParseCSV(bytes.NewReader(body))
	case "json":
		rows, err = deck.ParseJSON(bytes.NewReader(body))
	default:
		handleError(w, r, errors.NewValidationError("format", "must be csv or json"))
		return
	}
	if err != nil {
		// Malformed input aborts the whole import; the collection is untouched.
		log.Warn("import rejected: %v", err)
		handleError(w, r, errors.NewBadRequestError("unparsable import file: "+err.Error()))
		return
	}

	cards := deck.ParseRows(rows, time.Now())
	if len(cards) == 0 {
		respondJSON(w, r, http.StatusOK, map[string]any{"queued": 0})
		return
	}

	s.ImportPool.Submit(&worker.ImportCardsJob{
		Session:  s.Session,
		Importer: s.Importer,
		Cards:    cards,
		Source:   format,
	})

	log.Info("queued import of %d cards (%s)", len(cards), format)
	respondJSON(w, r, http.StatusAccepted, map[string]any{"queued": len(cards)})
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := s.Session.Cards()
	if cards == nil {
		cards = []models.Card{}
	}
	respondJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="wordflash.json"`)
	if err := deck.ExportJSON(w, s.Session.Cards()); err != nil {
		logger.FromContext(r.Context()).Error("json export failed: %v", err)
	}
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="wordflash.csv"`)
	if err := deck.ExportCSV(w, s.Session.Cards()); err != nil {
		logger.FromContext(r.Context()).Error("csv export failed: %v", err)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	total, due := s.Session.Stats()
	respondJSON(w, r, http.StatusOK, map[string]any{
		"total":   total,
		"due":     due,
		"pending": s.ImportPool.QueueSize(),
	})
}
