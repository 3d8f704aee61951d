package deck_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/deck"
	"github.com/vytor/wordflash/internal/models"
)

func TestResolveField(t *testing.T) {
	row := deck.Row{"Word": " cat ", "term": "feline"}

	assert.Equal(t, "cat", deck.ResolveField(row, "word", "Word", "term", "Term"),
		"first non-empty candidate wins, trimmed")
	assert.Equal(t, "feline", deck.ResolveField(row, "term"))
	assert.Equal(t, "", deck.ResolveField(row, "missing"))
}

func TestResolveField_SkipsBlankValues(t *testing.T) {
	row := deck.Row{"word": "   ", "Word": "dog"}

	assert.Equal(t, "dog", deck.ResolveField(row, "word", "Word"))
}

func TestParseRows_Defaults(t *testing.T) {
	now := time.Now()
	rows := []deck.Row{{"word": "cat", "meaning": "a small domesticated feline"}}

	cards := deck.ParseRows(rows, now)
	require.Len(t, cards, 1)

	c := cards[0]
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "cat", c.Word)
	assert.Equal(t, "a small domesticated feline", c.Meaning)
	assert.Equal(t, "", c.IPA)
	assert.Equal(t, "", c.Audio)
	assert.Equal(t, "", c.Example)
	assert.Equal(t, models.DefaultEase, c.Ease)
	assert.Equal(t, 0, c.IntervalDays)
	assert.Equal(t, now.UnixMilli(), c.Due, "new cards are due immediately")
}

func TestParseRows_DropsEmptyWordRows(t *testing.T) {
	rows := []deck.Row{
		{"word": "cat"},
		{"word": ""},
		{"word": "   "},
	}

	cards := deck.ParseRows(rows, time.Now())
	require.Len(t, cards, 1)
	assert.Equal(t, "cat", cards[0].Word)
}

func TestParseRows_KeyFallback(t *testing.T) {
	rows := []deck.Row{
		{"Term": "ephemeral", "IPA": "/ɪˈfɛm.ər.əl/", "Meaning": "short-lived"},
	}

	cards := deck.ParseRows(rows, time.Now())
	require.Len(t, cards, 1)
	assert.Equal(t, "ephemeral", cards[0].Word)
	assert.Equal(t, "/ɪˈfɛm.ər.əl/", cards[0].IPA)
	assert.Equal(t, "short-lived", cards[0].Meaning)
}

func TestParseRows_UniqueIDs(t *testing.T) {
	rows := []deck.Row{{"word": "cat"}, {"word": "cat"}, {"word": "cat"}}

	cards := deck.ParseRows(rows, time.Now())
	require.Len(t, cards, 3)
	assert.NotEqual(t, cards[0].ID, cards[1].ID)
	assert.NotEqual(t, cards[1].ID, cards[2].ID)
	assert.NotEqual(t, cards[0].ID, cards[2].ID)
}

func TestParseCSV(t *testing.T) {
	input := "word, meaning ,example\ncat,a feline,the cat sat\ndog,a canine,the dog ran"

	rows, err := deck.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "cat", rows[0]["word"])
	assert.Equal(t, "a feline", rows[0]["meaning"], "header names are trimmed, cells are not")
	assert.Equal(t, "the dog ran", rows[1]["example"])
}

func TestParseCSV_RaggedLines(t *testing.T) {
	input := "word,meaning,example\ncat,a feline\ndog"

	rows, err := deck.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "", rows[0]["example"], "missing trailing cells pad with empty")
	assert.Equal(t, "dog", rows[1]["word"])
	assert.Equal(t, "", rows[1]["meaning"])
}

func TestParseCSV_SkipsBlankLines(t *testing.T) {
	input := "word\ncat\n\ndog\n"

	rows, err := deck.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := deck.ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseJSON(t *testing.T) {
	input := `[{"word":"cat","meaning":"a feline"},{"Term":"dog","ease":2.5,"interval":3}]`

	rows, err := deck.ParseJSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "cat", rows[0]["word"])
	assert.Equal(t, "dog", rows[1]["Term"])
	assert.Equal(t, "3", rows[1]["interval"], "numbers stringify")
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := deck.ParseJSON(strings.NewReader(`{"not":"an array"`))
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	now := time.UnixMilli(1_000_000)
	card := models.NewCard("cat", now)
	card.Meaning = "a feline"
	card.Ease = 2.6
	card.IntervalDays = 6
	card.Due = 2_000_000

	var sb strings.Builder
	require.NoError(t, deck.ExportCSV(&sb, []models.Card{card}))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "word,ipa,audio,meaning,example,ease,interval,due", lines[0])
	assert.Equal(t, "cat,,,a feline,,2.6,6,2000000", lines[1])
}

func TestExportJSON_Shape(t *testing.T) {
	now := time.Now()
	card := models.NewCard("cat", now)
	card.Meaning = "a feline"

	var sb strings.Builder
	require.NoError(t, deck.ExportJSON(&sb, []models.Card{card}))

	out := sb.String()
	assert.Contains(t, out, `"word": "cat"`, "output is pretty-printed")
	assert.Contains(t, out, `"meaning": "a feline"`)
	assert.Contains(t, out, `"ease": 2.5`)
	assert.NotContains(t, out, `"id"`, "export carries content and scheduling fields only")
}

func TestExportImportRoundTrip(t *testing.T) {
	now := time.Now()

	original := deck.ParseRows([]deck.Row{
		{"word": "cat", "ipa": "/kat/", "audio": "https://example.com/cat.mp3", "meaning": "a feline", "example": "the cat sat"},
		{"word": "dog", "meaning": "a canine"},
	}, now)
	require.Len(t, original, 2)
	original[0].Ease = 2.8
	original[0].IntervalDays = 12

	var sb strings.Builder
	require.NoError(t, deck.ExportJSON(&sb, original))

	rows, err := deck.ParseJSON(strings.NewReader(sb.String()))
	require.NoError(t, err)

	reimported := deck.ParseRows(rows, now)
	require.Len(t, reimported, 2)

	for i := range original {
		assert.Equal(t, original[i].Word, reimported[i].Word)
		assert.Equal(t, original[i].IPA, reimported[i].IPA)
		assert.Equal(t, original[i].Audio, reimported[i].Audio)
		assert.Equal(t, original[i].Meaning, reimported[i].Meaning)
		assert.Equal(t, original[i].Example, reimported[i].Example)
	}

	// A reimport is a fresh import: scheduling state resets.
	assert.Equal(t, models.DefaultEase, reimported[0].Ease)
	assert.Equal(t, 0, reimported[0].IntervalDays)
	assert.NotEqual(t, original[0].ID, reimported[0].ID)
}
