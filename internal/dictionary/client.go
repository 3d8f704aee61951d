package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vytor/wordflash/internal/logger"
)

// DefaultBaseURL points at the free dictionary API.
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Entry is the result of a word lookup. All fields default to empty.
type Entry struct {
	IPA     string `json:"ipa"`
	Audio   string `json:"audio"`
	Meaning string `json:"meaning"`
}

// Client looks words up against a dictionary HTTP API. Lookup never returns
// an error: any failure resolves to an all-empty Entry so an import is never
// blocked by the network.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the dictionary endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets the per-lookup HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.Default().WithPrefix("dictionary"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiEntry struct {
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		Definitions []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Lookup fetches phonetic, audio and meaning data for a word. The first
// phonetic with text wins for IPA, the first with an audio reference wins
// for Audio, and the first definition of the first meaning wins for Meaning.
func (c *Client) Lookup(ctx context.Context, word string) Entry {
	log := logger.FromContext(ctx).WithPrefix("dictionary").WithField("word", word)

	lookupURL := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(word))
	log.Debug("looking up: %s", lookupURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		log.Warn("failed to create request: %v", err)
		return Entry{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("lookup failed: %v", err)
		return Entry{}
	}
	defer resp.Body.Close()

	log.Debug("lookup response in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug("lookup returned status %d, no entry", resp.StatusCode)
		return Entry{}
	}

	var payload []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Warn("failed to decode lookup response: %v", err)
		return Entry{}
	}
	if len(payload) == 0 {
		return Entry{}
	}

	var entry Entry
	first := payload[0]
	for _, p := range first.Phonetics {
		if entry.IPA == "" && p.Text != "" {
			entry.IPA = p.Text
		}
		if entry.Audio == "" && p.Audio != "" {
			entry.Audio = p.Audio
		}
		if entry.IPA != "" && entry.Audio != "" {
			break
		}
	}
	if len(first.Meanings) > 0 && len(first.Meanings[0].Definitions) > 0 {
		entry.Meaning = first.Meanings[0].Definitions[0].Definition
	}

	log.Debug("lookup resolved: ipa=%q audio_set=%t meaning_set=%t", entry.IPA, entry.Audio != "", entry.Meaning != "")
	return entry
}
