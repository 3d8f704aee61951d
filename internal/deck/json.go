package deck

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/vytor/wordflash/internal/models"
)

// ParseJSON reads a JSON array of flat objects, each treated as one raw row
// under the same key-fallback rules as CSV rows. Non-string scalar values
// are stringified so a previously exported collection can be re-imported.
func ParseJSON(r io.Reader) ([]Row, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode json import")
	}

	rows := make([]Row, 0, len(raw))
	for _, obj := range raw {
		row := make(Row, len(obj))
		for k, v := range obj {
			switch val := v.(type) {
			case string:
				row[k] = val
			case nil:
				row[k] = ""
			default:
				row[k] = fmt.Sprintf("%v", val)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// exportCard is the wire shape of one exported card. Scheduling state rides
// along, but a re-import starts fresh: only the content fields survive the
// round trip.
type exportCard struct {
	Word     string  `json:"word"`
	IPA      string  `json:"ipa"`
	Audio    string  `json:"audio"`
	Meaning  string  `json:"meaning"`
	Example  string  `json:"example"`
	Ease     float64 `json:"ease"`
	Interval int     `json:"interval"`
	Due      int64   `json:"due"`
}

// ExportJSON writes the collection as a pretty-printed JSON array.
func ExportJSON(w io.Writer, cards []models.Card) error {
	out := make([]exportCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, exportCard{
			Word:     c.Word,
			IPA:      c.IPA,
			Audio:    c.Audio,
			Meaning:  c.Meaning,
			Example:  c.Example,
			Ease:     c.Ease,
			Interval: c.IntervalDays,
			Due:      c.Due,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "encode json export")
	}
	return nil
}
