package deck

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vytor/wordflash/internal/models"
)

// exportHeader is the fixed column order for CSV export. The importer
// resolves the same names back, so export/import round-trips content fields.
var exportHeader = []string{"word", "ipa", "audio", "meaning", "example", "ease", "interval", "due"}

// ParseCSV reads a naive comma-separated file: the first line names the
// columns, each following line is split positionally against that header.
// There is no quoting or escaping support; embedded commas split. Ragged
// lines pad missing trailing cells with empty strings.
func ParseCSV(r io.Reader) ([]Row, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, "read csv header")
		}
		return nil, errors.New("csv input is empty")
	}

	header := strings.Split(scanner.Text(), ",")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read csv body")
	}
	return rows, nil
}

// ExportCSV writes the collection as comma-separated lines under the fixed
// header. Fields are joined verbatim, matching the importer's no-quoting
// limitation.
func ExportCSV(w io.Writer, cards []models.Card) error {
	if _, err := fmt.Fprintln(w, strings.Join(exportHeader, ",")); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, c := range cards {
		fields := []string{
			c.Word,
			c.IPA,
			c.Audio,
			c.Meaning,
			c.Example,
			strconv.FormatFloat(c.Ease, 'g', -1, 64),
			strconv.Itoa(c.IntervalDays),
			strconv.FormatInt(c.Due, 10),
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}
	return nil
}
