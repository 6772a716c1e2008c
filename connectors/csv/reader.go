package csv

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"incident-stats/domain/incident"
)

// ErrTagMissingColumn marks exports that lack a required header.
var ErrTagMissingColumn = goerr.NewTag("missing_column")

// RequiredColumns must be present in every incident export.
var RequiredColumns = []string{incident.ColWeekNumber}

// ReadRows loads the incident export at path.
func ReadRows(path string) ([]incident.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open input", goerr.V("path", path))
	}
	defer f.Close()

	rows, err := ParseRows(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input", goerr.V("path", path))
	}
	return rows, nil
}

// ParseRows reads a header row followed by data rows. Short rows are
// tolerated: absent cells read as blank.
func ParseRows(r io.Reader) ([]incident.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, goerr.New("input has no header row")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read header")
	}
	idx := indexMap(head)
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, goerr.New("input is missing a required column",
				goerr.T(ErrTagMissingColumn), goerr.V("column", col))
		}
	}

	var rows []incident.RawRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read row")
		}
		line, _ := cr.FieldPos(0)
		fields := make(map[string]string, len(idx))
		for name, i := range idx {
			if i < len(rec) {
				fields[name] = rec[i]
			}
		}
		rows = append(rows, incident.RawRow{Line: line, Fields: fields})
	}
	return rows, nil
}

func indexMap(headers []string) map[string]int {
	m := map[string]int{}
	for i, h := range headers {
		h = strings.TrimPrefix(h, "\ufeff")
		m[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return m
}
