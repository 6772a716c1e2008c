package incident

import (
	"math"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ErrTagInvalidWeek marks rows whose week number is missing or not an integer.
var ErrTagInvalidWeek = goerr.NewTag("invalid_week")

// ParseCost parses a cost cell. Spaces are thousands separators and a comma
// is the decimal separator, so "1 234,50" is 1234.50. Blank or unparsable
// cells return nil.
func ParseCost(s string) *float64 {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseResolutionMinutes returns nil unless s is made of digits only.
func ParseResolutionMinutes(s string) *int {
	n, ok := parseDigits(s)
	if !ok {
		return nil
	}
	return &n
}

// ParseAffectedUsers returns 0 unless s is made of digits only.
func ParseAffectedUsers(s string) int {
	n, _ := parseDigits(s)
	return n
}

// ParseImpactScore returns 0 for blank or unparsable cells.
func ParseImpactScore(s string) float64 {
	v, _ := parseFinite(s)
	return v
}

// parseFinite parses a plain float, rejecting blanks, NaN and infinities.
func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseDigits(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Normalize converts a raw row into a Record. Malformed numeric fields
// degrade to nil or zero; only a missing or non-integer week number fails.
func Normalize(row RawRow) (Record, error) {
	rawWeek := strings.TrimSpace(row.Get(ColWeekNumber))
	week, err := strconv.Atoi(rawWeek)
	if err != nil {
		msg := "week number is not an integer"
		if rawWeek == "" {
			msg = "week number is missing"
		}
		return Record{}, goerr.New(msg,
			goerr.T(ErrTagInvalidWeek),
			goerr.V("line", row.Line),
			goerr.V("field", ColWeekNumber),
			goerr.V("ticket_id", row.Get(ColTicketID)),
			goerr.V("value", rawWeek))
	}

	return Record{
		Line:              row.Line,
		TicketID:          strings.TrimSpace(row.Get(ColTicketID)),
		Severity:          ParseSeverity(row.Get(ColSeverity)),
		Cost:              ParseCost(row.Get(ColCost)),
		ResolutionMinutes: ParseResolutionMinutes(row.Get(ColResolutionMinutes)),
		AffectedUsers:     ParseAffectedUsers(row.Get(ColAffectedUsers)),
		ImpactScore:       ParseImpactScore(row.Get(ColImpactScore)),
		WeekNumber:        week,
		DeviceHostname:    strings.TrimSpace(row.Get(ColDeviceHostname)),
		Site:              strings.TrimSpace(row.Get(ColSite)),
		Category:          strings.TrimSpace(row.Get(ColCategory)),
		ReportedBy:        strings.TrimSpace(row.Get(ColReportedBy)),
		WarningsLastWeeks: strings.TrimSpace(row.Get(ColWarningsLastWeeks)),
	}, nil
}

// NormalizeAll normalizes every row. Rows that fail are reported in errs and
// left out of records; the remaining records keep their input order.
func NormalizeAll(rows []RawRow) (records []Record, errs []error) {
	records = make([]Record, 0, len(rows))
	for _, row := range rows {
		rec, err := Normalize(row)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, rec)
	}
	return records, errs
}

// Degradations counts the fields of a row that were present but could not
// be parsed and fell back to null or zero.
func Degradations(row RawRow, rec Record) int {
	n := 0
	if strings.TrimSpace(row.Get(ColCost)) != "" && rec.Cost == nil {
		n++
	}
	if strings.TrimSpace(row.Get(ColResolutionMinutes)) != "" && rec.ResolutionMinutes == nil {
		n++
	}
	if s := strings.TrimSpace(row.Get(ColAffectedUsers)); s != "" {
		if _, ok := parseDigits(s); !ok {
			n++
		}
	}
	if s := strings.TrimSpace(row.Get(ColImpactScore)); s != "" {
		if _, ok := parseFinite(s); !ok {
			n++
		}
	}
	if strings.TrimSpace(row.Get(ColSeverity)) != "" && rec.Severity == SeverityUnknown {
		n++
	}
	return n
}
