package rollup

import (
	lo "github.com/samber/lo"

	"incident-stats/domain/incident"
)

// Overview holds the dataset-wide severity metrics.
type Overview struct {
	Total        int
	HighSeverity int
	// Weights of records with a known severity; unknown labels carry no
	// weight and are left out of the average.
	Weights []int
}

// AvgSeverity averages the weights of records with a known severity.
func (o Overview) AvgSeverity() float64 { return mean(o.Weights) }

// Overall summarizes every record.
func Overall(records []incident.Record) Overview {
	return Overview{
		Total:        len(records),
		HighSeverity: lo.CountBy(records, func(r incident.Record) bool { return r.Severity.IsHighSeverity() }),
		Weights: lo.FilterMap(records, func(r incident.Record, _ int) (int, bool) {
			return r.Severity.Weight(), r.Severity != incident.SeverityUnknown
		}),
	}
}
