// Package rollup groups normalized incidents by site, device, severity and
// week. Every function is pure: it takes the record slice and returns fresh
// rollup values without touching its input.
package rollup

import (
	lo "github.com/samber/lo"

	"incident-stats/domain/incident"
)

// Set holds the rollups of one record collection.
type Set struct {
	Overview   Overview
	Sites      []SiteRollup
	Devices    []DeviceRollup
	Severities []SeverityRollup
	Weeks      []WeeklyRollup
}

// Build computes every rollup for records.
func Build(records []incident.Record) Set {
	return Set{
		Overview:   Overall(records),
		Sites:      BySite(records),
		Devices:    ByDevice(records),
		Severities: BySeverity(records),
		Weeks:      ByWeek(records),
	}
}

// TotalCost sums all non-null costs across the weekly rollups.
func (s Set) TotalCost() float64 {
	return lo.SumBy(s.Weeks, func(w WeeklyRollup) float64 { return w.TotalCost() })
}

// Severity returns the rollup for sev, or an empty one when no record has it.
func (s Set) Severity(sev incident.Severity) SeverityRollup {
	if r, ok := lo.Find(s.Severities, func(r SeverityRollup) bool { return r.Severity == sev }); ok {
		return r
	}
	return SeverityRollup{Severity: sev}
}

// WeekRange returns the smallest and largest week present. ok is false for
// an empty set.
func (s Set) WeekRange() (first, last int, ok bool) {
	if len(s.Weeks) == 0 {
		return 0, 0, false
	}
	return s.Weeks[0].Week, s.Weeks[len(s.Weeks)-1].Week, true
}

func mean[T int | float64](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	return float64(lo.Sum(values)) / float64(len(values))
}

func costsOf(records []incident.Record) []float64 {
	return lo.FilterMap(records, func(r incident.Record, _ int) (float64, bool) {
		return r.CostOrZero(), r.HasCost()
	})
}

func resolutionsOf(records []incident.Record) []int {
	return lo.FilterMap(records, func(r incident.Record, _ int) (int, bool) {
		if r.ResolutionMinutes == nil {
			return 0, false
		}
		return *r.ResolutionMinutes, true
	})
}

// groupOrdered groups records by key, keeping keys in first-seen order.
func groupOrdered[K comparable](records []incident.Record, key func(incident.Record) K) ([]K, map[K][]incident.Record) {
	var keys []K
	groups := map[K][]incident.Record{}
	for _, r := range records {
		k := key(r)
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}
	return keys, groups
}
