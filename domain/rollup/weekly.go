package rollup

import (
	"sort"

	lo "github.com/samber/lo"

	"incident-stats/domain/incident"
)

// WeeklyRollup aggregates the incidents of one week.
type WeeklyRollup struct {
	Week         int
	Count        int
	Costs        []float64
	ImpactScores []float64
}

func (w WeeklyRollup) TotalCost() float64 { return lo.Sum(w.Costs) }

func (w WeeklyRollup) AvgImpactScore() float64 { return mean(w.ImpactScores) }

// ByWeek rolls records up per week number, ascending.
func ByWeek(records []incident.Record) []WeeklyRollup {
	keys, groups := groupOrdered(records, func(r incident.Record) int { return r.WeekNumber })
	sort.Ints(keys)

	return lo.Map(keys, func(week int, _ int) WeeklyRollup {
		rs := groups[week]
		return WeeklyRollup{
			Week:         week,
			Count:        len(rs),
			Costs:        costsOf(rs),
			ImpactScores: lo.Map(rs, func(r incident.Record, _ int) float64 { return r.ImpactScore }),
		}
	})
}
