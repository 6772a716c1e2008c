package rollup

import (
	lo "github.com/samber/lo"

	"incident-stats/domain/incident"
)

// SeverityRollup aggregates the incidents of one severity level.
type SeverityRollup struct {
	Severity          incident.Severity
	Count             int
	ResolutionMinutes []int
	Costs             []float64
}

func (s SeverityRollup) AvgResolutionMinutes() float64 { return mean(s.ResolutionMinutes) }

// AvgCost averages the non-null costs of the level.
func (s SeverityRollup) AvgCost() float64 { return mean(s.Costs) }

// BySeverity rolls records up per severity, most severe first. Records with
// an unknown severity get a trailing "unknown" rollup so that no record is
// dropped.
func BySeverity(records []incident.Record) []SeverityRollup {
	_, groups := groupOrdered(records, func(r incident.Record) incident.Severity { return r.Severity })

	order := append(append([]incident.Severity{}, incident.Severities...), incident.SeverityUnknown)
	present := lo.Filter(order, func(sev incident.Severity, _ int) bool { return len(groups[sev]) > 0 })

	return lo.Map(present, func(sev incident.Severity, _ int) SeverityRollup {
		rs := groups[sev]
		return SeverityRollup{
			Severity:          sev,
			Count:             len(rs),
			ResolutionMinutes: resolutionsOf(rs),
			Costs:             costsOf(rs),
		}
	})
}
