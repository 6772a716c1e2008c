package rollup

import (
	"sort"

	lo "github.com/samber/lo"

	"incident-stats/domain/incident"
)

// SiteRollup aggregates the incidents of one site.
type SiteRollup struct {
	Site              string
	Total             int
	Critical          int
	High              int
	Medium            int
	Low               int
	ResolutionMinutes []int
	Costs             []float64
}

// AvgResolutionMinutes averages the non-null resolution times.
func (s SiteRollup) AvgResolutionMinutes() float64 { return mean(s.ResolutionMinutes) }

// TotalCost sums the non-null costs.
func (s SiteRollup) TotalCost() float64 { return lo.Sum(s.Costs) }

// BySite rolls records up per site, ordered by site name.
func BySite(records []incident.Record) []SiteRollup {
	keys, groups := groupOrdered(records, func(r incident.Record) string { return r.Site })
	sort.Strings(keys)

	return lo.Map(keys, func(site string, _ int) SiteRollup {
		rs := groups[site]
		count := func(sev incident.Severity) int {
			return lo.CountBy(rs, func(r incident.Record) bool { return r.Severity == sev })
		}
		return SiteRollup{
			Site:              site,
			Total:             len(rs),
			Critical:          count(incident.SeverityCritical),
			High:              count(incident.SeverityHigh),
			Medium:            count(incident.SeverityMedium),
			Low:               count(incident.SeverityLow),
			ResolutionMinutes: resolutionsOf(rs),
			Costs:             costsOf(rs),
		}
	})
}

// SitesWithoutCritical returns the names of sites that had no critical
// incident. Incidents without a site are not named.
func SitesWithoutCritical(sites []SiteRollup) []string {
	return lo.FilterMap(sites, func(s SiteRollup, _ int) (string, bool) {
		return s.Site, s.Critical == 0 && s.Site != ""
	})
}
