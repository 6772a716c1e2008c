// Package ranking selects the incidents and devices that the executive
// summary calls out.
package ranking

import (
	"sort"

	lo "github.com/samber/lo"

	"incident-stats/domain/incident"
)

// TopN is how many of the most expensive incidents are listed.
const TopN = 5

// DeviceCount pairs a device with a number of incidents.
type DeviceCount struct {
	Hostname string
	Count    int
}

// Result holds every ranking for one record collection. Nil pointers and
// HasWeeks=false mark values that cannot be computed from the data.
type Result struct {
	TopCost         []incident.Record
	MaxCost         *incident.Record
	TopOffender     *DeviceCount
	RepeatOffenders []string
	LatestWeek      int
	HasWeeks        bool
}

// Rank computes all rankings for records.
func Rank(records []incident.Record) Result {
	latest, repeat, ok := RepeatOffenders(records)
	return Result{
		TopCost:         TopByCost(records, TopN),
		MaxCost:         MaxCost(records),
		TopOffender:     TopOffender(records),
		RepeatOffenders: repeat,
		LatestWeek:      latest,
		HasWeeks:        ok,
	}
}

// TopByCost returns up to n costed records ordered by cost descending.
// Records with equal cost keep their input order.
func TopByCost(records []incident.Record, n int) []incident.Record {
	costed := lo.Filter(records, func(r incident.Record, _ int) bool { return r.HasCost() })
	sort.SliceStable(costed, func(i, j int) bool {
		return *costed[i].Cost > *costed[j].Cost
	})
	if len(costed) > n {
		costed = costed[:n]
	}
	return costed
}

// MaxCost returns the most expensive incident, or nil when no record has a cost.
func MaxCost(records []incident.Record) *incident.Record {
	top := TopByCost(records, 1)
	if len(top) == 0 {
		return nil
	}
	return &top[0]
}

// TopOffender returns the device with the most high-severity incidents.
// Ties go to the device seen first. Nil when no device has any.
func TopOffender(records []incident.Record) *DeviceCount {
	var order []string
	counts := map[string]int{}
	for _, r := range records {
		if _, seen := counts[r.DeviceHostname]; !seen {
			order = append(order, r.DeviceHostname)
			counts[r.DeviceHostname] = 0
		}
		if r.Severity.IsHighSeverity() {
			counts[r.DeviceHostname]++
		}
	}

	var best *DeviceCount
	for _, host := range order {
		if c := counts[host]; c > 0 && (best == nil || c > best.Count) {
			best = &DeviceCount{Hostname: host, Count: c}
		}
	}
	return best
}

// RepeatOffenders returns the latest week W present in records and the
// sorted hostnames that had at least one incident in week W-1. ok is false
// when records is empty.
func RepeatOffenders(records []incident.Record) (latest int, hosts []string, ok bool) {
	if len(records) == 0 {
		return 0, []string{}, false
	}
	latest = lo.MaxBy(records, func(a, b incident.Record) bool { return a.WeekNumber > b.WeekNumber }).WeekNumber

	hosts = lo.Uniq(lo.FilterMap(records, func(r incident.Record, _ int) (string, bool) {
		return r.DeviceHostname, r.WeekNumber == latest-1
	}))
	sort.Strings(hosts)
	return latest, hosts, true
}
