package rollup

import (
	"sort"
	"strings"

	lo "github.com/samber/lo"

	"incident-stats/domain/incident"
)

// DeviceType is inferred from the hostname prefix.
type DeviceType string

const (
	DeviceSwitch       DeviceType = "switch"
	DeviceRouter       DeviceType = "router"
	DeviceAccessPoint  DeviceType = "access_point"
	DeviceFirewall     DeviceType = "firewall"
	DeviceLoadBalancer DeviceType = "load_balancer"
	DeviceUnknown      DeviceType = "unknown"
)

// devicePrefixes is checked in order; the first matching prefix wins.
var devicePrefixes = []struct {
	prefix string
	kind   DeviceType
}{
	{"SW-", DeviceSwitch},
	{"RT-", DeviceRouter},
	{"AP-", DeviceAccessPoint},
	{"FW-", DeviceFirewall},
	{"LB-", DeviceLoadBalancer},
}

// InferDeviceType maps a hostname to a device type by its case-sensitive prefix.
func InferDeviceType(hostname string) DeviceType {
	for _, p := range devicePrefixes {
		if strings.HasPrefix(hostname, p.prefix) {
			return p.kind
		}
	}
	return DeviceUnknown
}

// DeviceRollup aggregates the incidents of one device.
type DeviceRollup struct {
	Hostname         string
	Site             string // site of the first incident seen for the device
	Type             DeviceType
	Count            int
	SeverityWeights  []int
	Costs            []float64
	AffectedUsers    []int
	WarnedLastPeriod bool
}

func (d DeviceRollup) AvgSeverityScore() float64 { return mean(d.SeverityWeights) }

func (d DeviceRollup) TotalCost() float64 { return lo.Sum(d.Costs) }

func (d DeviceRollup) AvgAffectedUsers() float64 { return mean(d.AffectedUsers) }

// warned reports whether a record flags a warning in the previous period.
// A warning only counts when someone reported it.
func warned(r incident.Record) bool {
	return r.ReportedBy != "" && strings.Contains(strings.ToLower(r.WarningsLastWeeks), "yes")
}

// ByDevice rolls records up per hostname. Rows are ordered by incident
// count descending, then total cost descending, then hostname.
func ByDevice(records []incident.Record) []DeviceRollup {
	keys, groups := groupOrdered(records, func(r incident.Record) string { return r.DeviceHostname })

	out := lo.Map(keys, func(host string, _ int) DeviceRollup {
		rs := groups[host]
		return DeviceRollup{
			Hostname:         host,
			Site:             rs[0].Site,
			Type:             InferDeviceType(host),
			Count:            len(rs),
			SeverityWeights:  lo.Map(rs, func(r incident.Record, _ int) int { return r.Severity.Weight() }),
			Costs:            costsOf(rs),
			AffectedUsers:    lo.Map(rs, func(r incident.Record, _ int) int { return r.AffectedUsers }),
			WarnedLastPeriod: lo.SomeBy(rs, warned),
		}
	})

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		ci, cj := out[i].TotalCost(), out[j].TotalCost()
		if ci != cj {
			return ci > cj
		}
		return out[i].Hostname < out[j].Hostname
	})
	return out
}
