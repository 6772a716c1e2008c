package csv

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	lo "github.com/samber/lo"

	"incident-stats/domain/incident"
	"incident-stats/domain/rollup"
)

// Output file names inside the output directory.
const (
	SiteSummaryFile     = "site_summary.csv"
	DeviceSummaryFile   = "device_summary.csv"
	WeeklyCostsFile     = "weekly_costs.csv"
	SeveritySummaryFile = "severity_summary.csv"
	IncidentSummaryFile = "incident_summary.csv"
	NormalizedFile      = "incidents_normalized.csv"
)

var (
	SiteHeader = []string{"site", "total_incidents", "critical_incidents", "high_incidents", "medium_incidents",
		"low_incidents", "avg_resolution_minutes", "total_cost_sek"}
	DeviceHeader = []string{"device_hostname", "site", "device_type", "incident_count", "avg_severity_score",
		"total_cost_sek", "avg_affected_users", "in_last_weeks_warnings"}
	WeeklyHeader   = []string{"week_number", "total_cost_sek", "avg_impact_score"}
	SeverityHeader = []string{"severity", "incident_count", "avg_resolution_minutes", "avg_cost_sek"}
	OverviewHeader = []string{"Metric", "Value"}
)

// Encode renders a header and rows as CSV.
func Encode(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, goerr.Wrap(err, "failed to write header")
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, goerr.Wrap(err, "failed to write rows")
	}
	return buf.Bytes(), nil
}

func decimal(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func yesNo(b bool) string { return lo.Ternary(b, "yes", "no") }

// SiteRows renders one row per site.
func SiteRows(sites []rollup.SiteRollup) [][]string {
	return lo.Map(sites, func(s rollup.SiteRollup, _ int) []string {
		return []string{
			s.Site,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Critical),
			strconv.Itoa(s.High),
			strconv.Itoa(s.Medium),
			strconv.Itoa(s.Low),
			decimal(s.AvgResolutionMinutes()),
			decimal(s.TotalCost()),
		}
	})
}

// DeviceRows renders one row per device, warning flag as yes/no.
func DeviceRows(devices []rollup.DeviceRollup) [][]string {
	return lo.Map(devices, func(d rollup.DeviceRollup, _ int) []string {
		return []string{
			d.Hostname,
			d.Site,
			string(d.Type),
			strconv.Itoa(d.Count),
			decimal(d.AvgSeverityScore()),
			decimal(d.TotalCost()),
			decimal(d.AvgAffectedUsers()),
			yesNo(d.WarnedLastPeriod),
		}
	})
}

// WeeklyRows renders one row per week.
func WeeklyRows(weeks []rollup.WeeklyRollup) [][]string {
	return lo.Map(weeks, func(w rollup.WeeklyRollup, _ int) []string {
		return []string{strconv.Itoa(w.Week), decimal(w.TotalCost()), decimal(w.AvgImpactScore())}
	})
}

// SeverityRows renders one row per severity present.
func SeverityRows(sevs []rollup.SeverityRollup) [][]string {
	return lo.Map(sevs, func(s rollup.SeverityRollup, _ int) []string {
		return []string{s.Severity.String(), strconv.Itoa(s.Count), decimal(s.AvgResolutionMinutes()), decimal(s.AvgCost())}
	})
}

// OverviewRows renders the dataset-wide metrics as metric/value pairs.
func OverviewRows(o rollup.Overview) [][]string {
	return [][]string{
		{"total_incidents", strconv.Itoa(o.Total)},
		{"high_severity_count", strconv.Itoa(o.HighSeverity)},
		{"average_severity", decimal(o.AvgSeverity())},
	}
}

// IncidentRows writes records back in canonical form: full-precision
// numbers with a dot decimal separator and blank cells for nulls.
func IncidentRows(records []incident.Record) [][]string {
	return lo.Map(records, func(r incident.Record, _ int) []string {
		cost := ""
		if r.Cost != nil {
			cost = strconv.FormatFloat(*r.Cost, 'f', -1, 64)
		}
		res := ""
		if r.ResolutionMinutes != nil {
			res = strconv.Itoa(*r.ResolutionMinutes)
		}
		sev := lo.Ternary(r.Severity == incident.SeverityUnknown, "", r.Severity.String())
		return []string{
			r.TicketID,
			sev,
			cost,
			res,
			strconv.Itoa(r.AffectedUsers),
			strconv.FormatFloat(r.ImpactScore, 'f', -1, 64),
			strconv.Itoa(r.WeekNumber),
			r.DeviceHostname,
			r.Site,
			r.Category,
			r.ReportedBy,
			r.WarningsLastWeeks,
		}
	})
}
