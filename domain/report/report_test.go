package report_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"incident-stats/domain/incident"
	"incident-stats/domain/ranking"
	"incident-stats/domain/report"
	"incident-stats/domain/rollup"
)

func cost(v float64) *float64 { return &v }
func minutes(v int) *int      { return &v }

func header() report.Header {
	return report.Header{
		Organization: "Example Networks AB",
		Title:        "Network Incident Report",
		Currency:     "SEK",
		ISOYear:      2025,
	}
}

func input(records []incident.Record) report.Input {
	return report.Input{
		Header:  header(),
		Total:   len(records),
		Rollups: rollup.Build(records),
		Ranking: ranking.Rank(records),
	}
}

func records() []incident.Record {
	return []incident.Record{
		{TicketID: "INC-1", Severity: incident.SeverityCritical, Cost: cost(125000.5), ResolutionMinutes: minutes(120),
			WeekNumber: 5, DeviceHostname: "SW-DC-01", Site: "Stockholm", Category: "hardware"},
		{TicketID: "INC-2", Severity: incident.SeverityCritical, Cost: cost(2000), ResolutionMinutes: minutes(60),
			WeekNumber: 6, DeviceHostname: "SW-DC-01", Site: "Stockholm", Category: "power"},
		{TicketID: "INC-3", Severity: incident.SeverityHigh, Cost: nil, ResolutionMinutes: minutes(30),
			WeekNumber: 5, DeviceHostname: "RT-EDGE-9", Site: "Gothenburg"},
		{TicketID: "INC-4", Severity: incident.SeverityLow, Cost: cost(10), ResolutionMinutes: nil,
			WeekNumber: 6, DeviceHostname: "AP-1", Site: "Malmo"},
	}
}

func TestFixed2(t *testing.T) {
	gt.Equal(t, report.Fixed2(0), "0.00")
	gt.Equal(t, report.Fixed2(1234.5), "1,234.50")
	gt.Equal(t, report.Fixed2(1234567.891), "1,234,567.89")
	gt.Equal(t, report.Fixed2(0.005), "0.01")
	gt.Equal(t, report.Fixed2(-1500), "-1,500.00")
	gt.Equal(t, report.Fixed2(-0.001), "0.00")

	// beyond the int64 range of cents
	gt.Equal(t, report.Fixed2(*incident.ParseCost("1e20")), "100,000,000,000,000,000,000.00")
	gt.Equal(t, report.Fixed2(-1e20), "-100,000,000,000,000,000,000.00")
}

func TestCountAndPercent(t *testing.T) {
	gt.Equal(t, report.Count(1234567), "1,234,567")
	gt.Equal(t, report.Percent(1, 3), 33)
	gt.Equal(t, report.Percent(2, 3), 67)
	gt.Equal(t, report.Percent(5, 0), 0)
}

func TestISOWeek(t *testing.T) {
	gt.Equal(t, report.ISOWeekStart(2025, 1).String(), "2024-12-30")
	gt.Equal(t, report.ISOWeekEnd(2025, 6).String(), "2025-02-09")
	gt.Equal(t, report.ISOWeekStart(2026, 1).String(), "2025-12-29")
	gt.Equal(t, report.ISOWeekStart(2021, 1).String(), "2021-01-04")
}

func TestRender(t *testing.T) {
	out := report.Render(input(records()))

	gt.True(t, strings.HasPrefix(out, "Example Networks AB\nNetwork Incident Report\n=======================\n"))
	gt.S(t, out).Contains("Reporting period: week 5 - week 6 (2025-01-27 to 2025-02-09)\n")
	gt.S(t, out).Contains("Total incidents: 4\n")
	gt.S(t, out).Contains("Total cost: 127,010.50 SEK\n")

	gt.S(t, out).Contains("- SW-DC-01 had the most critical incidents (2).\n")
	gt.S(t, out).Contains("- Most expensive incident: INC-1 at 125,000.50 SEK on SW-DC-01 (hardware).\n")
	gt.S(t, out).Contains("- 2 devices had incidents in week 5, the week before the latest reporting week.\n")
	gt.S(t, out).Contains("- Sites without critical incidents: Gothenburg, Malmo.\n")

	gt.S(t, out).Contains("SEVERITY BREAKDOWN")
	gt.S(t, out).Contains("50%")
	gt.S(t, out).Contains("63,500.25")
	gt.S(t, out).Contains("90.00")

	gt.S(t, out).Contains("TOP 5 MOST EXPENSIVE INCIDENTS")
	gt.S(t, out).Contains("1. INC-1  SW-DC-01 (Stockholm)  125,000.50 SEK\n")
	gt.S(t, out).Contains("3. INC-4  AP-1 (Malmo)  10.00 SEK\n")
	gt.False(t, strings.Contains(out, "\n4. "))
}

func TestRender_SeverityOrder(t *testing.T) {
	out := report.Render(input(records()))
	idx := func(s string) int { return strings.Index(out, "│ "+s) }

	crit, high, med, low := idx("critical"), idx("high"), idx("medium"), idx("low")
	gt.True(t, crit > 0)
	gt.True(t, crit < high)
	gt.True(t, high < med)
	gt.True(t, med < low)
}

func TestRender_NoIsoYear(t *testing.T) {
	in := input(records())
	in.Header.ISOYear = 0
	out := report.Render(in)
	gt.S(t, out).Contains("Reporting period: week 5 - week 6\n")
}

func TestRender_AbsentFieldsOmitted(t *testing.T) {
	recs := []incident.Record{
		{TicketID: "INC-1", Severity: incident.SeverityHigh, WeekNumber: 3, DeviceHostname: "RT-1", Site: "Lund"},
	}
	out := report.Render(input(recs))

	gt.False(t, strings.Contains(out, "most critical incidents"))
	gt.False(t, strings.Contains(out, "Most expensive incident"))
	gt.False(t, strings.Contains(out, "MOST EXPENSIVE INCIDENTS"))
	gt.S(t, out).Contains("- 0 devices had incidents in week 2")
	gt.S(t, out).Contains("- Sites without critical incidents: Lund.\n")
}

func TestRender_Empty(t *testing.T) {
	out := report.Render(input(nil))

	gt.False(t, strings.Contains(out, "Reporting period"))
	gt.S(t, out).Contains("Total incidents: 0\n")
	gt.S(t, out).Contains("Total cost: 0.00 SEK\n")
	gt.S(t, out).Contains("- No notable observations.\n")
	gt.S(t, out).Contains("0%")
	gt.False(t, strings.Contains(out, "MOST EXPENSIVE INCIDENTS"))
}

func TestRender_Deterministic(t *testing.T) {
	gt.Equal(t, report.Render(input(records())), report.Render(input(records())))
}
