// Package report renders the executive-summary text from rollups and
// rankings. It never aggregates records itself.
package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"incident-stats/domain/incident"
	"incident-stats/domain/ranking"
	"incident-stats/domain/rollup"
)

// Header carries the labels printed at the top of the report.
type Header struct {
	Organization string
	Title        string
	Currency     string
	ISOYear      int // when > 0, week numbers are also printed as calendar dates
}

// Input is everything Render needs.
type Input struct {
	Header  Header
	Total   int
	Rollups rollup.Set
	Ranking ranking.Result
}

// Render produces the narrative report. Identical input gives identical output.
func Render(in Input) string {
	var b strings.Builder

	writeHeader(&b, in)
	b.WriteString("\n")
	writeSummary(&b, in)
	b.WriteString("\n")
	writeSeverities(&b, in)
	if len(in.Ranking.TopCost) > 0 {
		b.WriteString("\n")
		writeTopCost(&b, in)
	}
	return b.String()
}

func section(b *strings.Builder, title string, underline rune) {
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat(string(underline), utf8.RuneCountInString(title)))
	b.WriteString("\n")
}

func writeHeader(b *strings.Builder, in Input) {
	h := in.Header
	b.WriteString(h.Organization)
	b.WriteString("\n")
	section(b, h.Title, '=')

	if first, last, ok := in.Rollups.WeekRange(); ok {
		fmt.Fprintf(b, "Reporting period: week %d - week %d", first, last)
		if h.ISOYear > 0 {
			fmt.Fprintf(b, " (%s to %s)", ISOWeekStart(h.ISOYear, first), ISOWeekEnd(h.ISOYear, last))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "Total incidents: %s\n", Count(in.Total))
	fmt.Fprintf(b, "Total cost: %s %s\n", Fixed2(in.Rollups.TotalCost()), h.Currency)
}

func writeSummary(b *strings.Builder, in Input) {
	section(b, "EXECUTIVE SUMMARY", '-')
	var lines []string

	if top := in.Ranking.TopOffender; top != nil {
		lines = append(lines, fmt.Sprintf("%s had the most critical incidents (%s).", top.Hostname, Count(top.Count)))
	}
	if mc := in.Ranking.MaxCost; mc != nil {
		line := fmt.Sprintf("Most expensive incident: %s at %s %s on %s", mc.TicketID, Fixed2(*mc.Cost), in.Header.Currency, mc.DeviceHostname)
		if mc.Category != "" {
			line += fmt.Sprintf(" (%s)", mc.Category)
		}
		lines = append(lines, line+".")
	}
	if in.Ranking.HasWeeks {
		n := len(in.Ranking.RepeatOffenders)
		noun := "devices"
		if n == 1 {
			noun = "device"
		}
		lines = append(lines, fmt.Sprintf("%s %s had incidents in week %d, the week before the latest reporting week.",
			Count(n), noun, in.Ranking.LatestWeek-1))
	}
	if quiet := rollup.SitesWithoutCritical(in.Rollups.Sites); len(quiet) > 0 {
		lines = append(lines, fmt.Sprintf("Sites without critical incidents: %s.", strings.Join(quiet, ", ")))
	}

	if len(lines) == 0 {
		lines = append(lines, "No notable observations.")
	}
	for _, l := range lines {
		b.WriteString("- ")
		b.WriteString(l)
		b.WriteString("\n")
	}
}

func writeSeverities(b *strings.Builder, in Input) {
	section(b, "SEVERITY BREAKDOWN", '-')

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Severity", "Incidents", "Share", "Avg resolution (min)", "Avg cost (" + in.Header.Currency + ")"})
	for _, sev := range incident.Severities {
		r := in.Rollups.Severity(sev)
		tw.AppendRow(table.Row{
			sev.String(),
			Count(r.Count),
			fmt.Sprintf("%d%%", Percent(r.Count, in.Total)),
			Fixed2(r.AvgResolutionMinutes()),
			Fixed2(r.AvgCost()),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	b.WriteString(tw.Render())
	b.WriteString("\n")
}

func writeTopCost(b *strings.Builder, in Input) {
	section(b, fmt.Sprintf("TOP %d MOST EXPENSIVE INCIDENTS", ranking.TopN), '-')
	for i, r := range in.Ranking.TopCost {
		fmt.Fprintf(b, "%d. %s  %s (%s)  %s %s\n", i+1, r.TicketID, r.DeviceHostname, r.Site, Fixed2(*r.Cost), in.Header.Currency)
	}
}
