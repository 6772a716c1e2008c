package incident

// Column names of the incident export.
const (
	ColTicketID          = "ticket_id"
	ColSeverity          = "severity"
	ColCost              = "cost_sek"
	ColResolutionMinutes = "resolution_minutes"
	ColAffectedUsers     = "affected_users"
	ColImpactScore       = "impact_score"
	ColWeekNumber        = "week_number"
	ColDeviceHostname    = "device_hostname"
	ColSite              = "site"
	ColCategory          = "category"
	ColReportedBy        = "reported_by"
	ColWarningsLastWeeks = "in_last_weeks_warnings"
)

// Columns is the canonical column order of the incident export.
var Columns = []string{
	ColTicketID,
	ColSeverity,
	ColCost,
	ColResolutionMinutes,
	ColAffectedUsers,
	ColImpactScore,
	ColWeekNumber,
	ColDeviceHostname,
	ColSite,
	ColCategory,
	ColReportedBy,
	ColWarningsLastWeeks,
}

// RawRow is one data row of the export keyed by lower-cased header name.
type RawRow struct {
	Line   int // 1-based line in the source file, header is line 1
	Fields map[string]string
}

// Get returns the field value or "" when the column is absent.
func (r RawRow) Get(col string) string {
	return r.Fields[col]
}

// Record is a normalized incident. Nil pointers mark values that were
// blank or unparsable in the source row.
type Record struct {
	Line              int
	TicketID          string
	Severity          Severity
	Cost              *float64
	ResolutionMinutes *int
	AffectedUsers     int
	ImpactScore       float64
	WeekNumber        int
	DeviceHostname    string
	Site              string
	Category          string
	ReportedBy        string
	WarningsLastWeeks string
}

// HasCost reports whether the record carries a cost.
func (r Record) HasCost() bool {
	return r.Cost != nil
}

// CostOrZero returns the cost, or 0 when it is null.
func (r Record) CostOrZero() float64 {
	if r.Cost == nil {
		return 0
	}
	return *r.Cost
}
