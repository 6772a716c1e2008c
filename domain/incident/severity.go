package incident

import "strings"

// Severity is the normalized severity label of an incident.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
	SeverityUnknown  Severity = "unknown"
)

// HighSeverityWeight is the minimum weight counted as high severity.
// Only critical reaches it.
const HighSeverityWeight = 4

// Severities lists the known levels from most to least severe.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Weight returns the ordinal weight used for averaging and thresholding.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// IsHighSeverity reports whether the weight reaches HighSeverityWeight.
func (s Severity) IsHighSeverity() bool {
	return s.Weight() >= HighSeverityWeight
}

func (s Severity) String() string {
	return string(s)
}

// ParseSeverity maps a raw label to a Severity. Unknown or blank labels
// become SeverityUnknown rather than an error.
func ParseSeverity(raw string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(raw))) {
	case SeverityCritical:
		return SeverityCritical
	case SeverityHigh:
		return SeverityHigh
	case SeverityMedium:
		return SeverityMedium
	case SeverityLow:
		return SeverityLow
	default:
		return SeverityUnknown
	}
}
