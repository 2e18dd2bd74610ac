package domain

// Severity is the canonical severity taxonomy used for counting and display.
// Values outside the five canonical levels are pass-through buckets produced
// by the normalizer for unrecognized vendor labels.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
	SeverityNone     Severity = "None"
)

// SeverityOrder is the fixed display order of the canonical levels.
var SeverityOrder = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityNone,
}

// IsCanonical reports whether s is one of the five taxonomy levels.
func (s Severity) IsCanonical() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityNone:
		return true
	default:
		return false
	}
}

// Exploitable reports whether s participates in exploit sub-counting.
// Only the two highest levels do.
func (s Severity) Exploitable() bool {
	return s == SeverityCritical || s == SeverityHigh
}
