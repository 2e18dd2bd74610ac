package enrich

import (
	"strings"
	"time"

	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// statusResolved is the finding status that closes the age window.
const statusResolved = "resolved"

// Timestamp layouts seen across scanner exports, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// AgeCalculator derives a finding's age in days from its detection and
// resolution timestamps.
type AgeCalculator struct {
	now func() time.Time
}

// NewAgeCalculator creates an age calculator using the real clock.
func NewAgeCalculator() *AgeCalculator {
	return &AgeCalculator{now: time.Now}
}

// NewAgeCalculatorAt creates an age calculator with a fixed clock, for tests.
func NewAgeCalculatorAt(now time.Time) *AgeCalculator {
	return &AgeCalculator{now: func() time.Time { return now }}
}

// Apply fills AgeDays/HasAge on every normalized record. The window runs from
// FirstDetected to ResolvedAt for resolved findings, otherwise to now. A
// missing or unparseable FirstDetected leaves the record without an age;
// negative windows clamp to zero (data quality, not an error).
func (c *AgeCalculator) Apply(records []domain.NormalizedRecord, table *domain.Table, schema domain.Schema) {
	if schema.FirstDetected == "" {
		return
	}

	now := c.now()
	for i := range records {
		raw := table.Records[records[i].Raw]

		detected, ok := parseTime(raw.Get(schema.FirstDetected))
		if !ok {
			continue
		}

		end := now
		if schema.Status != "" && schema.ResolvedAt != "" {
			if strings.EqualFold(strings.TrimSpace(raw.Get(schema.Status)), statusResolved) {
				if resolved, ok := parseTime(raw.Get(schema.ResolvedAt)); ok {
					end = resolved
				}
			}
		}

		days := int(end.Sub(detected).Hours() / 24)
		if days < 0 {
			days = 0
		}
		records[i].AgeDays = days
		records[i].HasAge = true
	}
}

// parseTime tries the known layouts and normalizes away the zone offset so
// mixed UTC/local exports compare cleanly.
func parseTime(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
