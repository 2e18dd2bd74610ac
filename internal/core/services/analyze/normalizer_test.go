package analyze

import (
	"testing"

	"github.com/wiztriage/wiztriage/internal/core/domain"
)

func TestNormalizeSeverity(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected domain.Severity
	}{
		{"Canonical critical", "Critical", domain.SeverityCritical},
		{"Upper-case high", "HIGH", domain.SeverityHigh},
		{"Mixed-case medium", "mEdIuM", domain.SeverityMedium},
		{"Lower-case low", "low", domain.SeverityLow},
		{"Scored label", "CRITICAL (9.8)", domain.SeverityCritical},
		{"Embedded level", "Vendor-High", domain.SeverityHigh},
		{"Missing value", "", domain.SeverityNone},
		{"Whitespace only", "   ", domain.SeverityNone},
		{"Info synonym", "Info", domain.SeverityNone},
		{"Lower info synonym", "info", domain.SeverityNone},
		{"None synonym", "none", domain.SeverityNone},
		{"Not applicable", "N/A", domain.SeverityNone},
		{"Unknown label passes through title-cased", "severe issue", domain.Severity("Severe Issue")},
		{"Unknown single word", "URGENT", domain.Severity("Urgent")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSeverity(tt.raw); got != tt.expected {
				t.Errorf("NormalizeSeverity(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestNormalizeSeverityMostSpecificWins(t *testing.T) {
	// "critical" must win over any other level name in the same label.
	if got := NormalizeSeverity("high-to-critical"); got != domain.SeverityCritical {
		t.Errorf("expected Critical for ambiguous label, got %q", got)
	}
}

func TestNormalizeSeverityClosure(t *testing.T) {
	// Every recognized input lands inside the taxonomy; only unrecognized
	// labels escape into the pass-through bucket.
	canonical := []string{"Critical", "high", "MEDIUM", "Low", "none", "info", "", "N/A"}
	for _, raw := range canonical {
		if got := NormalizeSeverity(raw); !got.IsCanonical() {
			t.Errorf("NormalizeSeverity(%q) = %q escaped the taxonomy", raw, got)
		}
	}
	if got := NormalizeSeverity("bizarre"); got.IsCanonical() {
		t.Errorf("expected pass-through for unrecognized label, got %q", got)
	}
}

func TestNormalizeRecord(t *testing.T) {
	schema := domain.Schema{
		Asset:        "AssetName",
		Location:     "LocationPath",
		Severity:     "VendorSeverity",
		Exploit:      "HasExploit",
		Subscription: "SubscriptionName",
	}
	rec := domain.Record{Values: map[string]string{
		"AssetName":        "  BambooAgent1 ",
		"LocationPath":     "/repo/.M2/settings.xml",
		"VendorSeverity":   "HIGH",
		"HasExploit":       "Yes",
		"SubscriptionName": "Prod-EU",
	}}

	n := NewNormalizer()
	got := n.Normalize(rec, schema, 7)

	if got.Asset != "bambooagent1" {
		t.Errorf("Asset = %q", got.Asset)
	}
	if got.Location != "/repo/.m2/settings.xml" {
		t.Errorf("Location = %q", got.Location)
	}
	if got.Subscription != "prod-eu" {
		t.Errorf("Subscription = %q", got.Subscription)
	}
	if got.Severity != domain.SeverityHigh {
		t.Errorf("Severity = %q", got.Severity)
	}
	if !got.ExploitKnown {
		t.Error("ExploitKnown = false, want true")
	}
	if got.Raw != 7 {
		t.Errorf("Raw = %d, want 7", got.Raw)
	}
}

func TestNormalizeRecordMissingFields(t *testing.T) {
	schema := domain.Schema{Asset: "AssetName", Location: "LocationPath", Severity: "VendorSeverity"}
	rec := domain.Record{Values: map[string]string{}}

	got := NewNormalizer().Normalize(rec, schema, 0)

	if got.Asset != "" || got.Location != "" || got.Subscription != "" {
		t.Errorf("missing text fields should normalize to empty strings, got %+v", got)
	}
	if got.Severity != domain.SeverityNone {
		t.Errorf("missing severity should normalize to None, got %q", got.Severity)
	}
	if got.ExploitKnown {
		t.Error("missing exploit flag should normalize to false")
	}
}

func TestParseExploitFlag(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"Yes", true},
		{"yes", true},
		{"TRUE", true},
		{"true", true},
		{" yes ", true},
		{"No", false},
		{"false", false},
		{"", false},
		{"1", false},
	}

	for _, tt := range tests {
		if got := parseExploitFlag(tt.raw); got != tt.expected {
			t.Errorf("parseExploitFlag(%q) = %v, want %v", tt.raw, got, tt.expected)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	schema := domain.Schema{Asset: "A", Location: "L", Severity: "S"}
	rec := domain.Record{Values: map[string]string{"A": "BambooAgent2", "L": "/var/log/agent.log", "S": "Medium"}}

	n := NewNormalizer()
	first := n.Normalize(rec, schema, 0)
	second := n.Normalize(rec, schema, 0)

	if first != second {
		t.Errorf("normalization is not pure: %+v != %+v", first, second)
	}
}
