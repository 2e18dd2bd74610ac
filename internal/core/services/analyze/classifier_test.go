package analyze

import (
	"fmt"
	"testing"

	"github.com/wiztriage/wiztriage/internal/core/domain"
	"github.com/wiztriage/wiztriage/internal/profiles"
)

func normalized(asset, location string, idx int) domain.NormalizedRecord {
	n := NewNormalizer()
	schema := domain.Schema{Asset: "AssetName", Location: "LocationPath", Severity: "VendorSeverity"}
	rec := domain.Record{Values: map[string]string{
		"AssetName":    asset,
		"LocationPath": location,
	}}
	return n.Normalize(rec, schema, idx)
}

func TestClassifyBrokerScenarios(t *testing.T) {
	classifier := NewClassifier(profiles.Broker())

	tests := []struct {
		name     string
		asset    string
		location string
		expected string
	}{
		{"Build agent with artifact path", "BambooAgent1", "/repo/.m2/settings.xml", "Dev"},
		{"Build agent without artifact path", "BambooAgent2", "/var/log/agent.log", "SRE"},
		{"Database host falls to default", "OracleDB01", "/u01/app/oracle", "DB"},
		{"Reporting server joins tooling pool", "TableauSrv1", "/opt/tableau/logs", "SRE"},
		{"Reporting server with artifact path", "tableau-worker", "/data/xml-data/build-dir", "Dev"},
		{"Case-insensitive asset match", "BAMBOO-ELASTIC-07", "/home/bamboo/.m2/repository", "Dev"},
		{"Empty fields fall to default", "", "", "DB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := normalized(tt.asset, tt.location, 0)
			if got := classifier.Classify(&rec); got != tt.expected {
				t.Errorf("Classify(%q, %q) = %q, want %q", tt.asset, tt.location, got, tt.expected)
			}
		})
	}
}

func TestClassifyLocationProfile(t *testing.T) {
	classifier := NewClassifier(profiles.Shopper())

	tests := []struct {
		name     string
		location string
		expected string
	}{
		{"Maven repo", "/home/user/.m2/repository/junit.jar", "Dev"},
		{"NPM cache", "/var/cache/npm/lodash", "Dev"},
		{"Node modules", "/app/node_modules/express", "Dev"},
		{"Root path keyword", "/root/build/output", "Dev"},
		{"Plain system path", "/etc/ssh/sshd_config", "SRE"},
		{"Empty location", "", "SRE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := normalized("web-host-1", tt.location, 0)
			if got := classifier.Classify(&rec); got != tt.expected {
				t.Errorf("Classify(location=%q) = %q, want %q", tt.location, got, tt.expected)
			}
		})
	}
}

// Mirrors the canonical sizing scenario: 100 records, 40 in the tooling pool
// (25 with a build-artifact marker), 60 outside it.
func TestPartitionSizes(t *testing.T) {
	var records []domain.NormalizedRecord
	idx := 0
	add := func(asset, location string) {
		records = append(records, normalized(asset, location, idx))
		idx++
	}

	for i := 0; i < 25; i++ {
		add(fmt.Sprintf("bamboo-agent-%d", i), fmt.Sprintf("/home/bamboo/.m2/repo/lib%d.jar", i))
	}
	for i := 0; i < 15; i++ {
		add(fmt.Sprintf("bamboo-agent-%d", 25+i), fmt.Sprintf("/var/log/agent%d.log", i))
	}
	for i := 0; i < 60; i++ {
		add(fmt.Sprintf("oracle-host-%d", i), fmt.Sprintf("/u01/app/oracle/%d", i))
	}

	classifier := NewClassifier(profiles.Broker())
	groups := classifier.Partition(records)

	want := map[string]int{"Dev": 25, "SRE": 15, "DB": 60}
	sum := 0
	for group, n := range want {
		if got := len(groups[group]); got != n {
			t.Errorf("group %s has %d records, want %d", group, got, n)
		}
		sum += len(groups[group])
	}
	if sum != len(records) {
		t.Errorf("partition is not complete: %d assigned, %d input", sum, len(records))
	}
}

func TestPartitionIsCompleteAndDisjoint(t *testing.T) {
	assets := []string{"BambooAgent1", "bamboo-2", "TableauSrv", "OracleDB01", "pg-primary", "", "web-01"}
	locations := []string{"/repo/.m2/a.jar", "/var/log/x.log", "/data/xml-data/b", "", "/etc/passwd", "/opt/app", "/home"}

	var records []domain.NormalizedRecord
	idx := 0
	for _, a := range assets {
		for _, l := range locations {
			records = append(records, normalized(a, l, idx))
			idx++
		}
	}

	classifier := NewClassifier(profiles.Broker())
	groups := classifier.Partition(records)

	seen := make(map[int]string)
	total := 0
	for group, indices := range groups {
		for _, i := range indices {
			if prev, dup := seen[i]; dup {
				t.Errorf("record %d assigned to both %s and %s", i, prev, group)
			}
			seen[i] = group
		}
		total += len(indices)
	}

	if total != len(records) {
		t.Errorf("sum of group sizes = %d, want %d", total, len(records))
	}
	for i := range records {
		if _, ok := seen[i]; !ok {
			t.Errorf("record %d was not assigned to any group", i)
		}
	}
}

func TestPartitionContainsWholeUniverse(t *testing.T) {
	// A group with no records still shows up, zero-sized.
	records := []domain.NormalizedRecord{normalized("OracleDB01", "/u01", 0)}
	groups := NewClassifier(profiles.Broker()).Partition(records)

	for _, g := range profiles.Broker().Groups {
		if _, ok := groups[g]; !ok {
			t.Errorf("group %s missing from partition result", g)
		}
	}
	if len(groups["Dev"]) != 0 || len(groups["SRE"]) != 0 {
		t.Error("expected empty Dev and SRE groups")
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	classifier := NewClassifier(profiles.Broker())
	rec := normalized("BambooAgent1", "/repo/.m2/settings.xml", 0)

	first := classifier.Classify(&rec)
	second := classifier.Classify(&rec)
	if first != second {
		t.Errorf("classification is not pure: %q then %q", first, second)
	}
}

func TestDiagnoseReportsOverlap(t *testing.T) {
	profile := &domain.Profile{
		Name:         "overlapping",
		Groups:       []string{"A", "B", "Rest"},
		DefaultGroup: "Rest",
		Rules: []domain.Rule{
			{Group: "A", Match: []domain.Predicate{{Field: domain.FieldLocation, Keywords: []string{"shared"}}}},
			{Group: "B", Match: []domain.Predicate{{Field: domain.FieldLocation, Keywords: []string{"shared", "only-b"}}}},
		},
	}
	if err := profile.Validate(); err != nil {
		t.Fatalf("profile should validate: %v", err)
	}

	records := []domain.NormalizedRecord{
		normalized("host", "/shared/path", 0),
		normalized("host", "/only-b/path", 1),
		normalized("host", "/neither", 2),
	}

	classifier := NewClassifier(profile)
	diags := classifier.Diagnose(records)

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	d := diags[0]
	if d.FirstRule != 0 || d.SecondRule != 1 || d.Records != 1 {
		t.Errorf("unexpected diagnostic: %+v", d)
	}

	// Overlap is informational; first match still wins.
	rec := normalized("host", "/shared/path", 0)
	if got := classifier.Classify(&rec); got != "A" {
		t.Errorf("first matching rule should win, got %q", got)
	}
}

func TestDiagnoseCleanProfile(t *testing.T) {
	records := []domain.NormalizedRecord{
		normalized("BambooAgent1", "/repo/.m2/settings.xml", 0),
		normalized("OracleDB01", "/u01", 1),
	}
	// Broker's Dev and SRE predicates are disjoint (SRE negates the
	// build-artifact markers), so no overlap should be observable.
	diags := NewClassifier(profiles.Broker()).Diagnose(records)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics for disjoint rules, got %+v", diags)
	}
}
