package domain

import "strings"

// Schema holds the resolved column names of an input table. Required columns
// are always present after ResolveSchema succeeds; optional ones are empty
// strings when the export does not carry them.
type Schema struct {
	Asset         string
	Location      string
	Severity      string
	Exploit       string
	Subscription  string
	Status        string
	FirstDetected string
	ResolvedAt    string
}

// Column header candidates, matched case-insensitively. Scanner exports are
// inconsistent about spacing ("LocationPath" vs "Location Path").
var (
	assetCandidates         = []string{"AssetName", "Asset Name", "Asset"}
	locationCandidates      = []string{"LocationPath", "Location Path", "Location"}
	severityCandidates      = []string{"VendorSeverity", "Vendor Severity", "Severity"}
	exploitCandidates       = []string{"HasExploit", "Has Exploit", "ExploitKnown"}
	subscriptionCandidates  = []string{"SubscriptionName", "Subscription Name", "Subscription"}
	statusCandidates        = []string{"FindingStatus", "Finding Status", "Status"}
	firstDetectedCandidates = []string{"FirstDetected", "First Detected", "FirstSeen"}
	resolvedAtCandidates    = []string{"ResolvedAt", "Resolved At", "ResolvedTime"}
)

// ResolveSchema maps a table's column headers onto the Schema. It returns a
// MissingFieldError listing every absent required column so the caller can
// report them all at once.
func ResolveSchema(columns []string) (Schema, error) {
	byLower := make(map[string]string, len(columns))
	for _, c := range columns {
		byLower[strings.ToLower(strings.TrimSpace(c))] = c
	}

	find := func(candidates []string) string {
		for _, cand := range candidates {
			if actual, ok := byLower[strings.ToLower(cand)]; ok {
				return actual
			}
		}
		return ""
	}

	s := Schema{
		Asset:         find(assetCandidates),
		Location:      find(locationCandidates),
		Severity:      find(severityCandidates),
		Exploit:       find(exploitCandidates),
		Subscription:  find(subscriptionCandidates),
		Status:        find(statusCandidates),
		FirstDetected: find(firstDetectedCandidates),
		ResolvedAt:    find(resolvedAtCandidates),
	}

	var missing []string
	if s.Asset == "" {
		missing = append(missing, assetCandidates[0])
	}
	if s.Location == "" {
		missing = append(missing, locationCandidates[0])
	}
	if s.Severity == "" {
		missing = append(missing, severityCandidates[0])
	}
	if len(missing) > 0 {
		return Schema{}, &MissingFieldError{Fields: missing}
	}

	return s, nil
}
