package profiles

import (
	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// Builtin profiles for the three reporting portals. Keyword sets differ per
// portal on purpose; editing them here changes classification for everyone,
// so portal-specific tweaks belong in a custom YAML profile instead.
//
// Broker splits twice: CI/tooling assets (build agents plus the reporting
// tool) first by asset name, then by build-artifact markers in the location
// path. Everything outside the tooling pool is database-owned. Shopper and
// Employer split on location alone.

// toolingKeywords match assets owned by the tooling pool (build agents and
// the reporting server count as tooling, not data tier).
var toolingKeywords = []string{"bamboo", "tableau"}

// brokerDevKeywords are the build-artifact location markers for Broker.
var brokerDevKeywords = []string{".m2", "xml-data"}

// devLocationKeywords are the broader build-artifact markers used by the
// location-based portals.
var devLocationKeywords = []string{".m2", "npm", "node", "xml", "jar", "root"}

// Broker returns the asset-based three-group profile (Dev/SRE/DB).
func Broker() *domain.Profile {
	return &domain.Profile{
		Name:         "broker",
		Groups:       []string{"SRE", "Dev", "DB"},
		DefaultGroup: "DB",
		Rules: []domain.Rule{
			{
				Group: "Dev",
				Match: []domain.Predicate{
					{Field: domain.FieldAsset, Keywords: toolingKeywords},
					{Field: domain.FieldLocation, Keywords: brokerDevKeywords},
				},
			},
			{
				Group: "SRE",
				Match: []domain.Predicate{
					{Field: domain.FieldAsset, Keywords: toolingKeywords},
					{Field: domain.FieldLocation, Keywords: brokerDevKeywords, Negate: true},
				},
			},
		},
		ExploitGroups:   []string{"SRE"},
		UnknownSeverity: domain.FoldUnknownToNone,
	}
}

// Shopper returns the location-based two-group profile (Dev/SRE).
func Shopper() *domain.Profile {
	return locationProfile("shopper")
}

// Employer returns the location-based two-group profile (Dev/SRE).
func Employer() *domain.Profile {
	return locationProfile("employer")
}

func locationProfile(name string) *domain.Profile {
	return &domain.Profile{
		Name:         name,
		Groups:       []string{"SRE", "Dev"},
		DefaultGroup: "SRE",
		Rules: []domain.Rule{
			{
				Group: "Dev",
				Match: []domain.Predicate{
					{Field: domain.FieldLocation, Keywords: devLocationKeywords},
				},
			},
		},
		ExploitGroups:   []string{"SRE"},
		UnknownSeverity: domain.FoldUnknownToNone,
	}
}

// Builtin returns the builtin profile set keyed by name.
func Builtin() map[string]*domain.Profile {
	return map[string]*domain.Profile{
		"broker":   Broker(),
		"shopper":  Shopper(),
		"employer": Employer(),
	}
}
