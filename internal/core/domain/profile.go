package domain

import (
	"fmt"
	"strings"
)

// Domain errors for profile configuration
var (
	ErrNoRules         = fmt.Errorf("profile has no classification rules")
	ErrNoGroups        = fmt.Errorf("profile declares no groups")
	ErrEmptyKeywords   = fmt.Errorf("predicate keyword set cannot be empty")
	ErrInvalidField    = fmt.Errorf("predicate references an unknown field")
	ErrUnknownGroup    = fmt.Errorf("rule targets a group outside the profile universe")
	ErrNoDefaultGroup  = fmt.Errorf("default group is not part of the profile universe")
	ErrInvalidSeverity = fmt.Errorf("invalid unknown-severity policy")
)

// UnknownSeverityPolicy decides what the aggregator does with pass-through
// severity buckets that fall outside the five-level taxonomy.
type UnknownSeverityPolicy string

const (
	// FoldUnknownToNone folds pass-through buckets into the None row.
	FoldUnknownToNone UnknownSeverityPolicy = "fold"
	// ReportUnknownSeparately keeps pass-through buckets as extra rows
	// appended after None.
	ReportUnknownSeparately UnknownSeverityPolicy = "separate"
)

// Predicate is a pure boolean test over one normalized record field: true
// when the field contains ANY keyword (case-insensitive substring). Negate
// inverts the result.
type Predicate struct {
	Field    Field    `yaml:"field" json:"field"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Negate   bool     `yaml:"negate,omitempty" json:"negate,omitempty"`
}

// Validate performs internal consistency checks on the predicate.
func (p *Predicate) Validate() error {
	switch p.Field {
	case FieldAsset, FieldLocation, FieldSubscription:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidField, p.Field)
	}
	if len(p.Keywords) == 0 {
		return ErrEmptyKeywords
	}
	for _, k := range p.Keywords {
		if strings.TrimSpace(k) == "" {
			return ErrEmptyKeywords
		}
	}
	return nil
}

// Matches evaluates the predicate against a normalized record. Keyword
// matching is plain substring containment; normalized fields are already
// lower-cased, so keywords are lowered here before comparison.
func (p *Predicate) Matches(rec *NormalizedRecord) bool {
	value := rec.FieldValue(p.Field)
	hit := false
	for _, k := range p.Keywords {
		if strings.Contains(value, strings.ToLower(k)) {
			hit = true
			break
		}
	}
	if p.Negate {
		return !hit
	}
	return hit
}

// Rule assigns records to a group when ALL of its predicates match.
type Rule struct {
	Group string      `yaml:"group" json:"group"`
	Match []Predicate `yaml:"match" json:"match"`
}

// Matches reports whether every predicate of the rule holds for the record.
func (r *Rule) Matches(rec *NormalizedRecord) bool {
	for i := range r.Match {
		if !r.Match[i].Matches(rec) {
			return false
		}
	}
	return true
}

// Profile is the data-driven configuration of one reporting context: the
// ordered rule list, the full group universe (in display/column order), the
// default group for unmatched records, and reporting policy knobs.
type Profile struct {
	Name            string                `yaml:"name" json:"name"`
	Groups          []string              `yaml:"groups" json:"groups"`
	DefaultGroup    string                `yaml:"default_group" json:"default_group"`
	Rules           []Rule                `yaml:"rules" json:"rules"`
	ExploitGroups   []string              `yaml:"exploit_groups,omitempty" json:"exploit_groups,omitempty"`
	UnknownSeverity UnknownSeverityPolicy `yaml:"unknown_severity,omitempty" json:"unknown_severity,omitempty"`
}

// Validate checks the profile for structural consistency: non-empty rule list
// and universe, every rule target and the default group inside the universe,
// and well-formed predicates.
func (p *Profile) Validate() error {
	if len(p.Groups) == 0 {
		return ErrNoGroups
	}
	if len(p.Rules) == 0 {
		return ErrNoRules
	}

	universe := make(map[string]bool, len(p.Groups))
	for _, g := range p.Groups {
		universe[g] = true
	}

	if !universe[p.DefaultGroup] {
		return fmt.Errorf("%w: %q", ErrNoDefaultGroup, p.DefaultGroup)
	}
	for _, g := range p.ExploitGroups {
		if !universe[g] {
			return fmt.Errorf("%w: exploit group %q", ErrUnknownGroup, g)
		}
	}

	for i, rule := range p.Rules {
		if !universe[rule.Group] {
			return fmt.Errorf("%w: rule %d targets %q", ErrUnknownGroup, i, rule.Group)
		}
		for j := range rule.Match {
			if err := rule.Match[j].Validate(); err != nil {
				return fmt.Errorf("rule %d (%s), predicate %d: %w", i, rule.Group, j, err)
			}
		}
	}

	switch p.UnknownSeverity {
	case "", FoldUnknownToNone, ReportUnknownSeparately:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSeverity, p.UnknownSeverity)
	}

	return nil
}

// CountsExploits reports whether exploit sub-counts are rendered for a group.
func (p *Profile) CountsExploits(group string) bool {
	for _, g := range p.ExploitGroups {
		if g == group {
			return true
		}
	}
	return false
}
