package analyze

import (
	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// Classifier partitions normalized records into the disjoint groups of a
// profile. Rules are evaluated in list order and the first match wins; a
// record no rule claims goes to the profile's default group.
type Classifier struct {
	profile *domain.Profile
}

// NewClassifier creates a classifier for a validated profile.
func NewClassifier(profile *domain.Profile) *Classifier {
	return &Classifier{profile: profile}
}

// Classify returns the group name for a single record.
func (c *Classifier) Classify(rec *domain.NormalizedRecord) string {
	for i := range c.profile.Rules {
		if c.profile.Rules[i].Matches(rec) {
			return c.profile.Rules[i].Group
		}
	}
	return c.profile.DefaultGroup
}

// Partition classifies every record and returns, for each group in the
// profile universe, the indices of its records in input order. Every group
// is present in the result, empty or not, so downstream consumers can rely
// on the full universe.
func (c *Classifier) Partition(records []domain.NormalizedRecord) map[string][]int {
	groups := make(map[string][]int, len(c.profile.Groups))
	for _, g := range c.profile.Groups {
		groups[g] = []int{}
	}
	for i := range records {
		g := c.Classify(&records[i])
		groups[g] = append(groups[g], records[i].Raw)
	}
	return groups
}

// Diagnose evaluates every rule against every record and reports rule pairs
// that both matched at least one record. Overlap is not an error (first
// match wins) but makes results order-dependent, which is worth surfacing
// when someone edits a profile.
func (c *Classifier) Diagnose(records []domain.NormalizedRecord) []domain.Diagnostic {
	rules := c.profile.Rules
	overlap := make(map[[2]int]int)

	for i := range records {
		var matched []int
		for r := range rules {
			if rules[r].Matches(&records[i]) {
				matched = append(matched, r)
			}
		}
		for a := 0; a < len(matched); a++ {
			for b := a + 1; b < len(matched); b++ {
				overlap[[2]int{matched[a], matched[b]}]++
			}
		}
	}

	var diags []domain.Diagnostic
	for r := 0; r < len(rules); r++ {
		for s := r + 1; s < len(rules); s++ {
			if n := overlap[[2]int{r, s}]; n > 0 {
				diags = append(diags, domain.Diagnostic{
					FirstRule:  r,
					SecondRule: s,
					Group:      rules[r].Group,
					OtherGroup: rules[s].Group,
					Records:    n,
				})
			}
		}
	}
	return diags
}
