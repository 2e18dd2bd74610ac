package analyze

import (
	"sort"

	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// Aggregator counts records per group per severity level and builds the
// aggregate Total summary.
type Aggregator struct {
	policy domain.UnknownSeverityPolicy
}

// NewAggregator creates an aggregator applying the given unknown-severity
// policy. An empty policy defaults to folding pass-through buckets into None.
func NewAggregator(policy domain.UnknownSeverityPolicy) *Aggregator {
	if policy == "" {
		policy = domain.FoldUnknownToNone
	}
	return &Aggregator{policy: policy}
}

// Summarize produces one GroupSummary per group (in the given order) plus the
// Total summary. Counts are zero-filled over the canonical levels; exploit
// sub-counts cover Critical/High records whose exploit flag is set.
func (a *Aggregator) Summarize(records []domain.NormalizedRecord, groups map[string][]int, order []string) ([]domain.GroupSummary, domain.GroupSummary) {
	byRaw := make(map[int]*domain.NormalizedRecord, len(records))
	for i := range records {
		byRaw[records[i].Raw] = &records[i]
	}

	total := domain.NewGroupSummary(domain.TotalColumn)
	summaries := make([]domain.GroupSummary, 0, len(order))

	for _, group := range order {
		summary := domain.NewGroupSummary(group)
		for _, idx := range groups[group] {
			rec := byRaw[idx]
			if rec == nil {
				continue
			}
			a.count(&summary, rec)
			a.count(&total, rec)
		}
		summaries = append(summaries, summary)
	}

	return summaries, total
}

// count files one record into a summary under the active policy.
func (a *Aggregator) count(s *domain.GroupSummary, rec *domain.NormalizedRecord) {
	sev := rec.Severity
	if !sev.IsCanonical() {
		if a.policy == domain.ReportUnknownSeparately {
			if s.PassThrough == nil {
				s.PassThrough = make(map[domain.Severity]int)
			}
			s.PassThrough[sev]++
			s.Total++
			return
		}
		sev = domain.SeverityNone
	}

	s.Counts[sev]++
	s.Total++
	if sev.Exploitable() && rec.ExploitKnown {
		s.Exploits[sev]++
	}
}

// PassThroughSeverities returns the sorted union of pass-through buckets
// observed across the given summaries. Empty under the fold policy.
func PassThroughSeverities(summaries []domain.GroupSummary, total domain.GroupSummary) []domain.Severity {
	seen := make(map[domain.Severity]bool)
	collect := func(s domain.GroupSummary) {
		for sev := range s.PassThrough {
			seen[sev] = true
		}
	}
	for _, s := range summaries {
		collect(s)
	}
	collect(total)

	out := make([]domain.Severity, 0, len(seen))
	for sev := range seen {
		out = append(out, sev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
