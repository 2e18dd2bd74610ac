package analyze

import (
	"strings"

	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// Normalizer canonicalizes raw record fields for matching and counting.
// It never mutates the source table; exports always see the raw values.
type Normalizer struct{}

// NewNormalizer creates a new normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts one raw record into its matching/counting view using the
// resolved schema. idx is the record's position in the source table.
func (n *Normalizer) Normalize(rec domain.Record, schema domain.Schema, idx int) domain.NormalizedRecord {
	out := domain.NormalizedRecord{
		Asset:    normalizeText(rec.Get(schema.Asset)),
		Location: normalizeText(rec.Get(schema.Location)),
		Severity: NormalizeSeverity(rec.Get(schema.Severity)),
		Raw:      idx,
	}
	if schema.Subscription != "" {
		out.Subscription = normalizeText(rec.Get(schema.Subscription))
	}
	if schema.Exploit != "" {
		out.ExploitKnown = parseExploitFlag(rec.Get(schema.Exploit))
	}
	return out
}

// NormalizeTable normalizes every record of a table in input order.
func (n *Normalizer) NormalizeTable(table *domain.Table, schema domain.Schema) []domain.NormalizedRecord {
	out := make([]domain.NormalizedRecord, 0, len(table.Records))
	for i, rec := range table.Records {
		out = append(out, n.Normalize(rec, schema, i))
	}
	return out
}

// NormalizeSeverity maps a raw vendor severity label into the taxonomy.
// Recognized level names are matched as substrings, most specific first, so
// labels like "CRITICAL (9.8)" still land in the right bucket. Empty values
// and informational synonyms map to None. Anything else is preserved as a
// title-cased pass-through bucket; the aggregator decides what to do with it.
func NormalizeSeverity(raw string) domain.Severity {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.SeverityNone
	}

	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "critical"):
		return domain.SeverityCritical
	case strings.Contains(l, "high"):
		return domain.SeverityHigh
	case strings.Contains(l, "medium"):
		return domain.SeverityMedium
	case strings.Contains(l, "low"):
		return domain.SeverityLow
	}

	switch l {
	case "none", "info", "informational", "na", "n/a":
		return domain.SeverityNone
	}

	return domain.Severity(titleCase(s))
}

// parseExploitFlag reports whether an exploit-known value means yes.
// Scanner exports use "Yes"/"No" or "true"/"false" interchangeably.
func parseExploitFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true":
		return true
	default:
		return false
	}
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// titleCase upper-cases the first letter of each space-separated word.
// strings.Title is deprecated and we only deal with ASCII severity labels.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
