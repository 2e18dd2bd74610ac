package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiztriage/wiztriage/internal/core/domain"
	"github.com/wiztriage/wiztriage/internal/profiles"
)

func brokerMatrix(t *testing.T) *domain.Matrix {
	t.Helper()

	records := []domain.NormalizedRecord{
		record(0, domain.SeverityCritical, true),
		record(1, domain.SeverityHigh, true),
		record(2, domain.SeverityHigh, false),
		record(3, domain.SeverityMedium, false),
		record(4, domain.SeverityNone, false),
	}
	groups := map[string][]int{"SRE": {0, 1}, "Dev": {2, 3}, "DB": {4}}

	profile := profiles.Broker()
	summaries, total := NewAggregator(profile.UnknownSeverity).Summarize(records, groups, profile.Groups)
	return NewComposer(profile).Compose(summaries, total)
}

func TestComposeShape(t *testing.T) {
	m := brokerMatrix(t)

	// Total column first, then groups in declared order.
	assert.Equal(t, []string{"Total", "SRE", "Dev", "DB"}, m.Columns)

	// One row per canonical severity, in display order.
	require.Len(t, m.Rows, len(domain.SeverityOrder))
	for i, sev := range domain.SeverityOrder {
		assert.Equal(t, sev, m.Rows[i].Severity)
		assert.Len(t, m.Rows[i].Cells, len(m.Columns))
	}
}

func TestComposeCounts(t *testing.T) {
	m := brokerMatrix(t)

	// Rows: Critical, High, Medium, Low, None. Columns: Total, SRE, Dev, DB.
	critical := m.Rows[0]
	assert.Equal(t, 1, critical.Cells[0].Count)
	assert.Equal(t, 1, critical.Cells[1].Count)
	assert.Equal(t, 0, critical.Cells[2].Count)

	high := m.Rows[1]
	assert.Equal(t, 2, high.Cells[0].Count)
	assert.Equal(t, 1, high.Cells[1].Count)
	assert.Equal(t, 1, high.Cells[2].Count)

	assert.Equal(t, 5, m.TotalRow.Cells[0].Count)
	assert.Equal(t, 2, m.TotalRow.Cells[1].Count)
	assert.Equal(t, 2, m.TotalRow.Cells[2].Count)
	assert.Equal(t, 1, m.TotalRow.Cells[3].Count)
}

func TestComposeExploitCells(t *testing.T) {
	m := brokerMatrix(t)

	critical := m.Rows[0]
	high := m.Rows[1]
	medium := m.Rows[2]

	// Broker tracks exploits for SRE (column 1) and therefore Total (column 0).
	require.NotNil(t, critical.Cells[0].Exploit)
	require.NotNil(t, critical.Cells[1].Exploit)
	assert.Equal(t, 1, *critical.Cells[1].Exploit)
	require.NotNil(t, high.Cells[1].Exploit)
	assert.Equal(t, 1, *high.Cells[1].Exploit)

	// Dev is not an exploit group; Medium rows never carry sub-counts.
	assert.Nil(t, critical.Cells[2].Exploit)
	assert.Nil(t, high.Cells[2].Exploit)
	for _, cell := range medium.Cells {
		assert.Nil(t, cell.Exploit)
	}
}

func TestComposeAppendsPassThroughRows(t *testing.T) {
	profile := &domain.Profile{
		Name:            "strict",
		Groups:          []string{"Dev"},
		DefaultGroup:    "Dev",
		Rules:           []domain.Rule{{Group: "Dev", Match: []domain.Predicate{{Field: domain.FieldLocation, Keywords: []string{"x"}}}}},
		UnknownSeverity: domain.ReportUnknownSeparately,
	}

	records := []domain.NormalizedRecord{
		record(0, domain.Severity("Urgent"), false),
		record(1, domain.SeverityLow, false),
	}
	groups := map[string][]int{"Dev": {0, 1}}

	summaries, total := NewAggregator(profile.UnknownSeverity).Summarize(records, groups, profile.Groups)
	m := NewComposer(profile).Compose(summaries, total)

	require.Len(t, m.Rows, len(domain.SeverityOrder)+1)
	last := m.Rows[len(m.Rows)-1]
	assert.Equal(t, domain.Severity("Urgent"), last.Severity)
	assert.Equal(t, 1, last.Cells[0].Count) // Total column
	assert.Equal(t, 1, last.Cells[1].Count) // Dev column
}
