package analyze

import (
	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// Composer arranges aggregated summaries into the fixed-shape matrix handed
// to renderers: severity rows in display order, Total column first, then one
// column per group in the profile's declared order.
type Composer struct {
	profile *domain.Profile
}

// NewComposer creates a composer for a profile.
func NewComposer(profile *domain.Profile) *Composer {
	return &Composer{profile: profile}
}

// Compose builds the summary matrix. Exploit sub-counts appear on the
// Critical and High rows, only for the Total column and the groups the
// profile tracks exploits for. Pass-through severity rows, when the profile
// reports them separately, are appended after None.
func (c *Composer) Compose(summaries []domain.GroupSummary, total domain.GroupSummary) *domain.Matrix {
	columns := append([]string{domain.TotalColumn}, c.profile.Groups...)

	bySummary := make(map[string]domain.GroupSummary, len(summaries)+1)
	bySummary[domain.TotalColumn] = total
	for _, s := range summaries {
		bySummary[s.Group] = s
	}

	m := &domain.Matrix{
		Profile: c.profile.Name,
		Columns: columns,
	}

	severities := append([]domain.Severity{}, domain.SeverityOrder...)
	severities = append(severities, PassThroughSeverities(summaries, total)...)

	for _, sev := range severities {
		row := domain.MatrixRow{Severity: sev}
		for _, col := range columns {
			s := bySummary[col]
			cell := domain.Cell{Count: c.countFor(s, sev)}
			if sev.Exploitable() && c.tracksExploits(col) {
				n := s.Exploits[sev]
				cell.Exploit = &n
			}
			row.Cells = append(row.Cells, cell)
		}
		m.Rows = append(m.Rows, row)
	}

	totalRow := domain.MatrixRow{Severity: domain.TotalColumn}
	for _, col := range columns {
		totalRow.Cells = append(totalRow.Cells, domain.Cell{Count: bySummary[col].Total})
	}
	m.TotalRow = totalRow

	return m
}

func (c *Composer) countFor(s domain.GroupSummary, sev domain.Severity) int {
	if sev.IsCanonical() {
		return s.Counts[sev]
	}
	return s.PassThrough[sev]
}

// tracksExploits reports whether a matrix column carries exploit sub-cells.
// The Total column always does when any group does.
func (c *Composer) tracksExploits(column string) bool {
	if column == domain.TotalColumn {
		return len(c.profile.ExploitGroups) > 0
	}
	return c.profile.CountsExploits(column)
}
