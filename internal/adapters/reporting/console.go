package reporting

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// ConsoleRenderer prints the summary matrix and group totals as a terminal
// table.
type ConsoleRenderer struct{}

// NewConsoleRenderer creates a new console renderer.
func NewConsoleRenderer() *ConsoleRenderer {
	return &ConsoleRenderer{}
}

// Render prints the analysis summary.
func (r *ConsoleRenderer) Render(analysis *domain.Analysis) error {
	m := analysis.Matrix

	pterm.DefaultSection.Printf("Summary - profile %s (%d records)", analysis.Profile, analysis.Table.Len())

	header := []string{"Severity"}
	for _, col := range m.Columns {
		header = append(header, col)
	}
	data := [][]string{header}

	rows := append(append([]domain.MatrixRow{}, m.Rows...), m.TotalRow)
	for _, row := range rows {
		line := []string{r.severityLabel(row.Severity)}
		for _, cell := range row.Cells {
			line = append(line, r.cellText(cell))
		}
		data = append(data, line)
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	for _, s := range analysis.Summaries {
		pterm.Info.Printf("%s: %d records\n", s.Group, s.Total)
	}

	for _, d := range analysis.Diagnostics {
		pterm.Warning.Printf("rules %d (%s) and %d (%s) both matched %d record(s); order decides\n",
			d.FirstRule, d.Group, d.SecondRule, d.OtherGroup, d.Records)
	}

	return nil
}

// cellText renders a count, with the exploit sub-count when tracked.
func (r *ConsoleRenderer) cellText(cell domain.Cell) string {
	if cell.Exploit != nil {
		return fmt.Sprintf("%d (%d expl.)", cell.Count, *cell.Exploit)
	}
	return strconv.Itoa(cell.Count)
}

func (r *ConsoleRenderer) severityLabel(s domain.Severity) string {
	switch s {
	case domain.SeverityCritical:
		return pterm.FgRed.Sprint(string(s))
	case domain.SeverityHigh:
		return pterm.FgLightRed.Sprint(string(s))
	case domain.SeverityMedium:
		return pterm.FgYellow.Sprint(string(s))
	case domain.SeverityLow:
		return pterm.FgBlue.Sprint(string(s))
	default:
		return string(s)
	}
}
