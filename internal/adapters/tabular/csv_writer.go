package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// CSVWriter implements ports.Exporter by writing one CSV per group in the
// original column schema, plus a summary CSV of the matrix.
type CSVWriter struct {
	outDir string
}

// NewCSVWriter creates a CSV writer targeting outDir ("" means cwd).
func NewCSVWriter(outDir string) *CSVWriter {
	return &CSVWriter{outDir: outDir}
}

// Export writes <Group>_<base>.csv for every group and Summary_<base>.csv.
// The base name carries the reporting period when one was detected.
func (w *CSVWriter) Export(ctx context.Context, analysis *domain.Analysis) error {
	if w.outDir != "" {
		if err := os.MkdirAll(w.outDir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	base := baseName(analysis)
	for _, group := range analysis.Matrix.Columns[1:] {
		path := filepath.Join(w.outDir, fmt.Sprintf("%s_%s.csv", group, base))
		table := analysis.GroupTable(group)
		if err := writeTable(path, table); err != nil {
			return err
		}
		slog.Info("group export written", "group", group, "path", path, "records", table.Len())
	}

	summaryPath := filepath.Join(w.outDir, fmt.Sprintf("Summary_%s.csv", base))
	if err := writeMatrix(summaryPath, analysis.Matrix); err != nil {
		return err
	}
	slog.Info("summary export written", "path", summaryPath)

	return nil
}

func baseName(analysis *domain.Analysis) string {
	base := filepath.Base(analysis.Source)
	base = base[:len(base)-len(filepath.Ext(base))]
	if base == "" || base == "." {
		base = analysis.Profile
	}
	return base
}

func writeTable(path string, table *domain.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(table.Columns); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	row := make([]string, len(table.Columns))
	for _, rec := range table.Records {
		for i, col := range table.Columns {
			row[i] = rec.Get(col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeMatrix flattens the summary matrix: a header row with the column
// names, a severity row per level (exploit sub-counts in a trailing column
// per tracked group), and the Total row last.
func writeMatrix(path string, m *domain.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	header := []string{"Severity"}
	for i, col := range m.Columns {
		header = append(header, col)
		if matrixTracksExploits(m, i) {
			header = append(header, col+" Exploitable")
		}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	rows := append(append([]domain.MatrixRow{}, m.Rows...), m.TotalRow)
	for _, row := range rows {
		out := []string{string(row.Severity)}
		for i, cell := range row.Cells {
			out = append(out, strconv.Itoa(cell.Count))
			if matrixTracksExploits(m, i) {
				if cell.Exploit != nil {
					out = append(out, strconv.Itoa(*cell.Exploit))
				} else {
					out = append(out, "")
				}
			}
		}
		if err := cw.Write(out); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// matrixTracksExploits reports whether column i carries exploit sub-cells on
// any row.
func matrixTracksExploits(m *domain.Matrix, i int) bool {
	for _, row := range m.Rows {
		if i < len(row.Cells) && row.Cells[i].Exploit != nil {
			return true
		}
	}
	return false
}
