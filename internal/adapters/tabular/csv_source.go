package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// CSVSource implements ports.TableSource for CSV scanner exports.
type CSVSource struct{}

// NewCSVSource creates a new CSV table source.
func NewCSVSource() *CSVSource {
	return &CSVSource{}
}

// Load reads the whole file into a Table. The first row is the header.
// Short rows pad with empty strings so ragged exports still load; values are
// kept verbatim.
func (s *CSVSource) Load(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.SourceError{Path: path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &domain.SourceError{Path: path, Err: domain.ErrEmptyInput}
	}
	if err != nil {
		return nil, &domain.SourceError{Path: path, Err: err}
	}

	table := &domain.Table{Columns: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.SourceError{Path: path, Err: fmt.Errorf("row %d: %w", len(table.Records)+2, err)}
		}

		values := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				values[col] = row[i]
			} else {
				values[col] = ""
			}
		}
		table.Records = append(table.Records, domain.Record{Values: values})
	}

	return table, nil
}
