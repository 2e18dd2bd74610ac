package domain

import "time"

// TotalColumn is the reserved name of the aggregate column/summary.
const TotalColumn = "Total"

// GroupSummary holds the severity distribution of one group: zero-filled
// counts per canonical level (plus any pass-through buckets), the row total,
// and exploit sub-counts for the Critical/High rows.
type GroupSummary struct {
	Group       string           `json:"group"`
	Counts      map[Severity]int `json:"counts"`
	Exploits    map[Severity]int `json:"exploits"`
	PassThrough map[Severity]int `json:"pass_through,omitempty"`
	Total       int              `json:"total"`
}

// NewGroupSummary initializes a summary with every canonical level zero-filled.
func NewGroupSummary(group string) GroupSummary {
	counts := make(map[Severity]int, len(SeverityOrder))
	for _, s := range SeverityOrder {
		counts[s] = 0
	}
	return GroupSummary{
		Group:    group,
		Counts:   counts,
		Exploits: make(map[Severity]int),
	}
}

// Cell is one matrix entry: the severity count for a group, with an optional
// exploit sub-count on Critical/High rows for groups that track it.
type Cell struct {
	Count   int  `json:"count"`
	Exploit *int `json:"exploit,omitempty"`
}

// MatrixRow is one severity row across all columns, Total column first.
type MatrixRow struct {
	Severity Severity `json:"severity"`
	Cells    []Cell   `json:"cells"`
}

// Matrix is the fixed-shape summary handed to renderers: one row per severity
// in display order (pass-through buckets appended when the profile reports
// them separately), a Total row, and one column per group in the profile's
// declared order preceded by the Total column.
type Matrix struct {
	Profile  string      `json:"profile"`
	Columns  []string    `json:"columns"`
	Rows     []MatrixRow `json:"rows"`
	TotalRow MatrixRow   `json:"total_row"`
}

// Diagnostic flags an observable rule overlap: two rules that both matched at
// least one record. Informational only; first-match-wins already resolves it.
type Diagnostic struct {
	FirstRule  int    `json:"first_rule"`
	SecondRule int    `json:"second_rule"`
	Group      string `json:"group"`
	OtherGroup string `json:"other_group"`
	Records    int    `json:"records"`
}

// Analysis is the full result of one run: metadata, the per-group record
// subsets (indices into the source table, in input order), the aggregated
// summaries, the composed matrix, and any overlap diagnostics.
type Analysis struct {
	ID          string           `json:"id"`
	Profile     string           `json:"profile"`
	Source      string           `json:"source"`
	Period      string           `json:"period,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	Table       *Table           `json:"-"`
	Schema      Schema           `json:"-"`
	Groups      map[string][]int `json:"groups"`
	Summaries   []GroupSummary   `json:"summaries"`
	Total       GroupSummary     `json:"total"`
	Matrix      *Matrix          `json:"matrix"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty"`
}

// GroupTable returns the records of one group as a table in the original
// column schema, raw values untouched.
func (a *Analysis) GroupTable(group string) *Table {
	indices := a.Groups[group]
	records := make([]Record, 0, len(indices))
	for _, idx := range indices {
		records = append(records, a.Table.Records[idx])
	}
	return &Table{Columns: a.Table.Columns, Records: records}
}
