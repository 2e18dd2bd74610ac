package domain

// Record is one raw finding row as exported by the vulnerability scanner.
// Values are kept verbatim so group exports preserve the original table.
type Record struct {
	Values map[string]string `json:"values"`
}

// Get returns the raw value for a column, or "" when the column is absent.
func (r Record) Get(column string) string {
	return r.Values[column]
}

// Table is a fully materialized record collection with its column order.
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.Records)
}

// Field identifies a normalized record field that predicates can match on.
type Field string

const (
	FieldAsset        Field = "asset"
	FieldLocation     Field = "location"
	FieldSubscription Field = "subscription"
)

// NormalizedRecord is the matching/counting view of a Record. Text fields are
// lower-cased and trimmed, missing values become empty strings, and the raw
// severity label is mapped into the severity taxonomy. Raw keeps the index of
// the source record so group exports can recover the original row.
type NormalizedRecord struct {
	Asset        string
	Location     string
	Subscription string
	Severity     Severity
	ExploitKnown bool
	AgeDays      int  // days between detection and resolution (or now)
	HasAge       bool // false when the detection timestamp is missing/invalid
	Raw          int
}

// FieldValue returns the normalized value for a predicate field.
func (n *NormalizedRecord) FieldValue(f Field) string {
	switch f {
	case FieldAsset:
		return n.Asset
	case FieldLocation:
		return n.Location
	case FieldSubscription:
		return n.Subscription
	default:
		return ""
	}
}
