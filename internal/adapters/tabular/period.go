package tabular

import (
	"path/filepath"
	"strings"
)

// months in reporting order; matched as case-insensitive substrings of the
// file name, first hit wins.
var months = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Period extracts the reporting period from an export file name, e.g.
// "wiz_report_Oct.csv" -> "Oct". Returns "" when no month abbreviation is
// present.
func Period(path string) string {
	name := strings.ToLower(filepath.Base(path))
	for _, m := range months {
		if strings.Contains(name, strings.ToLower(m)) {
			return m
		}
	}
	return ""
}
