// Package relabel holds the code to label tables used by the API and the
// chart transforms. Tables are immutable once built.
package relabel

import "github.com/dayanaadylkhanova/barnum/internal/entity"

// Table maps a category code to a human label.
type Table struct {
	labels map[string]string
}

func NewTable(labels map[string]string) Table {
	m := make(map[string]string, len(labels))
	for k, v := range labels {
		m[k] = v
	}
	return Table{labels: m}
}

// Lookup returns the label for code and whether the code is known.
func (t Table) Lookup(code string) (string, bool) {
	l, ok := t.labels[code]
	return l, ok
}

// Label returns the label for code, or code itself when the table has no entry.
func (t Table) Label(code string) string {
	if l, ok := t.labels[code]; ok {
		return l
	}
	return code
}

func (t Table) Len() int { return len(t.labels) }

// Rows returns copies of rows with the string column col relabeled.
// Non-string and unknown values are kept as they are.
func (t Table) Rows(rows []entity.Row, col string) []entity.Row {
	out := entity.CloneRows(rows)
	for _, r := range out {
		if s, ok := r[col].(string); ok {
			r[col] = t.Label(s)
		}
	}
	return out
}
