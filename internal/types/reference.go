// Package types provides type definitions for structured data used throughout the bacteria-identifier system.
package types

// Field names with special handling during scoring.
const (
	// DefaultKeyField is the column that uniquely identifies a candidate.
	DefaultKeyField = "Genus"
	// NotesField carries free-form notes; it is excluded from scoring and
	// passed through to output for display.
	NotesField = "Extra Notes"
	// TemperatureField is scored as a numeric range check when the
	// reference value uses the "low//high" form.
	TemperatureField = "Growth Temperature"
)

// ReferenceRow represents one candidate genus in the reference table.
// Values maps field name to the reference value; a missing field is
// equivalent to a blank value.
type ReferenceRow struct {
	Genus  string            `json:"genus"`
	Values map[string]string `json:"values"`
}

// Value returns the reference value for a field, treating missing fields as blank.
func (r *ReferenceRow) Value(field string) string {
	if r.Values == nil {
		return ""
	}
	return r.Values[field]
}

// Notes returns the free-form notes for this row, if any.
func (r *ReferenceRow) Notes() string {
	return r.Value(NotesField)
}

// ReferenceTable represents the full reference database of candidate genera.
// It is loaded once and treated as immutable for the process lifetime;
// concurrent Identify calls may share one table without coordination.
type ReferenceTable struct {
	// KeyField is the name of the identifying column (normally "Genus").
	KeyField string `json:"key_field"`
	// Fields is the ordered field schema, excluding KeyField. Column names
	// form the authoritative schema; nothing beyond the hard-exclusion set
	// and the temperature special case is hardcoded.
	Fields []string       `json:"fields"`
	Rows   []ReferenceRow `json:"rows"`
}

// ScoredFields returns the schema fields that participate in scoring,
// i.e. everything except the notes column.
func (t *ReferenceTable) ScoredFields() []string {
	fields := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		if f == NotesField {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// Len returns the number of candidate rows.
func (t *ReferenceTable) Len() int {
	return len(t.Rows)
}
