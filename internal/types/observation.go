package types

import "strings"

// UnknownSentinel marks a field the user could not test. It is equivalent
// to leaving the field blank.
const UnknownSentinel = "unknown"

// ObservationSet is the user input: a mapping from field name to observed
// value. Multi-valued observations are semicolon-joined ("or" selection).
type ObservationSet map[string]string

// IsUnobserved reports whether a raw value carries no information:
// blank, whitespace-only, or the "unknown" sentinel (case-insensitive).
func IsUnobserved(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, UnknownSentinel)
}

// Observed returns the value supplied for a field and whether it carries
// information.
func (o ObservationSet) Observed(field string) (string, bool) {
	value, ok := o[field]
	if !ok || IsUnobserved(value) {
		return "", false
	}
	return value, true
}

// SuppliedCount returns the number of fields the user actually supplied
// (non-blank, non-"unknown"), excluding the notes field.
func (o ObservationSet) SuppliedCount() int {
	count := 0
	for field, value := range o {
		if field == NotesField {
			continue
		}
		if !IsUnobserved(value) {
			count++
		}
	}
	return count
}

// UnobservedFields returns the schema fields the user left blank or marked
// unknown, in schema order. Fields absent from the observation map count as
// unobserved.
func (o ObservationSet) UnobservedFields(schema []string) []string {
	var fields []string
	for _, field := range schema {
		if _, ok := o.Observed(field); !ok {
			fields = append(fields, field)
		}
	}
	return fields
}
