package dates

import (
	"errors"
	"fmt"
	"time"
)

const (
	// LayoutDate is the bare calendar-date pattern accepted by Fix.
	LayoutDate = "2006-01-02"

	// LayoutDateTime is the calendar-date-plus-time pattern accepted by Fix.
	LayoutDateTime = "2006-01-02 15:04:05"
)

// ErrUnrecognizedDate is returned when a value matches neither accepted
// pattern and is not already a valid RFC 3339 timestamp. Unmatched values
// are a validation failure, never passed through or guessed.
var ErrUnrecognizedDate = errors.New("value matches no accepted date format")

// Column describes one column of a table schema, as returned by the schema
// introspection endpoints.
type Column struct {
	// Name is the column name.
	Name string `json:"name"`

	// Type is the service-side column type, e.g. "string" or "datetime".
	Type string `json:"type"`
}

// Fix converts a date string in one of the accepted patterns to RFC 3339 in
// the given location (UTC when nil). A value that already is valid RFC 3339
// is returned unchanged.
func Fix(value string, loc *time.Location) (string, error) {
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return value, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range []string{LayoutDateTime, LayoutDate} {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed.Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnrecognizedDate, value)
}

// FixTime formats a time value as RFC 3339 in the given location (UTC when
// nil).
func FixTime(value time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return value.In(loc).Format(time.RFC3339)
}

// NormalizeRecord rewrites the datetime-typed columns of a record payload to
// RFC 3339 in place. Only present, string-valued entries are touched; a
// string that matches no accepted pattern fails with ErrUnrecognizedDate and
// leaves the record unmodified.
func NormalizeRecord(record map[string]any, columns []Column, loc *time.Location) error {
	fixed := map[string]string{}
	for _, column := range columns {
		if column.Type != "datetime" {
			continue
		}

		value, ok := record[column.Name]
		if !ok {
			continue
		}
		raw, ok := value.(string)
		if !ok {
			continue
		}

		normalized, err := Fix(raw, loc)
		if err != nil {
			return fmt.Errorf("column %q: %w", column.Name, err)
		}
		fixed[column.Name] = normalized
	}

	for name, value := range fixed {
		record[name] = value
	}
	return nil
}
