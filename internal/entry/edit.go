package entry

import (
	"errors"
	"fmt"
)

// Field identifies the editable time of an entry
type Field string

const (
	FieldStart Field = "start"
	FieldEnd   Field = "end"
)

// ErrUnknownField is returned when a field name is neither start nor end
var ErrUnknownField = errors.New("unknown field: expected start or end")

// ParseField converts a field name into a Field
func ParseField(name string) (Field, error) {
	switch Field(name) {
	case FieldStart, FieldEnd:
		return Field(name), nil
	}
	return "", fmt.Errorf("%w, got %q", ErrUnknownField, name)
}

// ValidationError reports a time value that cannot be applied to an entry.
// Message is meant to be shown to the user as-is.
type ValidationError struct {
	Field   Field
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field Field, value string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("Invalid %s time format. Expected HH:MM", field),
	}
}

// ApplyEdit sets one time field of the entry dated date in month and recomputes
// its hours, returning the updated collection.
//
// The input collection is never modified. When value is not a valid time a
// *ValidationError is returned together with c itself. A month that does not
// exist, or a date that matches no entry, is not an error: the collection comes
// back unchanged.
func ApplyEdit(c MonthlyCollection, month, date string, field Field, value string) (MonthlyCollection, error) {
	if field != FieldStart && field != FieldEnd {
		return c, fmt.Errorf("%w, got %q", ErrUnknownField, field)
	}
	if !IsValidTime(value) {
		return c, newValidationError(field, value)
	}

	entries, ok := c.Get(month)
	if !ok {
		return c, nil
	}

	updated := make([]Entry, len(entries))
	for i, e := range entries {
		if e.Date != date {
			updated[i] = e
			continue
		}

		if field == FieldStart {
			e.Start = value
		} else {
			e.End = value
		}

		hours, err := HoursBetween(e.Start, e.End)
		if err != nil {
			// The stored counterpart is not a valid time, so hours cannot be derived
			other, otherValue := FieldEnd, e.End
			if field == FieldEnd {
				other, otherValue = FieldStart, e.Start
			}
			return c, newValidationError(other, otherValue)
		}
		e.Hours = hours
		updated[i] = e
	}

	return c.With(month, updated), nil
}
