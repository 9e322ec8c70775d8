package civil

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate means a field combination does not form a real calendar
	// date, such as February 30.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrDateRange means an arithmetic result falls outside the supported
	// year range, even though the computation itself did not overflow.
	ErrDateRange = errors.New("date outside supported range")

	// ErrOverflow means an input magnitude cannot be represented in the
	// 64-bit intermediate arithmetic. It is raised before any range check
	// on the logical result.
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrUnsupported means an amount is not applicable to the receiver,
	// such as a period with time components applied to a date.
	ErrUnsupported = errors.New("unsupported amount")

	// ErrFieldRange matches any *FieldError in errors.Is, for callers that
	// only care about the error kind and not the offending field.
	ErrFieldRange = errors.New("field outside range")
)

// FieldError reports a single field value outside its natural range,
// e.g. month 13 or hour 24. It is raised eagerly at construction time.
type FieldError struct {
	Field    string
	Value    int64
	Min, Max int64
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %d outside range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Is reports a match against ErrFieldRange.
func (e *FieldError) Is(target error) bool { return target == ErrFieldRange }

func checkField(field string, value, min, max int64) error {
	if value < min || value > max {
		return &FieldError{Field: field, Value: value, Min: min, Max: max}
	}
	return nil
}
