package civil

import (
	"fmt"
	"time"

	"github.com/ngrash/go-chrono/internal/calmath"
)

// A DateResolver turns a (year, month, day) combination whose day-of-month
// may not exist in the target month into a definite Date. Resolvers are
// invoked by field setters and by year and month arithmetic, where clamping
// behavior is a policy choice rather than an error of the caller.
//
// Year and month are expected to be valid before a resolver runs; only the
// day-of-month may be out of range for the month.
type DateResolver func(year int64, month time.Month, day int) (Date, error)

var (
	// ResolveStrict rejects any day-of-month that does not exist in the
	// target month with ErrInvalidDate.
	ResolveStrict DateResolver = resolveStrict

	// ResolvePreviousValid clamps the day-of-month to the last valid day of
	// the target month, e.g. 2007-02-31 resolves to 2007-02-28. This is the
	// default policy.
	ResolvePreviousValid DateResolver = resolvePreviousValid

	// ResolveNextValid rolls an invalid day-of-month forward into the next
	// month, e.g. 2007-02-29 resolves to 2007-03-01.
	ResolveNextValid DateResolver = resolveNextValid
)

func resolveStrict(year int64, month time.Month, day int) (Date, error) {
	return NewDate(year, month, day)
}

func resolvePreviousValid(year int64, month time.Month, day int) (Date, error) {
	if err := checkResolverInput(year, month, day); err != nil {
		return Date{}, err
	}
	if max := calmath.DaysInMonth(year, month); day > max {
		day = max
	}
	return Date{year: year, month: month, day: day}, nil
}

func resolveNextValid(year int64, month time.Month, day int) (Date, error) {
	if err := checkResolverInput(year, month, day); err != nil {
		return Date{}, err
	}
	max := calmath.DaysInMonth(year, month)
	if day <= max {
		return Date{year: year, month: month, day: day}, nil
	}
	last := Date{year: year, month: month, day: max}
	next, err := last.PlusDays(int64(day - max))
	if err != nil {
		return Date{}, fmt.Errorf("next valid day after %v: %w", last, err)
	}
	return next, nil
}

func checkResolverInput(year int64, month time.Month, day int) error {
	if err := checkYear(year); err != nil {
		return err
	}
	if err := checkField("month", int64(month), 1, 12); err != nil {
		return err
	}
	return checkField("day", int64(day), 1, 31)
}
