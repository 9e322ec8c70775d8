package civil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ngrash/go-chrono/internal/calmath"
)

const (
	// NanosPerSecond is the number of nanoseconds in a second.
	NanosPerSecond int64 = 1_000_000_000
	// NanosPerMinute is the number of nanoseconds in a minute.
	NanosPerMinute = 60 * NanosPerSecond
	// NanosPerHour is the number of nanoseconds in an hour.
	NanosPerHour = 60 * NanosPerMinute
	// NanosPerDay is the number of nanoseconds in a fixed-length 24-hour day.
	NanosPerDay = 24 * NanosPerHour

	// SecondsPerDay is the number of seconds in a fixed-length 24-hour day.
	SecondsPerDay int64 = 86_400
)

var (
	// Midnight is 00:00, the start of the day.
	Midnight = Time{}
	// Midday is 12:00, the middle of the day.
	Midday = Time{nanoOfDay: 12 * NanosPerHour}
	// MinTime is the smallest supported time, 00:00.
	MinTime = Time{}
	// MaxTime is the largest supported time, the last nanosecond of the day.
	MaxTime = Time{nanoOfDay: NanosPerDay - 1}
)

// A Time is a time of day to nanosecond precision, such as 10:15:30, on a
// fixed-length 24-hour day with no attachment to a date or time zone.
//
// The zero value is midnight. Arithmetic on Time always wraps around
// midnight and never fails; how many day boundaries were crossed is not
// observable from Time alone and is computed by DateTime.
type Time struct {
	nanoOfDay int64
}

// NewTime returns the Time with the given fields, each validated against
// its natural range.
func NewTime(hour, minute, second, nano int) (Time, error) {
	err := errors.Join(
		checkField("hour", int64(hour), 0, 23),
		checkField("minute", int64(minute), 0, 59),
		checkField("second", int64(second), 0, 59),
		checkField("nanosecond", int64(nano), 0, 999_999_999),
	)
	if err != nil {
		return Time{}, err
	}
	n := int64(hour)*NanosPerHour + int64(minute)*NanosPerMinute + int64(second)*NanosPerSecond + int64(nano)
	return Time{nanoOfDay: n}, nil
}

// MustTime is like NewTime but panics if the time is invalid.
func MustTime(hour, minute, second, nano int) Time {
	t, err := NewTime(hour, minute, second, nano)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfNanoOfDay returns the Time for a nanosecond-of-day value in
// [0, 86_400_000_000_000).
func TimeOfNanoOfDay(nanoOfDay int64) (Time, error) {
	if err := checkField("nano of day", nanoOfDay, 0, NanosPerDay-1); err != nil {
		return Time{}, err
	}
	return Time{nanoOfDay: nanoOfDay}, nil
}

// TimeOfSecondOfDay returns the Time for a second-of-day value in [0, 86_400).
func TimeOfSecondOfDay(secondOfDay int64) (Time, error) {
	if err := checkField("second of day", secondOfDay, 0, SecondsPerDay-1); err != nil {
		return Time{}, err
	}
	return Time{nanoOfDay: secondOfDay * NanosPerSecond}, nil
}

// Hour returns the hour of the day, from 0 to 23.
func (t Time) Hour() int { return int(t.nanoOfDay / NanosPerHour) }

// Minute returns the minute of the hour, from 0 to 59.
func (t Time) Minute() int { return int(t.nanoOfDay / NanosPerMinute % 60) }

// Second returns the second of the minute, from 0 to 59.
func (t Time) Second() int { return int(t.nanoOfDay / NanosPerSecond % 60) }

// Nanosecond returns the nanosecond of the second, from 0 to 999,999,999.
func (t Time) Nanosecond() int { return int(t.nanoOfDay % NanosPerSecond) }

// NanoOfDay returns the time as a nanosecond count from midnight.
func (t Time) NanoOfDay() int64 { return t.nanoOfDay }

// SecondOfDay returns the time as a second count from midnight, truncating
// any fraction of a second.
func (t Time) SecondOfDay() int64 { return t.nanoOfDay / NanosPerSecond }

// WithHour returns a copy of the time with the hour changed.
func (t Time) WithHour(hour int) (Time, error) {
	return NewTime(hour, t.Minute(), t.Second(), t.Nanosecond())
}

// WithMinute returns a copy of the time with the minute changed.
func (t Time) WithMinute(minute int) (Time, error) {
	return NewTime(t.Hour(), minute, t.Second(), t.Nanosecond())
}

// WithSecond returns a copy of the time with the second changed.
func (t Time) WithSecond(second int) (Time, error) {
	return NewTime(t.Hour(), t.Minute(), second, t.Nanosecond())
}

// WithNanosecond returns a copy of the time with the nanosecond changed.
func (t Time) WithNanosecond(nano int) (Time, error) {
	return NewTime(t.Hour(), t.Minute(), t.Second(), nano)
}

// PlusHours returns the time with the given number of hours added, wrapping
// around midnight.
func (t Time) PlusHours(hours int64) Time {
	return t.plusWrapped(hours%24, NanosPerHour)
}

// PlusMinutes returns the time with the given number of minutes added,
// wrapping around midnight.
func (t Time) PlusMinutes(minutes int64) Time {
	return t.plusWrapped(minutes%(24*60), NanosPerMinute)
}

// PlusSeconds returns the time with the given number of seconds added,
// wrapping around midnight.
func (t Time) PlusSeconds(seconds int64) Time {
	return t.plusWrapped(seconds%SecondsPerDay, NanosPerSecond)
}

// PlusNanos returns the time with the given number of nanoseconds added,
// wrapping around midnight.
func (t Time) PlusNanos(nanos int64) Time {
	return t.plusWrapped(nanos%NanosPerDay, 1)
}

// plusWrapped adds units*scale nanoseconds, with |units*scale| less than a
// day, and normalizes the result into [0, NanosPerDay) by floor modulo so
// that negative deltas wrap backwards correctly.
func (t Time) plusWrapped(units, scale int64) Time {
	n := calmath.FloorMod(t.nanoOfDay+units*scale, NanosPerDay)
	return Time{nanoOfDay: n}
}

// MinusHours returns the time with the given number of hours subtracted,
// wrapping around midnight.
func (t Time) MinusHours(hours int64) Time {
	return t.plusWrapped(-(hours % 24), NanosPerHour)
}

// MinusMinutes returns the time with the given number of minutes subtracted,
// wrapping around midnight.
func (t Time) MinusMinutes(minutes int64) Time {
	return t.plusWrapped(-(minutes % (24 * 60)), NanosPerMinute)
}

// MinusSeconds returns the time with the given number of seconds subtracted,
// wrapping around midnight.
func (t Time) MinusSeconds(seconds int64) Time {
	return t.plusWrapped(-(seconds % SecondsPerDay), NanosPerSecond)
}

// MinusNanos returns the time with the given number of nanoseconds
// subtracted, wrapping around midnight.
func (t Time) MinusNanos(nanos int64) Time {
	return t.plusWrapped(-(nanos % NanosPerDay), 1)
}

// Compare returns a negative number if t is before other, zero if equal,
// and a positive number if after.
func (t Time) Compare(other Time) int {
	return cmpInt64(t.nanoOfDay, other.nanoOfDay)
}

// Before reports whether t is before other.
func (t Time) Before(other Time) bool { return t.nanoOfDay < other.nanoOfDay }

// After reports whether t is after other.
func (t Time) After(other Time) bool { return t.nanoOfDay > other.nanoOfDay }

// String returns the time in ISO-8601 format. Seconds are omitted when both
// the second and nanosecond are zero; fractional seconds use the smallest
// number of three-digit groups that represents the nanosecond exactly, e.g.
// 10:15, 10:15:30, 10:15:30.500 and 10:15:30.000000001.
func (t Time) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02d:%02d", t.Hour(), t.Minute())
	sec, nano := t.Second(), t.Nanosecond()
	if sec == 0 && nano == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, ":%02d", sec)
	switch {
	case nano == 0:
	case nano%1_000_000 == 0:
		fmt.Fprintf(&b, ".%03d", nano/1_000_000)
	case nano%1_000 == 0:
		fmt.Fprintf(&b, ".%06d", nano/1_000)
	default:
		fmt.Fprintf(&b, ".%09d", nano)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler using the ISO-8601 form.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Time) UnmarshalText(b []byte) error {
	v, err := ParseTime(string(b))
	if err == nil {
		*t = v
	}
	return err
}

// ParseTime parses a time in the ISO-8601 form produced by Time.String.
func ParseTime(s string) (Time, error) {
	t, rest, err := parseTimePrefix(s)
	if err != nil {
		return Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	if rest != "" {
		return Time{}, fmt.Errorf("parse time %q: unexpected trailing %q", s, rest)
	}
	return t, nil
}

// parseTimePrefix parses a leading HH:MM[:SS[.fff...]] and returns the rest.
func parseTimePrefix(s string) (Time, string, error) {
	if len(s) < 5 || s[2] != ':' {
		return Time{}, "", fmt.Errorf("expected HH:MM")
	}
	hour, err := parse2Digits(s[0:2])
	if err != nil {
		return Time{}, "", fmt.Errorf("hour: %w", err)
	}
	minute, err := parse2Digits(s[3:5])
	if err != nil {
		return Time{}, "", fmt.Errorf("minute: %w", err)
	}
	s = s[5:]

	var second, nano int
	if len(s) >= 3 && s[0] == ':' {
		second, err = parse2Digits(s[1:3])
		if err != nil {
			return Time{}, "", fmt.Errorf("second: %w", err)
		}
		s = s[3:]
		if len(s) > 0 && s[0] == '.' {
			s = s[1:]
			n := 0
			for n < len(s) && s[n] >= '0' && s[n] <= '9' {
				nano = nano*10 + int(s[n]-'0')
				n++
			}
			if n == 0 || n > 9 {
				return Time{}, "", fmt.Errorf("expected 1 to 9 fractional digits")
			}
			for d := n; d < 9; d++ {
				nano *= 10
			}
			s = s[n:]
		}
	}
	t, err := NewTime(hour, minute, second, nano)
	if err != nil {
		return Time{}, "", err
	}
	return t, s, nil
}
