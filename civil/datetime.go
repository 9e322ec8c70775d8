package civil

import (
	"fmt"
	"strings"
	"time"

	"github.com/ngrash/go-chrono/internal/calmath"
)

// A DateTime pairs a Date with a Time, such as 2007-12-03T10:15:30.
//
// The time component is always in range: arithmetic that crosses midnight
// folds the whole days into the date component.
type DateTime struct {
	date Date
	time Time
}

// NewDateTime combines a date and a time of day.
func NewDateTime(date Date, t Time) DateTime {
	return DateTime{date: date, time: t}
}

// DateTimeOf returns the DateTime with the given fields, each validated.
func DateTimeOf(year int64, month time.Month, day, hour, minute, second, nano int) (DateTime, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	t, err := NewTime(hour, minute, second, nano)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: t}, nil
}

// MustDateTime is like DateTimeOf but panics if any field is invalid.
func MustDateTime(year int64, month time.Month, day, hour, minute, second, nano int) DateTime {
	dt, err := DateTimeOf(year, month, day, hour, minute, second, nano)
	if err != nil {
		panic(err)
	}
	return dt
}

// DateTimeOfEpochSecond returns the DateTime a given number of seconds after
// 1970-01-01T00:00:00 at the given fixed offset from UTC, with the given
// nanosecond of second.
func DateTimeOfEpochSecond(epochSecond int64, nanoOfSecond int, offsetSeconds int) (DateTime, error) {
	if err := checkField("nano of second", int64(nanoOfSecond), 0, 999_999_999); err != nil {
		return DateTime{}, err
	}
	localSecond, ok := calmath.AddInt64(epochSecond, int64(offsetSeconds))
	if !ok {
		return DateTime{}, fmt.Errorf("%w: epoch second %d", ErrOverflow, epochSecond)
	}
	epochDay := calmath.FloorDiv(localSecond, SecondsPerDay)
	secondOfDay := calmath.FloorMod(localSecond, SecondsPerDay)
	d, err := DateOfEpochDay(epochDay)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{
		date: d,
		time: Time{nanoOfDay: secondOfDay*NanosPerSecond + int64(nanoOfSecond)},
	}, nil
}

// Date returns the date component.
func (dt DateTime) Date() Date { return dt.date }

// Time returns the time-of-day component.
func (dt DateTime) Time() Time { return dt.time }

// Year returns the year.
func (dt DateTime) Year() int64 { return dt.date.year }

// Month returns the month of the year.
func (dt DateTime) Month() time.Month { return dt.date.month }

// Day returns the day of the month.
func (dt DateTime) Day() int { return dt.date.day }

// Weekday returns the day of the week.
func (dt DateTime) Weekday() time.Weekday { return dt.date.Weekday() }

// Hour returns the hour of the day.
func (dt DateTime) Hour() int { return dt.time.Hour() }

// Minute returns the minute of the hour.
func (dt DateTime) Minute() int { return dt.time.Minute() }

// Second returns the second of the minute.
func (dt DateTime) Second() int { return dt.time.Second() }

// Nanosecond returns the nanosecond of the second.
func (dt DateTime) Nanosecond() int { return dt.time.Nanosecond() }

// EpochSecond returns the number of seconds from 1970-01-01T00:00:00 to this
// date-time at the given fixed offset from UTC, truncating any fraction of
// a second.
func (dt DateTime) EpochSecond(offsetSeconds int) int64 {
	return dt.date.EpochDay()*SecondsPerDay + dt.time.SecondOfDay() - int64(offsetSeconds)
}

// WithDate returns a copy with the date component replaced.
func (dt DateTime) WithDate(d Date) DateTime { return DateTime{date: d, time: dt.time} }

// WithTime returns a copy with the time component replaced.
func (dt DateTime) WithTime(t Time) DateTime { return DateTime{date: dt.date, time: t} }

// WithYear returns a copy with the year changed, clamping the day-of-month
// to the last valid day of the resulting month.
func (dt DateTime) WithYear(year int64) (DateTime, error) {
	d, err := dt.date.WithYear(year)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: dt.time}, nil
}

// WithMonth returns a copy with the month changed, clamping the day-of-month
// to the last valid day of the resulting month.
func (dt DateTime) WithMonth(month time.Month) (DateTime, error) {
	d, err := dt.date.WithMonth(month)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: dt.time}, nil
}

// WithDay returns a copy with the day-of-month changed. An invalid day is
// rejected, not resolved.
func (dt DateTime) WithDay(day int) (DateTime, error) {
	d, err := dt.date.WithDay(day)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: dt.time}, nil
}

// WithHour returns a copy with the hour changed.
func (dt DateTime) WithHour(hour int) (DateTime, error) {
	t, err := dt.time.WithHour(hour)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: dt.date, time: t}, nil
}

// WithMinute returns a copy with the minute changed.
func (dt DateTime) WithMinute(minute int) (DateTime, error) {
	t, err := dt.time.WithMinute(minute)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: dt.date, time: t}, nil
}

// WithSecond returns a copy with the second changed.
func (dt DateTime) WithSecond(second int) (DateTime, error) {
	t, err := dt.time.WithSecond(second)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: dt.date, time: t}, nil
}

// WithNanosecond returns a copy with the nanosecond changed.
func (dt DateTime) WithNanosecond(nano int) (DateTime, error) {
	t, err := dt.time.WithNanosecond(nano)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: dt.date, time: t}, nil
}

// PlusYears returns the date-time with the given number of years added to
// the date component.
func (dt DateTime) PlusYears(years int64) (DateTime, error) {
	d, err := dt.date.PlusYears(years)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: dt.time}, nil
}

// PlusMonths returns the date-time with the given number of months added to
// the date component.
func (dt DateTime) PlusMonths(months int64) (DateTime, error) {
	d, err := dt.date.PlusMonths(months)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: dt.time}, nil
}

// PlusWeeks returns the date-time with the given number of weeks added to
// the date component.
func (dt DateTime) PlusWeeks(weeks int64) (DateTime, error) {
	d, err := dt.date.PlusWeeks(weeks)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: dt.time}, nil
}

// PlusDays returns the date-time with the given number of days added to the
// date component.
func (dt DateTime) PlusDays(days int64) (DateTime, error) {
	d, err := dt.date.PlusDays(days)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: dt.time}, nil
}

// PlusHours returns the date-time with the given number of hours added,
// carrying whole days into the date component.
func (dt DateTime) PlusHours(hours int64) (DateTime, error) {
	return dt.plusTime(hours, 0, 0, 0, 1)
}

// PlusMinutes returns the date-time with the given number of minutes added,
// carrying whole days into the date component.
func (dt DateTime) PlusMinutes(minutes int64) (DateTime, error) {
	return dt.plusTime(0, minutes, 0, 0, 1)
}

// PlusSeconds returns the date-time with the given number of seconds added,
// carrying whole days into the date component.
func (dt DateTime) PlusSeconds(seconds int64) (DateTime, error) {
	return dt.plusTime(0, 0, seconds, 0, 1)
}

// PlusNanos returns the date-time with the given number of nanoseconds
// added, carrying whole days into the date component.
func (dt DateTime) PlusNanos(nanos int64) (DateTime, error) {
	return dt.plusTime(0, 0, 0, nanos, 1)
}

// MinusHours returns the date-time with the given number of hours
// subtracted, carrying whole days into the date component.
func (dt DateTime) MinusHours(hours int64) (DateTime, error) {
	return dt.plusTime(hours, 0, 0, 0, -1)
}

// MinusMinutes returns the date-time with the given number of minutes
// subtracted, carrying whole days into the date component.
func (dt DateTime) MinusMinutes(minutes int64) (DateTime, error) {
	return dt.plusTime(0, minutes, 0, 0, -1)
}

// MinusSeconds returns the date-time with the given number of seconds
// subtracted, carrying whole days into the date component.
func (dt DateTime) MinusSeconds(seconds int64) (DateTime, error) {
	return dt.plusTime(0, 0, seconds, 0, -1)
}

// MinusNanos returns the date-time with the given number of nanoseconds
// subtracted, carrying whole days into the date component.
func (dt DateTime) MinusNanos(nanos int64) (DateTime, error) {
	return dt.plusTime(0, 0, 0, nanos, -1)
}

// plusTime adds a signed time-unit delta. The day delta is computed by floor
// division of the raw extended nanosecond offset, not read back from the
// wrapped time-of-day, so midnight crossings in either direction carry into
// the date exactly once. sign is 1 to add and -1 to subtract, which avoids
// negating math.MinInt64 inputs.
func (dt DateTime) plusTime(hours, minutes, seconds, nanos, sign int64) (DateTime, error) {
	// Split each unit into whole days and a sub-day remainder so every
	// intermediate fits in an int64 even for extreme inputs.
	totDays := nanos/NanosPerDay + seconds/SecondsPerDay + minutes/(24*60) + hours/24
	totNanos := nanos%NanosPerDay +
		(seconds%SecondsPerDay)*NanosPerSecond +
		(minutes%(24*60))*NanosPerMinute +
		(hours%24)*NanosPerHour
	totNanos = totNanos*sign + dt.time.nanoOfDay
	totDays = totDays*sign + calmath.FloorDiv(totNanos, NanosPerDay)
	newTime := Time{nanoOfDay: calmath.FloorMod(totNanos, NanosPerDay)}
	d, err := dt.date.PlusDays(totDays)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: newTime}, nil
}

// AddPeriod returns the date-time with the period added: the date components
// first (years, then months, then days, clamping the day-of-month as each is
// applied), then the time components with day carry folded back into the
// date.
func (dt DateTime) AddPeriod(p Period) (DateTime, error) {
	d, err := dt.date.AddPeriod(p.DatePart())
	if err != nil {
		return DateTime{}, err
	}
	next := DateTime{date: d, time: dt.time}
	if !p.HasTime() {
		return next, nil
	}
	// The four time components are applied in one step so that their day
	// carries combine before touching the date.
	totDays := p.Nanos/NanosPerDay + p.Seconds/SecondsPerDay + p.Minutes/(24*60) + p.Hours/24
	totNanos := p.Nanos%NanosPerDay +
		(p.Seconds%SecondsPerDay)*NanosPerSecond +
		(p.Minutes%(24*60))*NanosPerMinute +
		(p.Hours%24)*NanosPerHour
	totNanos += next.time.nanoOfDay
	totDays += calmath.FloorDiv(totNanos, NanosPerDay)
	newTime := Time{nanoOfDay: calmath.FloorMod(totNanos, NanosPerDay)}
	d, err = next.date.PlusDays(totDays)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: newTime}, nil
}

// SubtractPeriod returns the date-time with the negated period added.
func (dt DateTime) SubtractPeriod(p Period) (DateTime, error) {
	neg, err := p.Negated()
	if err != nil {
		return DateTime{}, err
	}
	return dt.AddPeriod(neg)
}

// AddDuration returns the date-time with the exact elapsed time added.
// A Duration has no calendar shape: it always advances the same number of
// seconds and nanoseconds regardless of the receiver's date.
func (dt DateTime) AddDuration(d Duration) (DateTime, error) {
	return dt.plusTime(0, 0, d.Seconds(), int64(d.Nanos()), 1)
}

// SubtractDuration returns the date-time with the exact elapsed time
// subtracted.
func (dt DateTime) SubtractDuration(d Duration) (DateTime, error) {
	return dt.plusTime(0, 0, d.Seconds(), int64(d.Nanos()), -1)
}

// Compare returns a negative number if dt is before other, zero if equal,
// and a positive number if after. Lexical field order and linear
// (epoch day, nano of day) order agree.
func (dt DateTime) Compare(other DateTime) int {
	if c := dt.date.Compare(other.date); c != 0 {
		return c
	}
	return dt.time.Compare(other.time)
}

// Before reports whether dt is before other.
func (dt DateTime) Before(other DateTime) bool { return dt.Compare(other) < 0 }

// After reports whether dt is after other.
func (dt DateTime) After(other DateTime) bool { return dt.Compare(other) > 0 }

// String returns the date-time in ISO-8601 format with date and time joined
// by 'T', such as 2007-12-03T10:15:30.
func (dt DateTime) String() string {
	return dt.date.String() + "T" + dt.time.String()
}

// MarshalText implements encoding.TextMarshaler using the ISO-8601 form.
func (dt DateTime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (dt *DateTime) UnmarshalText(b []byte) error {
	v, err := ParseDateTime(string(b))
	if err == nil {
		*dt = v
	}
	return err
}

// ParseDateTime parses a date-time in the ISO-8601 form produced by
// DateTime.String.
func ParseDateTime(s string) (DateTime, error) {
	dt, rest, err := parseDateTimePrefix(s)
	if err != nil {
		return DateTime{}, err
	}
	if rest != "" {
		return DateTime{}, fmt.Errorf("parse date-time %q: unexpected trailing %q", s, rest)
	}
	return dt, nil
}

// parseDateTimePrefix parses a leading date-time and returns the rest, which
// callers use for offset and zone suffixes.
func parseDateTimePrefix(s string) (DateTime, string, error) {
	i := strings.IndexByte(s, 'T')
	if i < 0 {
		return DateTime{}, "", fmt.Errorf("parse date-time %q: missing 'T' separator", s)
	}
	d, err := ParseDate(s[:i])
	if err != nil {
		return DateTime{}, "", err
	}
	t, rest, err := parseTimePrefix(s[i+1:])
	if err != nil {
		return DateTime{}, "", fmt.Errorf("parse date-time %q: %w", s, err)
	}
	return DateTime{date: d, time: t}, rest, nil
}
