// Package civil provides immutable date and time-of-day value types for the
// proleptic Gregorian calendar, without any attachment to a time zone.
//
// All types in this package are small value types. Operations never mutate
// the receiver; they either return a fully valid new value or fail with one
// of the error kinds in errors.go, leaving the receiver untouched.
package civil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ngrash/go-chrono/internal/calmath"
)

const (
	// MinYear is the smallest supported year.
	MinYear = -999_999_999
	// MaxYear is the largest supported year.
	MaxYear = 999_999_999
)

var (
	// MinDate is the earliest supported date, MinYear-01-01.
	MinDate = Date{year: MinYear, month: time.January, day: 1}
	// MaxDate is the latest supported date, MaxYear-12-31.
	MaxDate = Date{year: MaxYear, month: time.December, day: 31}
)

// A Date is a date in the proleptic Gregorian calendar, such as 2007-12-03.
//
// A Date always describes a real calendar day within the supported year
// range. The zero value is not a valid date; use one of the factory
// functions.
type Date struct {
	year  int64
	month time.Month
	day   int
}

// NewDate returns the Date with the given fields. Each field is validated
// against its natural range and the combination must form a real date.
func NewDate(year int64, month time.Month, day int) (Date, error) {
	err := errors.Join(
		checkYear(year),
		checkField("month", int64(month), 1, 12),
		checkField("day", int64(day), 1, 31),
	)
	if err != nil {
		return Date{}, err
	}
	if max := calmath.DaysInMonth(year, month); day > max {
		return Date{}, fmt.Errorf("%w: %04d-%02d has no day %d", ErrInvalidDate, year, month, day)
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustDate is like NewDate but panics if the date is invalid.
// It simplifies initialization of known-good values.
func MustDate(year int64, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

var (
	minEpochDay = calmath.ToEpochDay(MinYear, time.January, 1)
	maxEpochDay = calmath.ToEpochDay(MaxYear, time.December, 31)
)

// DateOfEpochDay returns the Date for a day count from 1970-01-01 (day 0).
// The bounds are checked up front because the field conversion is only
// defined for day counts within the supported years.
func DateOfEpochDay(epochDay int64) (Date, error) {
	if epochDay < minEpochDay || epochDay > maxEpochDay {
		return Date{}, fmt.Errorf("%w: epoch day %d", ErrDateRange, epochDay)
	}
	year, month, day := calmath.FromEpochDay(epochDay)
	return Date{year: year, month: month, day: day}, nil
}

// DateOfModifiedJulianDay returns the Date for a Modified Julian Day number.
// MJD 0 is 1858-11-17.
func DateOfModifiedJulianDay(mjd int64) (Date, error) {
	epochDay, ok := calmath.SubInt64(mjd, calmath.MJDEpochToUnixEpoch)
	if !ok {
		return Date{}, fmt.Errorf("%w: modified julian day %d", ErrOverflow, mjd)
	}
	return DateOfEpochDay(epochDay)
}

// DateOfYearDay returns the Date for a year and a day-of-year in [1, 366].
func DateOfYearDay(year int64, dayOfYear int) (Date, error) {
	if err := checkYear(year); err != nil {
		return Date{}, err
	}
	if err := checkField("day of year", int64(dayOfYear), 1, 366); err != nil {
		return Date{}, err
	}
	if dayOfYear == 366 && !calmath.IsLeapYear(year) {
		return Date{}, fmt.Errorf("%w: day 366 in non-leap year %d", ErrInvalidDate, year)
	}
	month := time.January
	rem := dayOfYear
	for rem > calmath.DaysInMonth(year, month) {
		rem -= calmath.DaysInMonth(year, month)
		month++
	}
	return Date{year: year, month: month, day: rem}, nil
}

func checkYear(year int64) error {
	return checkField("year", year, MinYear, MaxYear)
}

// Year returns the year, from MinYear to MaxYear.
func (d Date) Year() int64 { return d.year }

// Month returns the month of the year.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of the month, from 1 to 31.
func (d Date) Day() int { return d.day }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	// 1970-01-01 was a Thursday.
	return time.Weekday(calmath.FloorMod(d.EpochDay()+4, 7))
}

// DayOfYear returns the day of the year, from 1 to 365 or 366 in a leap year.
func (d Date) DayOfYear() int {
	doy := int(calmath.ToEpochDay(d.year, d.month, d.day) - calmath.ToEpochDay(d.year, time.January, 1))
	return doy + 1
}

// IsLeapYear reports whether the year of the date is a leap year.
func (d Date) IsLeapYear() bool { return calmath.IsLeapYear(d.year) }

// LengthOfMonth returns the number of days in the month of the date.
func (d Date) LengthOfMonth() int { return calmath.DaysInMonth(d.year, d.month) }

// LengthOfYear returns the number of days in the year of the date.
func (d Date) LengthOfYear() int { return calmath.DaysInYear(d.year) }

// EpochDay returns the day count from 1970-01-01, with day 0 being 1970-01-01.
func (d Date) EpochDay() int64 {
	return calmath.ToEpochDay(d.year, d.month, d.day)
}

// ModifiedJulianDay returns the Modified Julian Day number of the date.
func (d Date) ModifiedJulianDay() int64 {
	return d.EpochDay() + calmath.MJDEpochToUnixEpoch
}

// Resolve combines the fields into a Date using the given resolution policy
// for day-of-month values that do not exist in the target month.
// A nil resolver defaults to ResolvePreviousValid.
func Resolve(year int64, month time.Month, day int, resolve DateResolver) (Date, error) {
	if resolve == nil {
		resolve = ResolvePreviousValid
	}
	return resolve(year, month, day)
}

// WithYear returns a copy of the date with the year changed. If the
// day-of-month no longer exists, it is clamped to the last valid day
// (the previous-valid policy).
func (d Date) WithYear(year int64) (Date, error) {
	if year == d.year {
		return d, nil
	}
	return ResolvePreviousValid(year, d.month, d.day)
}

// WithMonth returns a copy of the date with the month changed, clamping the
// day-of-month to the last valid day if necessary.
func (d Date) WithMonth(month time.Month) (Date, error) {
	if err := checkField("month", int64(month), 1, 12); err != nil {
		return Date{}, err
	}
	if month == d.month {
		return d, nil
	}
	return ResolvePreviousValid(d.year, month, d.day)
}

// WithDay returns a copy of the date with the day-of-month changed.
// Unlike WithYear and WithMonth, an invalid day is rejected, not resolved.
func (d Date) WithDay(day int) (Date, error) {
	if day == d.day {
		return d, nil
	}
	return NewDate(d.year, d.month, day)
}

// WithDayOfYear returns a copy of the date with the day-of-year changed.
func (d Date) WithDayOfYear(dayOfYear int) (Date, error) {
	if dayOfYear == d.DayOfYear() {
		return d, nil
	}
	return DateOfYearDay(d.year, dayOfYear)
}

// PlusYears returns the date with the given number of years added, clamping
// the day-of-month to the last valid day of the resulting month.
func (d Date) PlusYears(years int64) (Date, error) {
	if years == 0 {
		return d, nil
	}
	year, ok := calmath.AddInt64(d.year, years)
	if !ok {
		return Date{}, fmt.Errorf("%w: %d years", ErrOverflow, years)
	}
	if err := rangeCheckYear(year); err != nil {
		return Date{}, err
	}
	return ResolvePreviousValid(year, d.month, d.day)
}

// PlusMonths returns the date with the given number of months added,
// clamping the day-of-month to the last valid day of the resulting month.
func (d Date) PlusMonths(months int64) (Date, error) {
	if months == 0 {
		return d, nil
	}
	monthCount := d.year*12 + int64(d.month) - 1
	calc, ok := calmath.AddInt64(monthCount, months)
	if !ok {
		return Date{}, fmt.Errorf("%w: %d months", ErrOverflow, months)
	}
	year := calmath.FloorDiv(calc, 12)
	month := time.Month(calmath.FloorMod(calc, 12) + 1)
	if err := rangeCheckYear(year); err != nil {
		return Date{}, err
	}
	return ResolvePreviousValid(year, month, d.day)
}

// PlusWeeks returns the date with the given number of weeks added.
func (d Date) PlusWeeks(weeks int64) (Date, error) {
	days, ok := calmath.MulInt64(weeks, 7)
	if !ok {
		return Date{}, fmt.Errorf("%w: %d weeks", ErrOverflow, weeks)
	}
	return d.PlusDays(days)
}

// PlusDays returns the date with the given number of days added. The shift
// happens on the epoch-day number, which is exact for any delta whose result
// stays in the supported range.
func (d Date) PlusDays(days int64) (Date, error) {
	if days == 0 {
		return d, nil
	}
	epochDay, ok := calmath.AddInt64(d.EpochDay(), days)
	if !ok {
		return Date{}, fmt.Errorf("%w: %d days", ErrOverflow, days)
	}
	return DateOfEpochDay(epochDay)
}

// MinusYears returns the date with the given number of years subtracted.
func (d Date) MinusYears(years int64) (Date, error) {
	if years == 0 {
		return d, nil
	}
	year, ok := calmath.SubInt64(d.year, years)
	if !ok {
		return Date{}, fmt.Errorf("%w: %d years", ErrOverflow, years)
	}
	if err := rangeCheckYear(year); err != nil {
		return Date{}, err
	}
	return ResolvePreviousValid(year, d.month, d.day)
}

// MinusMonths returns the date with the given number of months subtracted.
func (d Date) MinusMonths(months int64) (Date, error) {
	if months == 0 {
		return d, nil
	}
	monthCount := d.year*12 + int64(d.month) - 1
	calc, ok := calmath.SubInt64(monthCount, months)
	if !ok {
		return Date{}, fmt.Errorf("%w: %d months", ErrOverflow, months)
	}
	year := calmath.FloorDiv(calc, 12)
	month := time.Month(calmath.FloorMod(calc, 12) + 1)
	if err := rangeCheckYear(year); err != nil {
		return Date{}, err
	}
	return ResolvePreviousValid(year, month, d.day)
}

// MinusWeeks returns the date with the given number of weeks subtracted.
func (d Date) MinusWeeks(weeks int64) (Date, error) {
	days, ok := calmath.MulInt64(weeks, 7)
	if !ok {
		return Date{}, fmt.Errorf("%w: %d weeks", ErrOverflow, weeks)
	}
	return d.MinusDays(days)
}

// MinusDays returns the date with the given number of days subtracted.
func (d Date) MinusDays(days int64) (Date, error) {
	if days == 0 {
		return d, nil
	}
	epochDay, ok := calmath.SubInt64(d.EpochDay(), days)
	if !ok {
		return Date{}, fmt.Errorf("%w: %d days", ErrOverflow, days)
	}
	return DateOfEpochDay(epochDay)
}

// rangeCheckYear is the post-arithmetic counterpart of checkYear. The logical
// result was computed without machine overflow, so an out-of-range year is a
// domain error, not an overflow.
func rangeCheckYear(year int64) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d", ErrDateRange, year)
	}
	return nil
}

// AddPeriod returns the date with the period added. The period must have no
// time components. Years are applied first, then months, each clamping the
// day-of-month, then days as a final epoch-day shift. The ordering is
// observable: 2008-01-31 plus one month and minus one day is 2008-02-28,
// not 2008-02-29.
func (d Date) AddPeriod(p Period) (Date, error) {
	if p.HasTime() {
		return Date{}, fmt.Errorf("%w: period %v has time components", ErrUnsupported, p)
	}
	var err error
	if p.Years != 0 {
		if d, err = d.PlusYears(p.Years); err != nil {
			return Date{}, err
		}
	}
	if p.Months != 0 {
		if d, err = d.PlusMonths(p.Months); err != nil {
			return Date{}, err
		}
	}
	if p.Days != 0 {
		if d, err = d.PlusDays(p.Days); err != nil {
			return Date{}, err
		}
	}
	return d, nil
}

// SubtractPeriod returns the date with the period subtracted. It applies the
// negated period, so the same ordering and clamping rules hold.
func (d Date) SubtractPeriod(p Period) (Date, error) {
	neg, err := p.Negated()
	if err != nil {
		return Date{}, err
	}
	return d.AddPeriod(neg)
}

// AtTime combines the date with a time of day.
func (d Date) AtTime(t Time) DateTime { return DateTime{date: d, time: t} }

// AtStartOfDay combines the date with midnight.
func (d Date) AtStartOfDay() DateTime { return DateTime{date: d, time: Midnight} }

// Compare returns a negative number if d is before other, zero if equal,
// and a positive number if after. Field order and epoch-day order agree.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt64(d.year, other.year)
	case d.month != other.month:
		return int(d.month) - int(other.month)
	default:
		return d.day - other.day
	}
}

// Before reports whether d is before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String returns the date in ISO-8601 format, such as 2007-12-03.
// Years outside 0000..9999 carry an explicit sign, e.g. -0001-01-02
// and +10000-01-01.
func (d Date) String() string {
	var b strings.Builder
	abs := d.year
	if d.year < 0 {
		b.WriteByte('-')
		abs = -d.year
	} else if d.year > 9999 {
		b.WriteByte('+')
	}
	fmt.Fprintf(&b, "%04d-%02d-%02d", abs, int(d.month), d.day)
	return b.String()
}

// MarshalText implements encoding.TextMarshaler using the ISO-8601 form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err == nil {
		*d = v
	}
	return err
}

// ParseDate parses a date in the ISO-8601 form produced by Date.String.
func ParseDate(s string) (Date, error) {
	year, rest, err := parseYearPrefix(s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	if len(rest) != 6 || rest[0] != '-' || rest[3] != '-' {
		return Date{}, fmt.Errorf("parse date %q: expected -MM-DD after year", s)
	}
	month, err := parse2Digits(rest[1:3])
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: month: %w", s, err)
	}
	day, err := parse2Digits(rest[4:6])
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: day: %w", s, err)
	}
	d, err := NewDate(year, time.Month(month), day)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// parseYearPrefix parses the year at the start of a date string and returns
// the remainder, beginning with the dash before the month.
func parseYearPrefix(s string) (int64, string, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	// The year is every digit up to the month separator. At least four
	// digits are required.
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n < 4 {
		return 0, "", fmt.Errorf("expected at least 4 year digits")
	}
	year, err := strconv.ParseInt(s[:n], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("year: %v", err)
	}
	if neg {
		year = -year
	}
	return year, s[n:], nil
}

func parse2Digits(s string) (int, error) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, fmt.Errorf("expected 2 digits, got %q", s)
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), nil
}
