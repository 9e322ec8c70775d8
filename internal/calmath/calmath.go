// Package calmath implements the arithmetic core of the proleptic Gregorian
// calendar: the leap-year rule, month lengths, the closed-form conversion
// between calendar fields and epoch days, and overflow-checked integer
// helpers used by the value types built on top.
//
// An epoch day is a signed count of days where day 0 is 1970-01-01.
package calmath

import "time"

const (
	// DaysPerCycle is the number of days in a full 400-year Gregorian cycle.
	// There are 97 leap years in every such cycle.
	DaysPerCycle = 146097

	// Days0000To1970 is the number of days from year zero to 1970-01-01.
	// It spans five 400-year cycles minus the days from 1970 to 2000.
	Days0000To1970 = (DaysPerCycle * 5) - (30*365 + 7)

	// MJDEpochToUnixEpoch is the number of days from the Modified Julian Day
	// epoch (1858-11-17) to the Unix epoch (1970-01-01).
	MJDEpochToUnixEpoch = 40587
)

// IsLeapYear reports whether the year is a leap year in the proleptic
// Gregorian calendar: divisible by four, except century years that are not
// divisible by 400.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in a given month for a specific year.
func DaysInMonth(year int64, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int64) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// dayOfYearByMonth[m-1] is the number of days in a non-leap year before
// month m begins.
var dayOfYearByMonth = [...]int64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// ToEpochDay converts calendar fields to an epoch day. The fields must
// already describe a real date; the conversion itself does not validate.
func ToEpochDay(year int64, month time.Month, day int) int64 {
	total := 365 * year
	if year >= 0 {
		total += (year+3)/4 - (year+99)/100 + (year+399)/400
	} else {
		total -= year/-4 - year/-100 + year/-400
	}
	total += dayOfYearByMonth[month-1]
	if month > time.February && IsLeapYear(year) {
		total++
	}
	total += int64(day) - 1
	return total - Days0000To1970
}

// FromEpochDay converts an epoch day back to calendar fields. It is the
// exact inverse of ToEpochDay for every representable day.
//
// The computation shifts the epoch to 0000-03-01 so that the leap day falls
// at the end of a four-year cycle, estimates the year from the 400-year
// cycle structure and corrects the estimate by at most one.
func FromEpochDay(epochDay int64) (year int64, month time.Month, day int) {
	zeroDay := epochDay + Days0000To1970
	zeroDay -= 60 // shift to 0000-03-01

	var adjust int64
	if zeroDay < 0 {
		// Shift negative day counts into a positive cycle and compensate at the end.
		adjustCycles := (zeroDay+1)/DaysPerCycle - 1
		adjust = adjustCycles * 400
		zeroDay += -adjustCycles * DaysPerCycle
	}
	yearEst := (400*zeroDay + 591) / DaysPerCycle
	doyEst := zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	if doyEst < 0 {
		yearEst--
		doyEst = zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	}
	yearEst += adjust

	// Convert the March-based day-of-year back to a January-based month and day.
	marchMonth0 := (doyEst*5 + 2) / 153
	month = time.Month((marchMonth0+2)%12 + 1)
	day = int(doyEst - (marchMonth0*306+5)/10 + 1)
	year = yearEst + marchMonth0/10
	return year, month, day
}

// DayOfWeek returns the ISO day of the week for an epoch day,
// where 1=Monday, ..., 7=Sunday. 1970-01-01 was a Thursday.
func DayOfWeek(epochDay int64) int {
	return int(FloorMod(epochDay+3, 7)) + 1
}

// FloorDiv returns the floor of a/b, rounding toward negative infinity
// rather than toward zero.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns a-FloorDiv(a,b)*b, which is always in [0, b) for b > 0.
func FloorMod(a, b int64) int64 {
	return a - FloorDiv(a, b)*b
}

// AddInt64 adds two int64 values and reports whether the result is
// representable without wrapping.
func AddInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, false
	}
	return sum, true
}

// SubInt64 subtracts b from a and reports whether the result is
// representable without wrapping.
func SubInt64(a, b int64) (int64, bool) {
	diff := a - b
	if (a >= 0 && b < 0 && diff < 0) || (a < 0 && b > 0 && diff >= 0) {
		return 0, false
	}
	return diff, true
}

// MulInt64 multiplies two int64 values and reports whether the result is
// representable without wrapping.
func MulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}
