package civil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ngrash/go-chrono/internal/calmath"
)

// A Duration is an exact elapsed time measured in seconds and nanoseconds.
// It has no calendar shape: adding the same Duration always advances a
// date-time by the same amount, whereas a Period of one month varies in
// effective length.
//
// The representation is always normalized so that nanos is in [0, 1e9)
// regardless of the sign of seconds; -0.5 seconds is stored as seconds -1,
// nanos 500,000,000.
type Duration struct {
	seconds int64
	nanos   int32
}

// DurationOfSeconds returns a Duration of the given seconds adjusted by a
// nanosecond amount of either sign. The adjustment may exceed a second; it
// is folded into the seconds with floor semantics.
func DurationOfSeconds(seconds, nanoAdjustment int64) (Duration, error) {
	carry := calmath.FloorDiv(nanoAdjustment, NanosPerSecond)
	sec, ok := calmath.AddInt64(seconds, carry)
	if !ok {
		return Duration{}, fmt.Errorf("%w: %d seconds %+d nanos", ErrOverflow, seconds, nanoAdjustment)
	}
	return Duration{seconds: sec, nanos: int32(calmath.FloorMod(nanoAdjustment, NanosPerSecond))}, nil
}

// DurationOfHours returns a Duration of whole hours.
func DurationOfHours(hours int64) (Duration, error) {
	sec, ok := calmath.MulInt64(hours, 3600)
	if !ok {
		return Duration{}, fmt.Errorf("%w: %d hours", ErrOverflow, hours)
	}
	return Duration{seconds: sec}, nil
}

// DurationOfMinutes returns a Duration of whole minutes.
func DurationOfMinutes(minutes int64) (Duration, error) {
	sec, ok := calmath.MulInt64(minutes, 60)
	if !ok {
		return Duration{}, fmt.Errorf("%w: %d minutes", ErrOverflow, minutes)
	}
	return Duration{seconds: sec}, nil
}

// DurationOfMillis returns a Duration of whole milliseconds.
func DurationOfMillis(millis int64) Duration {
	return Duration{
		seconds: calmath.FloorDiv(millis, 1000),
		nanos:   int32(calmath.FloorMod(millis, 1000) * 1_000_000),
	}
}

// DurationOfNanos returns a Duration of whole nanoseconds.
func DurationOfNanos(nanos int64) Duration {
	return Duration{
		seconds: calmath.FloorDiv(nanos, NanosPerSecond),
		nanos:   int32(calmath.FloorMod(nanos, NanosPerSecond)),
	}
}

// DurationFromStd converts a time.Duration.
func DurationFromStd(d time.Duration) Duration {
	return DurationOfNanos(int64(d))
}

// Seconds returns the whole seconds. For negative durations with a
// nanosecond part this is one smaller than the elapsed seconds, matching
// the floor-based normalization.
func (d Duration) Seconds() int64 { return d.seconds }

// Nanos returns the nanosecond part, always in [0, 1e9).
func (d Duration) Nanos() int { return int(d.nanos) }

// IsZero reports whether the duration is zero.
func (d Duration) IsZero() bool { return d == Duration{} }

// IsNegative reports whether the duration is less than zero.
func (d Duration) IsNegative() bool { return d.seconds < 0 }

// Std converts to a time.Duration, which fails for amounts beyond roughly
// 292 years in either direction.
func (d Duration) Std() (time.Duration, error) {
	total, ok := calmath.MulInt64(d.seconds, NanosPerSecond)
	if !ok {
		return 0, fmt.Errorf("%w: %v exceeds time.Duration", ErrOverflow, d)
	}
	total, ok = calmath.AddInt64(total, int64(d.nanos))
	if !ok {
		return 0, fmt.Errorf("%w: %v exceeds time.Duration", ErrOverflow, d)
	}
	return time.Duration(total), nil
}

// Plus returns the sum of two durations.
func (d Duration) Plus(other Duration) (Duration, error) {
	sec, ok := calmath.AddInt64(d.seconds, other.seconds)
	if !ok {
		return Duration{}, fmt.Errorf("%w: adding durations", ErrOverflow)
	}
	return DurationOfSeconds(sec, int64(d.nanos)+int64(other.nanos))
}

// Minus returns the difference of two durations.
func (d Duration) Minus(other Duration) (Duration, error) {
	sec, ok := calmath.SubInt64(d.seconds, other.seconds)
	if !ok {
		return Duration{}, fmt.Errorf("%w: subtracting durations", ErrOverflow)
	}
	return DurationOfSeconds(sec, int64(d.nanos)-int64(other.nanos))
}

// Negated returns the duration with the opposite sign.
func (d Duration) Negated() (Duration, error) {
	if d.seconds == math.MinInt64 {
		return Duration{}, fmt.Errorf("%w: negating duration", ErrOverflow)
	}
	return DurationOfSeconds(-d.seconds, -int64(d.nanos))
}

// Compare returns a negative number if d is shorter than other, zero if
// equal, and a positive number if longer.
func (d Duration) Compare(other Duration) int {
	if c := cmpInt64(d.seconds, other.seconds); c != 0 {
		return c
	}
	return int(d.nanos) - int(other.nanos)
}

// ParseDuration parses a duration in the ISO-8601 form produced by
// Duration.String, such as PT48H30M12.5S. Date units are rejected because a
// Duration has no calendar shape.
func ParseDuration(s string) (Duration, error) {
	p, err := ParsePeriod(s)
	if err != nil {
		return Duration{}, err
	}
	if p.Years != 0 || p.Months != 0 || p.Days != 0 {
		return Duration{}, fmt.Errorf("%w: parse duration %q: date units not allowed", ErrUnsupported, s)
	}
	total, ok := totalTimeNanos(Period{Hours: p.Hours, Minutes: p.Minutes, Seconds: p.Seconds})
	if !ok {
		return Duration{}, fmt.Errorf("%w: parse duration %q", ErrOverflow, s)
	}
	return DurationOfSeconds(calmath.FloorDiv(total, NanosPerSecond), calmath.FloorMod(total, NanosPerSecond)+p.Nanos)
}

// String returns the duration in ISO-8601 format, such as PT48H30M12.5S.
// Hours are not capped at 24 because a Duration is not tied to calendar
// days. A zero duration is PT0S.
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	// The floor normalization stores -0.6s as (-1s, +400ms); shift the
	// seconds up by one before splitting so the display truncates toward
	// zero like the text form does.
	effective := d.seconds
	if d.seconds < 0 && d.nanos > 0 {
		effective++
	}
	hours := effective / 3600
	minutes := effective / 60 % 60
	secs := effective % 60
	var b strings.Builder
	b.WriteString("PT")
	if hours != 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	if minutes != 0 {
		fmt.Fprintf(&b, "%dM", minutes)
	}
	if secs == 0 && d.nanos == 0 && b.Len() > 2 {
		return b.String()
	}
	if d.seconds < 0 && d.nanos > 0 && secs == 0 {
		b.WriteString("-0")
	} else {
		fmt.Fprintf(&b, "%d", secs)
	}
	if d.nanos > 0 {
		n := int64(d.nanos)
		if d.seconds < 0 {
			n = NanosPerSecond - n
		}
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(fmt.Sprintf("%09d", n), "0"))
	}
	b.WriteByte('S')
	return b.String()
}
