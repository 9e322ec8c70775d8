package civil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ngrash/go-chrono/internal/calmath"
)

// A Period is a calendrical amount of time, such as "2 years, 3 months and
// 4 days with 5 hours". Unlike a Duration, the effective length of a Period
// depends on the date it is applied to: one month from January 31 is shorter
// than one month from March 31.
//
// The date components (Years, Months, Days) and the time components (Hours,
// Minutes, Seconds, Nanos) are never normalized against each other. A Period
// with time components can only be applied to a value that carries a time of
// day.
type Period struct {
	Years, Months, Days            int64
	Hours, Minutes, Seconds, Nanos int64
}

// PeriodOfYears returns a Period of whole years.
func PeriodOfYears(years int64) Period { return Period{Years: years} }

// PeriodOfMonths returns a Period of whole months.
func PeriodOfMonths(months int64) Period { return Period{Months: months} }

// PeriodOfDays returns a Period of whole days.
func PeriodOfDays(days int64) Period { return Period{Days: days} }

// PeriodOfDate returns a Period with the given date components.
func PeriodOfDate(years, months, days int64) Period {
	return Period{Years: years, Months: months, Days: days}
}

// PeriodOfTime returns a Period with the given time components.
func PeriodOfTime(hours, minutes, seconds int64) Period {
	return Period{Hours: hours, Minutes: minutes, Seconds: seconds}
}

// IsZero reports whether every component is zero.
func (p Period) IsZero() bool { return p == Period{} }

// HasTime reports whether any time component is nonzero.
func (p Period) HasTime() bool {
	return p.Hours != 0 || p.Minutes != 0 || p.Seconds != 0 || p.Nanos != 0
}

// DatePart returns a copy with only the date components.
func (p Period) DatePart() Period {
	return Period{Years: p.Years, Months: p.Months, Days: p.Days}
}

// TimePart returns a copy with only the time components.
func (p Period) TimePart() Period {
	return Period{Hours: p.Hours, Minutes: p.Minutes, Seconds: p.Seconds, Nanos: p.Nanos}
}

// Negated returns the period with every component negated.
func (p Period) Negated() (Period, error) {
	var (
		n   Period
		err error
	)
	neg := func(v int64, name string) int64 {
		if v == -v && v != 0 {
			err = fmt.Errorf("%w: negating %s", ErrOverflow, name)
		}
		return -v
	}
	n.Years = neg(p.Years, "years")
	n.Months = neg(p.Months, "months")
	n.Days = neg(p.Days, "days")
	n.Hours = neg(p.Hours, "hours")
	n.Minutes = neg(p.Minutes, "minutes")
	n.Seconds = neg(p.Seconds, "seconds")
	n.Nanos = neg(p.Nanos, "nanos")
	if err != nil {
		return Period{}, err
	}
	return n, nil
}

// NormalizedTime returns the period with the time components carried into
// each other so that nanos, seconds and minutes are within their natural
// ranges. The date components are left untouched; days are never derived
// from hours because a calendar day is not always 24 hours long.
func (p Period) NormalizedTime() (Period, error) {
	totalNanos, ok := totalTimeNanos(p)
	if !ok {
		return Period{}, fmt.Errorf("%w: normalizing time components", ErrOverflow)
	}
	n := p
	n.Hours = totalNanos / NanosPerHour
	n.Minutes = totalNanos / NanosPerMinute % 60
	n.Seconds = totalNanos / NanosPerSecond % 60
	n.Nanos = totalNanos % NanosPerSecond
	return n, nil
}

func totalTimeNanos(p Period) (int64, bool) {
	h, ok := calmath.MulInt64(p.Hours, NanosPerHour)
	if !ok {
		return 0, false
	}
	m, ok := calmath.MulInt64(p.Minutes, NanosPerMinute)
	if !ok {
		return 0, false
	}
	s, ok := calmath.MulInt64(p.Seconds, NanosPerSecond)
	if !ok {
		return 0, false
	}
	total, ok := calmath.AddInt64(h, m)
	if !ok {
		return 0, false
	}
	total, ok = calmath.AddInt64(total, s)
	if !ok {
		return 0, false
	}
	return calmath.AddInt64(total, p.Nanos)
}

// String returns the period in ISO-8601 format, such as P1Y2M3DT4H5M6S.
// A zero period is PT0S. Nanoseconds merge into the seconds component as a
// nine-digit fraction.
func (p Period) String() string {
	if p.IsZero() {
		return "PT0S"
	}
	var b strings.Builder
	b.WriteByte('P')
	if p.Years != 0 {
		fmt.Fprintf(&b, "%dY", p.Years)
	}
	if p.Months != 0 {
		fmt.Fprintf(&b, "%dM", p.Months)
	}
	if p.Days != 0 {
		fmt.Fprintf(&b, "%dD", p.Days)
	}
	if p.HasTime() {
		b.WriteByte('T')
		if p.Hours != 0 {
			fmt.Fprintf(&b, "%dH", p.Hours)
		}
		if p.Minutes != 0 {
			fmt.Fprintf(&b, "%dM", p.Minutes)
		}
		writeSecondsWithFraction(&b, p.Seconds, p.Nanos)
	}
	return b.String()
}

func writeSecondsWithFraction(b *strings.Builder, seconds, nanos int64) {
	if seconds == 0 && nanos == 0 {
		return
	}
	if nanos == 0 {
		fmt.Fprintf(b, "%dS", seconds)
		return
	}
	// Emit the sign once so -1s -500ms renders as -1.5S.
	neg := seconds < 0 || (seconds == 0 && nanos < 0)
	s, n := seconds, nanos
	if neg {
		b.WriteByte('-')
		s, n = -s, -n
	}
	if n < 0 {
		// Mixed signs: fold the fraction into the seconds.
		s--
		n += NanosPerSecond
		fmt.Fprintf(b, "%d", s)
	} else {
		fmt.Fprintf(b, "%d", s)
	}
	frac := strings.TrimRight(fmt.Sprintf("%09d", n), "0")
	fmt.Fprintf(b, ".%sS", frac)
}

// ParsePeriod parses a period in the ISO-8601 form produced by
// Period.String, such as P1Y2M3DT4H5M6.5S. A leading minus sign negates
// every component.
func ParsePeriod(s string) (Period, error) {
	orig := s
	negateAll := false
	if strings.HasPrefix(s, "-") {
		negateAll = true
		s = s[1:]
	} else {
		s = strings.TrimPrefix(s, "+")
	}
	if len(s) == 0 || (s[0] != 'P' && s[0] != 'p') {
		return Period{}, fmt.Errorf("parse period %q: expected 'P'", orig)
	}
	s = s[1:]

	var p Period
	inTime := false
	seen := false
	seenTime := false
	for len(s) > 0 {
		if s[0] == 'T' || s[0] == 't' {
			if inTime {
				return Period{}, fmt.Errorf("parse period %q: duplicate 'T'", orig)
			}
			inTime = true
			s = s[1:]
			continue
		}
		value, frac, rest, err := parsePeriodNumber(s)
		if err != nil {
			return Period{}, fmt.Errorf("parse period %q: %w", orig, err)
		}
		if len(rest) == 0 {
			return Period{}, fmt.Errorf("parse period %q: missing unit letter", orig)
		}
		unit := rest[0]
		s = rest[1:]
		seen = true
		seenTime = seenTime || inTime
		if frac != 0 && !(inTime && (unit == 'S' || unit == 's')) {
			return Period{}, fmt.Errorf("parse period %q: fraction only allowed on seconds", orig)
		}
		switch {
		case !inTime && (unit == 'Y' || unit == 'y'):
			p.Years = value
		case !inTime && (unit == 'M' || unit == 'm'):
			p.Months = value
		case !inTime && (unit == 'D' || unit == 'd'):
			p.Days = value
		case inTime && (unit == 'H' || unit == 'h'):
			p.Hours = value
		case inTime && (unit == 'M' || unit == 'm'):
			p.Minutes = value
		case inTime && (unit == 'S' || unit == 's'):
			p.Seconds = value
			p.Nanos = frac
		default:
			return Period{}, fmt.Errorf("parse period %q: unexpected unit %q", orig, string(unit))
		}
	}
	if !seen {
		return Period{}, fmt.Errorf("parse period %q: no components", orig)
	}
	if inTime && !seenTime {
		return Period{}, fmt.Errorf("parse period %q: 'T' with no time components", orig)
	}
	if negateAll {
		neg, err := p.Negated()
		if err != nil {
			return Period{}, fmt.Errorf("parse period %q: %w", orig, err)
		}
		p = neg
	}
	return p, nil
}

// parsePeriodNumber parses a signed integer with an optional fraction and
// returns the integer part, the fraction in nanoseconds, and the rest of the
// string starting at the unit letter. The fraction carries the sign of the
// number, so "-0.6" yields value 0 and fracNanos -600,000,000.
func parsePeriodNumber(s string) (value, fracNanos int64, rest string, err error) {
	n := 0
	neg := false
	if n < len(s) && (s[n] == '-' || s[n] == '+') {
		neg = s[n] == '-'
		n++
	}
	start := n
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == start {
		return 0, 0, "", fmt.Errorf("expected digits, got %q", s)
	}
	value, err = strconv.ParseInt(s[:n], 10, 64)
	if err != nil {
		return 0, 0, "", err
	}
	if n < len(s) && s[n] == '.' {
		n++
		fracStart := n
		for n < len(s) && s[n] >= '0' && s[n] <= '9' {
			fracNanos = fracNanos*10 + int64(s[n]-'0')
			n++
		}
		digits := n - fracStart
		if digits == 0 || digits > 9 {
			return 0, 0, "", fmt.Errorf("expected 1 to 9 fractional digits")
		}
		for ; digits < 9; digits++ {
			fracNanos *= 10
		}
		if neg {
			fracNanos = -fracNanos
		}
	}
	return value, fracNanos, s[n:], nil
}
