package zone

import (
	"fmt"

	"github.com/ngrash/go-chrono/civil"
)

// An OffsetDateTime is a date-time with a fixed offset from UTC, such as
// 2007-12-03T10:15:30+01:00. It pins down an exact instant without
// referring to any zone rules.
type OffsetDateTime struct {
	dt  civil.DateTime
	off Offset
}

// NewOffsetDateTime combines a local date-time with an offset.
func NewOffsetDateTime(dt civil.DateTime, off Offset) OffsetDateTime {
	return OffsetDateTime{dt: dt, off: off}
}

// DateTime returns the local date-time.
func (o OffsetDateTime) DateTime() civil.DateTime { return o.dt }

// Offset returns the offset from UTC.
func (o OffsetDateTime) Offset() Offset { return o.off }

// EpochSecond returns the instant as seconds from 1970-01-01T00:00:00Z,
// truncating any fraction of a second.
func (o OffsetDateTime) EpochSecond() int64 {
	return o.dt.EpochSecond(o.off.seconds)
}

// Nanosecond returns the nanosecond of the second.
func (o OffsetDateTime) Nanosecond() int { return o.dt.Nanosecond() }

// WithOffsetSameInstant returns the same instant expressed with a different
// offset, adjusting the local date-time by the offset difference.
func (o OffsetDateTime) WithOffsetSameInstant(off Offset) (OffsetDateTime, error) {
	if off == o.off {
		return o, nil
	}
	dt, err := o.dt.PlusSeconds(int64(off.seconds - o.off.seconds))
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{dt: dt, off: off}, nil
}

// CompareInstant returns a negative number if o is an earlier instant than
// other, zero if they are the same instant, and a positive number if later.
// Two values with different offsets can represent the same instant.
func (o OffsetDateTime) CompareInstant(other OffsetDateTime) int {
	a, b := o.EpochSecond(), other.EpochSecond()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return o.Nanosecond() - other.Nanosecond()
	}
}

// String returns the date-time followed by the offset, such as
// 2007-12-03T10:15:30+01:00.
func (o OffsetDateTime) String() string {
	return o.dt.String() + o.off.String()
}

// ParseOffsetDateTime parses the form produced by OffsetDateTime.String.
func ParseOffsetDateTime(s string) (OffsetDateTime, error) {
	o, rest, err := parseOffsetDateTimePrefix(s)
	if err != nil {
		return OffsetDateTime{}, err
	}
	if rest != "" {
		return OffsetDateTime{}, fmt.Errorf("parse offset date-time %q: unexpected trailing %q", s, rest)
	}
	return o, nil
}

func parseOffsetDateTimePrefix(s string) (OffsetDateTime, string, error) {
	dt, rest, err := parseDateTimeSplit(s)
	if err != nil {
		return OffsetDateTime{}, "", err
	}
	off, rest, err := parseOffsetPrefix(rest)
	if err != nil {
		return OffsetDateTime{}, "", fmt.Errorf("parse offset date-time %q: %w", s, err)
	}
	return OffsetDateTime{dt: dt, off: off}, rest, nil
}

// parseDateTimeSplit finds where the local date-time ends (at the offset
// sign or 'Z') and parses it, returning the suffix.
func parseDateTimeSplit(s string) (civil.DateTime, string, error) {
	// The date part may begin with a sign, so search for the boundary
	// after the 'T' separator.
	t := indexByteFrom(s, 'T', 0)
	if t < 0 {
		return civil.DateTime{}, "", fmt.Errorf("parse date-time %q: missing 'T' separator", s)
	}
	end := len(s)
	for i := t + 1; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' || s[i] == 'Z' {
			end = i
			break
		}
	}
	dt, err := civil.ParseDateTime(s[:end])
	if err != nil {
		return civil.DateTime{}, "", err
	}
	return dt, s[end:], nil
}

func indexByteFrom(s string, c byte, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
