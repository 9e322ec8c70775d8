// Package zone provides time zone offsets, the gap/overlap resolution state
// machine, and the ZonedDateTime value type that composes a civil.DateTime
// with a zone.
//
// The zone-rule table itself is an external data source. This package only
// consumes it through the Rules interface; the tzrules package provides an
// implementation backed by the platform timezone database.
package zone

import (
	"fmt"
	"strings"
)

// maxOffsetSeconds bounds an offset to eighteen hours on either side of UTC,
// comfortably beyond every offset in the IANA database.
const maxOffsetSeconds = 18 * 3600

// An Offset is a fixed offset from UTC in seconds, such as +02:00.
// The zero value is UTC.
type Offset struct {
	seconds int
}

// UTC is the zero offset.
var UTC = Offset{}

// NewOffset returns the Offset for hour, minute and second components.
// The non-zero components must all carry the same sign and the total must
// not exceed eighteen hours.
func NewOffset(hours, minutes, seconds int) (Offset, error) {
	if (hours > 0 && (minutes < 0 || seconds < 0)) ||
		(hours < 0 && (minutes > 0 || seconds > 0)) ||
		(minutes > 0 && seconds < 0) || (minutes < 0 && seconds > 0) {
		return Offset{}, fmt.Errorf("offset components %d:%d:%d have mixed signs", hours, minutes, seconds)
	}
	if minutes < -59 || minutes > 59 {
		return Offset{}, fmt.Errorf("offset minutes %d outside range [-59, 59]", minutes)
	}
	if seconds < -59 || seconds > 59 {
		return Offset{}, fmt.Errorf("offset seconds %d outside range [-59, 59]", seconds)
	}
	return OffsetOfSeconds(hours*3600 + minutes*60 + seconds)
}

// OffsetOfSeconds returns the Offset for a total second count.
func OffsetOfSeconds(seconds int) (Offset, error) {
	if seconds < -maxOffsetSeconds || seconds > maxOffsetSeconds {
		return Offset{}, fmt.Errorf("offset %d seconds outside range [-18h, +18h]", seconds)
	}
	return Offset{seconds: seconds}, nil
}

// MustOffset is like NewOffset but panics if the offset is invalid.
func MustOffset(hours, minutes, seconds int) Offset {
	o, err := NewOffset(hours, minutes, seconds)
	if err != nil {
		panic(err)
	}
	return o
}

// TotalSeconds returns the offset as a signed second count.
func (o Offset) TotalSeconds() int { return o.seconds }

// Compare returns a negative number if o is west of other (smaller offset),
// zero if equal, and a positive number if east.
func (o Offset) Compare(other Offset) int { return o.seconds - other.seconds }

// String returns the offset in ISO-8601 format: "Z" for UTC, otherwise
// ±HH:MM, extended to ±HH:MM:SS when the seconds component is nonzero.
func (o Offset) String() string {
	if o.seconds == 0 {
		return "Z"
	}
	abs := o.seconds
	sign := byte('+')
	if abs < 0 {
		abs = -abs
		sign = '-'
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%c%02d:%02d", sign, abs/3600, abs/60%60)
	if abs%60 != 0 {
		fmt.Fprintf(&b, ":%02d", abs%60)
	}
	return b.String()
}

// ParseOffset parses an offset in the form produced by Offset.String.
func ParseOffset(s string) (Offset, error) {
	o, rest, err := parseOffsetPrefix(s)
	if err != nil {
		return Offset{}, fmt.Errorf("parse offset %q: %w", s, err)
	}
	if rest != "" {
		return Offset{}, fmt.Errorf("parse offset %q: unexpected trailing %q", s, rest)
	}
	return o, nil
}

// parseOffsetPrefix parses a leading "Z" or ±HH:MM[:SS] and returns the rest.
func parseOffsetPrefix(s string) (Offset, string, error) {
	if strings.HasPrefix(s, "Z") {
		return Offset{}, s[1:], nil
	}
	if len(s) < 6 || (s[0] != '+' && s[0] != '-') {
		return Offset{}, "", fmt.Errorf("expected 'Z' or sign")
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	if s[3] != ':' {
		return Offset{}, "", fmt.Errorf("expected ':' after hours")
	}
	hours, err := parseOffsetDigits(s[1:3], "hours")
	if err != nil {
		return Offset{}, "", err
	}
	minutes, err := parseOffsetDigits(s[4:6], "minutes")
	if err != nil {
		return Offset{}, "", err
	}
	s = s[6:]
	var seconds int
	if len(s) >= 3 && s[0] == ':' {
		seconds, err = parseOffsetDigits(s[1:3], "seconds")
		if err != nil {
			return Offset{}, "", err
		}
		s = s[3:]
	}
	o, err := OffsetOfSeconds(sign * (hours*3600 + minutes*60 + seconds))
	if err != nil {
		return Offset{}, "", err
	}
	return o, s, nil
}

func parseOffsetDigits(s, what string) (int, error) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, fmt.Errorf("%s: expected 2 digits, got %q", what, s)
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), nil
}
