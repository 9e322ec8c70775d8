package zone

import (
	"fmt"
	"strings"
	"time"

	"github.com/ngrash/go-chrono/civil"
	"github.com/ngrash/go-chrono/internal/calmath"
)

// A ZonedDateTime is a date-time in a time zone, such as
// 2007-12-03T10:15:30+01:00[Europe/Paris].
//
// The stored offset is always one the zone's rules permit for the stored
// local date-time. Operations that change the local fields re-run gap and
// overlap resolution; operations that preserve the instant derive the new
// offset directly from the rules and never need a resolver.
type ZonedDateTime struct {
	dt   civil.DateTime
	off  Offset
	zone Zone
}

// FromLocal resolves a local date-time in a zone. The resolver is consulted
// only if the local date-time falls into a gap or overlap; passing nil
// selects ResolveRetainOffset, which shifts gaps forward by the gap length
// and picks the earlier offset for overlaps.
func FromLocal(dt civil.DateTime, z Zone, resolve Resolver) (ZonedDateTime, error) {
	if z.rules == nil {
		return ZonedDateTime{}, fmt.Errorf("zone %q has no rules", z.id)
	}
	return resolveLocal(dt, z, resolve, nil)
}

// FromInstant returns the ZonedDateTime for an instant, given as seconds
// from 1970-01-01T00:00:00Z plus a nanosecond of second. Instants are exact,
// so no resolver is involved.
func FromInstant(epochSecond int64, nanoOfSecond int, z Zone) (ZonedDateTime, error) {
	if z.rules == nil {
		return ZonedDateTime{}, fmt.Errorf("zone %q has no rules", z.id)
	}
	off := z.rules.OffsetAt(epochSecond)
	dt, err := civil.DateTimeOfEpochSecond(epochSecond, nanoOfSecond, off.seconds)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{dt: dt, off: off, zone: z}, nil
}

// FromOffsetDateTime returns the ZonedDateTime for the instant an offset
// date-time pins down. The local fields are recomputed for the target zone,
// so an offset that the zone would not use is corrected rather than kept.
func FromOffsetDateTime(odt OffsetDateTime, z Zone) (ZonedDateTime, error) {
	return FromInstant(odt.EpochSecond(), odt.Nanosecond(), z)
}

func resolveLocal(dt civil.DateTime, z Zone, resolve Resolver, prev *OffsetDateTime) (ZonedDateTime, error) {
	if resolve == nil {
		resolve = ResolveRetainOffset
	}
	info := z.rules.OffsetInfo(dt)
	odt, err := resolve(dt, z, info, prev)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{dt: odt.dt, off: odt.off, zone: z}, nil
}

// reresolve re-runs resolution for new local fields, retaining the current
// offset across overlaps.
func (z ZonedDateTime) reresolve(dt civil.DateTime) (ZonedDateTime, error) {
	prev := OffsetDateTime{dt: z.dt, off: z.off}
	return resolveLocal(dt, z.zone, ResolveRetainOffset, &prev)
}

// DateTime returns the local date-time.
func (z ZonedDateTime) DateTime() civil.DateTime { return z.dt }

// Date returns the local date.
func (z ZonedDateTime) Date() civil.Date { return z.dt.Date() }

// Time returns the local time of day.
func (z ZonedDateTime) Time() civil.Time { return z.dt.Time() }

// Offset returns the offset from UTC currently in effect.
func (z ZonedDateTime) Offset() Offset { return z.off }

// Zone returns the zone.
func (z ZonedDateTime) Zone() Zone { return z.zone }

// Year returns the local year.
func (z ZonedDateTime) Year() int64 { return z.dt.Year() }

// Month returns the local month.
func (z ZonedDateTime) Month() time.Month { return z.dt.Month() }

// Day returns the local day of the month.
func (z ZonedDateTime) Day() int { return z.dt.Day() }

// Hour returns the local hour of the day.
func (z ZonedDateTime) Hour() int { return z.dt.Hour() }

// Minute returns the local minute of the hour.
func (z ZonedDateTime) Minute() int { return z.dt.Minute() }

// Second returns the local second of the minute.
func (z ZonedDateTime) Second() int { return z.dt.Second() }

// Nanosecond returns the nanosecond of the second.
func (z ZonedDateTime) Nanosecond() int { return z.dt.Nanosecond() }

// EpochSecond returns the instant as seconds from 1970-01-01T00:00:00Z.
func (z ZonedDateTime) EpochSecond() int64 { return z.dt.EpochSecond(z.off.seconds) }

// OffsetDateTime returns the date-time with its offset, dropping the zone.
func (z ZonedDateTime) OffsetDateTime() OffsetDateTime {
	return OffsetDateTime{dt: z.dt, off: z.off}
}

// WithDateTime returns a copy with the local date-time replaced, resolved
// with the given resolver (nil selects ResolveRetainOffset).
func (z ZonedDateTime) WithDateTime(dt civil.DateTime, resolve Resolver) (ZonedDateTime, error) {
	prev := OffsetDateTime{dt: z.dt, off: z.off}
	return resolveLocal(dt, z.zone, resolve, &prev)
}

// WithZoneSameLocal returns a copy in a different zone keeping the local
// fields, re-resolved with the given resolver (nil selects
// ResolveRetainOffset).
func (z ZonedDateTime) WithZoneSameLocal(z2 Zone, resolve Resolver) (ZonedDateTime, error) {
	if z2.rules == nil {
		return ZonedDateTime{}, fmt.Errorf("zone %q has no rules", z2.id)
	}
	prev := OffsetDateTime{dt: z.dt, off: z.off}
	return resolveLocal(z.dt, z2, resolve, &prev)
}

// WithZoneSameInstant returns a copy in a different zone keeping the
// instant. The new offset follows from the rules directly, so no resolver
// is needed.
func (z ZonedDateTime) WithZoneSameInstant(z2 Zone) (ZonedDateTime, error) {
	return FromInstant(z.EpochSecond(), z.Nanosecond(), z2)
}

// WithYear returns a copy with the local year changed, re-resolved with the
// retain-offset policy.
func (z ZonedDateTime) WithYear(year int64) (ZonedDateTime, error) {
	dt, err := z.dt.WithYear(year)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// WithMonth returns a copy with the local month changed, re-resolved with
// the retain-offset policy.
func (z ZonedDateTime) WithMonth(month time.Month) (ZonedDateTime, error) {
	dt, err := z.dt.WithMonth(month)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// WithDay returns a copy with the local day of the month changed,
// re-resolved with the retain-offset policy.
func (z ZonedDateTime) WithDay(day int) (ZonedDateTime, error) {
	dt, err := z.dt.WithDay(day)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// WithHour returns a copy with the local hour changed, re-resolved with the
// retain-offset policy.
func (z ZonedDateTime) WithHour(hour int) (ZonedDateTime, error) {
	dt, err := z.dt.WithHour(hour)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// WithMinute returns a copy with the local minute changed, re-resolved with
// the retain-offset policy.
func (z ZonedDateTime) WithMinute(minute int) (ZonedDateTime, error) {
	dt, err := z.dt.WithMinute(minute)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// WithSecond returns a copy with the local second changed, re-resolved with
// the retain-offset policy.
func (z ZonedDateTime) WithSecond(second int) (ZonedDateTime, error) {
	dt, err := z.dt.WithSecond(second)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// PlusYears adds years to the local fields and re-resolves with the
// retain-offset policy.
func (z ZonedDateTime) PlusYears(years int64) (ZonedDateTime, error) {
	dt, err := z.dt.PlusYears(years)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// PlusMonths adds months to the local fields and re-resolves with the
// retain-offset policy.
func (z ZonedDateTime) PlusMonths(months int64) (ZonedDateTime, error) {
	dt, err := z.dt.PlusMonths(months)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// PlusWeeks adds weeks to the local fields and re-resolves with the
// retain-offset policy.
func (z ZonedDateTime) PlusWeeks(weeks int64) (ZonedDateTime, error) {
	dt, err := z.dt.PlusWeeks(weeks)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// PlusDays adds days to the local fields and re-resolves with the
// retain-offset policy. A day here is a calendar day: across a transition
// the elapsed time may be 23 or 25 hours.
func (z ZonedDateTime) PlusDays(days int64) (ZonedDateTime, error) {
	dt, err := z.dt.PlusDays(days)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// PlusHours adds hours to the local fields and re-resolves with the
// retain-offset policy.
func (z ZonedDateTime) PlusHours(hours int64) (ZonedDateTime, error) {
	dt, err := z.dt.PlusHours(hours)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// PlusMinutes adds minutes to the local fields and re-resolves with the
// retain-offset policy.
func (z ZonedDateTime) PlusMinutes(minutes int64) (ZonedDateTime, error) {
	dt, err := z.dt.PlusMinutes(minutes)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// PlusSeconds adds seconds to the local fields and re-resolves with the
// retain-offset policy.
func (z ZonedDateTime) PlusSeconds(seconds int64) (ZonedDateTime, error) {
	dt, err := z.dt.PlusSeconds(seconds)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// AddPeriod adds a calendrical amount to the local fields and re-resolves
// with the retain-offset policy. The effective elapsed time depends on the
// calendar and on any transitions crossed.
func (z ZonedDateTime) AddPeriod(p civil.Period) (ZonedDateTime, error) {
	dt, err := z.dt.AddPeriod(p)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.reresolve(dt)
}

// AddDuration adds an exact elapsed time to the instant. The local fields
// follow from the rules at the new instant, so the result may land on a
// different offset without any resolver involvement.
func (z ZonedDateTime) AddDuration(d civil.Duration) (ZonedDateTime, error) {
	sec, ok := calmath.AddInt64(z.EpochSecond(), d.Seconds())
	if !ok {
		return ZonedDateTime{}, fmt.Errorf("%w: adding duration", civil.ErrOverflow)
	}
	nano := int64(z.Nanosecond()) + int64(d.Nanos())
	sec2, ok := calmath.AddInt64(sec, calmath.FloorDiv(nano, civil.NanosPerSecond))
	if !ok {
		return ZonedDateTime{}, fmt.Errorf("%w: adding duration", civil.ErrOverflow)
	}
	return FromInstant(sec2, int(calmath.FloorMod(nano, civil.NanosPerSecond)), z.zone)
}

// SubtractDuration subtracts an exact elapsed time from the instant.
func (z ZonedDateTime) SubtractDuration(d civil.Duration) (ZonedDateTime, error) {
	neg, err := d.Negated()
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.AddDuration(neg)
}

// CompareInstant returns a negative number if z is an earlier instant than
// other, zero if the same, and a positive number if later.
func (z ZonedDateTime) CompareInstant(other ZonedDateTime) int {
	return z.OffsetDateTime().CompareInstant(other.OffsetDateTime())
}

// Equal reports whether two values have the same local date-time, offset
// and zone identifier. Values in different zones can represent the same
// instant without being equal; use CompareInstant for instant equality.
func (z ZonedDateTime) Equal(other ZonedDateTime) bool {
	return z.dt == other.dt && z.off == other.off && z.zone.id == other.zone.id
}

// String returns the offset date-time followed by the zone identifier in
// square brackets, such as 2007-12-03T10:15:30+01:00[Europe/Paris].
func (z ZonedDateTime) String() string {
	return z.dt.String() + z.off.String() + "[" + z.zone.id + "]"
}

// ParseZonedDateTime parses the form produced by ZonedDateTime.String.
// The load function supplies rules for the zone identifier between the
// brackets; tzrules.LoadRules matches this signature. The parsed offset is
// validated against the rules: if the zone does not permit it for the local
// date-time, parsing fails.
func ParseZonedDateTime(s string, load func(id string) (Rules, error)) (ZonedDateTime, error) {
	odt, rest, err := parseOffsetDateTimePrefix(s)
	if err != nil {
		return ZonedDateTime{}, err
	}
	if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") {
		return ZonedDateTime{}, fmt.Errorf("parse zoned date-time %q: expected [zone] suffix", s)
	}
	id := rest[1 : len(rest)-1]
	if id == "" {
		return ZonedDateTime{}, fmt.Errorf("parse zoned date-time %q: empty zone id", s)
	}
	if load == nil {
		return ZonedDateTime{}, fmt.Errorf("parse zoned date-time %q: nil rules loader", s)
	}
	rules, err := load(id)
	if err != nil {
		return ZonedDateTime{}, fmt.Errorf("parse zoned date-time %q: load zone %q: %w", s, id, err)
	}
	z := New(id, rules)
	info := rules.OffsetInfo(odt.dt)
	valid := info.Transition == nil && info.Offset == odt.off ||
		info.Transition != nil && info.Transition.IsOverlap() &&
			(odt.off == info.Transition.Before || odt.off == info.Transition.After)
	if !valid {
		return ZonedDateTime{}, fmt.Errorf("parse zoned date-time %q: offset %v not valid for %v in %s",
			s, odt.off, odt.dt, id)
	}
	return ZonedDateTime{dt: odt.dt, off: odt.off, zone: z}, nil
}
