package zone

import (
	"time"

	"github.com/ngrash/go-chrono/civil"
)

// Rules answers offset queries for one time zone. Implementations are
// expected to behave as read-only snapshots: the same query always yields
// the same answer within one use of a Rules value.
type Rules interface {
	// OffsetInfo classifies a local date-time. The result carries either
	// the single valid offset, or a Transition describing the gap or
	// overlap the local date-time falls into.
	OffsetInfo(dt civil.DateTime) Info

	// OffsetAt returns the offset in effect at an instant, given as
	// seconds from 1970-01-01T00:00:00Z. Instants are exact, so this query
	// is never ambiguous.
	OffsetAt(epochSecond int64) Offset
}

// Info is the result of classifying a local date-time against zone rules.
type Info struct {
	// Offset is the single valid offset. It is only meaningful when
	// Transition is nil.
	Offset Offset

	// Transition is non-nil when the local date-time falls into a gap or
	// overlap around an offset change.
	Transition *Transition
}

// A Transition describes one offset change of a zone.
type Transition struct {
	// Local is the local date-time at which the transition begins,
	// expressed with the offset in force before it.
	Local civil.DateTime

	// Before is the offset in force immediately before the transition.
	Before Offset

	// After is the offset in force at and after the transition.
	After Offset
}

// IsGap reports whether the transition skips local time, as in a
// spring-forward clock change.
func (t *Transition) IsGap() bool { return t.After.seconds > t.Before.seconds }

// IsOverlap reports whether the transition repeats local time, as in a
// fall-back clock change.
func (t *Transition) IsOverlap() bool { return t.After.seconds < t.Before.seconds }

// Length returns the size of the transition: positive for a gap, negative
// for an overlap.
func (t *Transition) Length() time.Duration {
	return time.Duration(t.After.seconds-t.Before.seconds) * time.Second
}

// DateTimeBefore returns the local date-time at which the transition begins,
// using the offset before it.
func (t *Transition) DateTimeBefore() civil.DateTime { return t.Local }

// DateTimeAfter returns the local date-time immediately after the
// transition, using the offset after it.
func (t *Transition) DateTimeAfter() (civil.DateTime, error) {
	return t.Local.PlusSeconds(int64(t.After.seconds - t.Before.seconds))
}

// A Zone pairs a zone identifier with its rules. The identifier is the name
// used in the canonical text form, e.g. "Europe/Paris" or "UTC+02:00" for a
// fixed zone.
type Zone struct {
	id    string
	rules Rules
}

// New returns a Zone with the given identifier and rules.
func New(id string, rules Rules) Zone {
	return Zone{id: id, rules: rules}
}

// FixedZone returns a Zone whose rules always yield the given offset.
// If id is empty, the offset's text form is used as the identifier.
func FixedZone(id string, offset Offset) Zone {
	if id == "" {
		id = "UTC" + offset.String()
		if offset.seconds == 0 {
			id = "UTC"
		}
	}
	return Zone{id: id, rules: fixedRules{offset: offset}}
}

// ID returns the zone identifier.
func (z Zone) ID() string { return z.id }

// Rules returns the zone's rules.
func (z Zone) Rules() Rules { return z.rules }

// fixedRules is the Rules implementation for fixed-offset zones. It never
// reports transitions.
type fixedRules struct {
	offset Offset
}

func (r fixedRules) OffsetInfo(civil.DateTime) Info { return Info{Offset: r.offset} }
func (r fixedRules) OffsetAt(int64) Offset          { return r.offset }
