// Package tzrules adapts the platform timezone database to the zone.Rules
// interface. It answers offset queries by probing a *time.Location, so it
// inherits whatever tzdata version the Go runtime or operating system ships.
package tzrules

import (
	"fmt"
	"time"

	"github.com/ngrash/go-chrono/civil"
	"github.com/ngrash/go-chrono/zone"
)

// probeWindow is the half-width of the instant window searched for a
// transition around a local date-time. Two days is far wider than any
// gap or overlap in the IANA database.
const probeWindow = 2 * 86400

// LocationRules implements zone.Rules on top of a *time.Location.
type LocationRules struct {
	loc *time.Location
}

// ForLocation wraps a location. A nil location means UTC, mirroring the
// time package.
func ForLocation(loc *time.Location) *LocationRules {
	if loc == nil {
		loc = time.UTC
	}
	return &LocationRules{loc: loc}
}

// LoadRules loads the rules for an IANA zone identifier such as
// "Europe/Paris". Its signature matches the loader parameter of
// zone.ParseZonedDateTime.
func LoadRules(name string) (zone.Rules, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load zone rules %q: %w", name, err)
	}
	return ForLocation(loc), nil
}

// Load loads a complete zone for an IANA identifier.
func Load(name string) (zone.Zone, error) {
	rules, err := LoadRules(name)
	if err != nil {
		return zone.Zone{}, err
	}
	return zone.New(name, rules), nil
}

// OffsetAt returns the offset in effect at an instant.
func (r *LocationRules) OffsetAt(epochSecond int64) zone.Offset {
	_, sec := time.Unix(epochSecond, 0).In(r.loc).Zone()
	// tzdata offsets never leave the permitted [-18h, +18h] range.
	o, _ := zone.OffsetOfSeconds(sec)
	return o
}

// OffsetInfo classifies a local date-time against the location's rules.
//
// The location only answers instant queries, so the classification probes
// the offsets two days before and after the local date-time. If they
// differ, a binary search pins down the transition instant and the local
// date-time is placed before, inside, or after the gap or overlap.
func (r *LocationRules) OffsetInfo(dt civil.DateTime) zone.Info {
	// Local seconds: the date-time read as if it were UTC. An instant t
	// with offset o has local seconds t + o.
	ls := dt.EpochSecond(0)

	lo := ls - probeWindow
	hi := ls + probeWindow
	before := r.OffsetAt(lo)
	after := r.OffsetAt(hi)
	if before == after {
		return zone.Info{Offset: before}
	}

	// Find the first instant at which the offset has changed.
	for lo+1 < hi {
		mid := lo + (hi-lo)/2
		if r.OffsetAt(mid) == before {
			lo = mid
		} else {
			hi = mid
		}
	}
	t := hi
	after = r.OffsetAt(t)

	bsec := int64(before.TotalSeconds())
	asec := int64(after.TotalSeconds())
	switch {
	case asec > bsec: // gap: local seconds in [t+before, t+after) do not occur
		switch {
		case ls < t+bsec:
			return zone.Info{Offset: before}
		case ls >= t+asec:
			return zone.Info{Offset: after}
		}
	case asec < bsec: // overlap: local seconds in [t+after, t+before) occur twice
		switch {
		case ls < t+asec:
			return zone.Info{Offset: before}
		case ls >= t+bsec:
			return zone.Info{Offset: after}
		}
	default:
		return zone.Info{Offset: before}
	}

	local, err := civil.DateTimeOfEpochSecond(t, 0, before.TotalSeconds())
	if err != nil {
		// Unreachable for instants the probe can produce; fall back to
		// the pre-transition offset rather than invent a transition.
		return zone.Info{Offset: before}
	}
	return zone.Info{Transition: &zone.Transition{
		Local:  local,
		Before: before,
		After:  after,
	}}
}
