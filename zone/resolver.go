package zone

import (
	"errors"
	"fmt"

	"github.com/ngrash/go-chrono/civil"
)

// ErrResolution means a resolver rejected a local date-time that falls into
// a gap or overlap.
var ErrResolution = errors.New("cannot resolve local date-time in zone")

// A Resolver turns a local date-time that falls into a gap or overlap into a
// definite offset date-time. It is invoked only when info carries a
// transition; for the normal single-offset case the caller applies the
// offset directly.
//
// prev is the offset date-time the operation started from, when there is
// one. Only ResolveRetainOffset consults it.
type Resolver func(desired civil.DateTime, z Zone, info Info, prev *OffsetDateTime) (OffsetDateTime, error)

// ResolveStrict rejects gaps and overlaps with ErrResolution.
func ResolveStrict(desired civil.DateTime, z Zone, info Info, prev *OffsetDateTime) (OffsetDateTime, error) {
	t := info.Transition
	if t == nil {
		return OffsetDateTime{dt: desired, off: info.Offset}, nil
	}
	kind := "gap"
	if t.IsOverlap() {
		kind = "overlap"
	}
	return OffsetDateTime{}, fmt.Errorf("%w: %v is in a %s in %s", ErrResolution, desired, kind, z.id)
}

// ResolvePreTransition chooses the offset valid immediately before the
// transition. For a gap the local date-time becomes the last nanosecond
// before the transition; for an overlap the desired local date-time is kept
// with the earlier offset.
func ResolvePreTransition(desired civil.DateTime, z Zone, info Info, prev *OffsetDateTime) (OffsetDateTime, error) {
	t := info.Transition
	if t == nil {
		return OffsetDateTime{dt: desired, off: info.Offset}, nil
	}
	if t.IsGap() {
		dt, err := t.Local.MinusNanos(1)
		if err != nil {
			return OffsetDateTime{}, err
		}
		return OffsetDateTime{dt: dt, off: t.Before}, nil
	}
	return OffsetDateTime{dt: desired, off: t.Before}, nil
}

// ResolvePostTransition chooses the offset valid after the transition. For a
// gap the local date-time is shifted forward by the length of the gap, so
// the result is a real instant; for an overlap the desired local date-time
// is kept with the later offset.
func ResolvePostTransition(desired civil.DateTime, z Zone, info Info, prev *OffsetDateTime) (OffsetDateTime, error) {
	t := info.Transition
	if t == nil {
		return OffsetDateTime{dt: desired, off: info.Offset}, nil
	}
	if t.IsGap() {
		dt, err := desired.PlusSeconds(int64(t.After.seconds - t.Before.seconds))
		if err != nil {
			return OffsetDateTime{}, err
		}
		return OffsetDateTime{dt: dt, off: t.After}, nil
	}
	return OffsetDateTime{dt: desired, off: t.After}, nil
}

// ResolveRetainOffset behaves like ResolvePostTransition for gaps. For an
// overlap it keeps the previous offset if one was supplied and it is one of
// the two candidates; otherwise it falls back to the earlier offset.
func ResolveRetainOffset(desired civil.DateTime, z Zone, info Info, prev *OffsetDateTime) (OffsetDateTime, error) {
	t := info.Transition
	if t == nil {
		return OffsetDateTime{dt: desired, off: info.Offset}, nil
	}
	if t.IsGap() {
		return ResolvePostTransition(desired, z, info, prev)
	}
	if prev != nil && (prev.off == t.Before || prev.off == t.After) {
		return OffsetDateTime{dt: desired, off: prev.off}, nil
	}
	return OffsetDateTime{dt: desired, off: t.Before}, nil
}
