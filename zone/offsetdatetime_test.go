package zone

import (
	"testing"
)

func TestOffsetDateTimeEpochSecond(t *testing.T) {
	cases := []struct {
		dt   string
		off  Offset
		want int64
	}{
		{"1970-01-01T00:00", UTC, 0},
		{"1970-01-01T01:00", MustOffset(1, 0, 0), 0},
		{"1969-12-31T19:00", MustOffset(-5, 0, 0), 0},
		{"2007-12-03T10:15:30", MustOffset(1, 0, 0), 1196673330},
	}
	for _, c := range cases {
		o := NewOffsetDateTime(mustDT(t, c.dt), c.off)
		if got := o.EpochSecond(); got != c.want {
			t.Errorf("EpochSecond(%s%v) = %d, want %d", c.dt, c.off, got, c.want)
		}
	}
}

func TestWithOffsetSameInstant(t *testing.T) {
	o := NewOffsetDateTime(mustDT(t, "2007-12-03T10:15:30"), MustOffset(1, 0, 0))
	got, err := o.WithOffsetSameInstant(MustOffset(-5, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	want := NewOffsetDateTime(mustDT(t, "2007-12-03T04:15:30"), MustOffset(-5, 0, 0))
	if got != want {
		t.Errorf("WithOffsetSameInstant = %v, want %v", got, want)
	}
	if got.EpochSecond() != o.EpochSecond() {
		t.Error("instant changed")
	}
}

func TestOffsetDateTimeCompareInstant(t *testing.T) {
	// Same instant expressed with different offsets.
	a := NewOffsetDateTime(mustDT(t, "2007-12-03T10:15:30"), MustOffset(1, 0, 0))
	b := NewOffsetDateTime(mustDT(t, "2007-12-03T09:15:30"), UTC)
	if a.CompareInstant(b) != 0 {
		t.Errorf("CompareInstant = %d, want 0", a.CompareInstant(b))
	}

	later := NewOffsetDateTime(mustDT(t, "2007-12-03T09:15:30.000000001"), UTC)
	if a.CompareInstant(later) >= 0 || later.CompareInstant(a) <= 0 {
		t.Error("nanosecond ordering broken")
	}
}

func TestOffsetDateTimeString(t *testing.T) {
	cases := []struct {
		o    OffsetDateTime
		want string
	}{
		{NewOffsetDateTime(mustDT(t, "2007-12-03T10:15:30"), MustOffset(1, 0, 0)), "2007-12-03T10:15:30+01:00"},
		{NewOffsetDateTime(mustDT(t, "2007-12-03T10:15"), UTC), "2007-12-03T10:15Z"},
		{NewOffsetDateTime(mustDT(t, "-0001-01-02T00:00"), MustOffset(-5, -30, 0)), "-0001-01-02T00:00-05:30"},
	}
	for _, c := range cases {
		if got := c.o.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestParseOffsetDateTime(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"2007-12-03T10:15:30+01:00", false},
		{"2007-12-03T10:15Z", false},
		{"-0001-01-02T00:00-05:30", false},
		{"2007-12-03T10:15:30.500+00:00:30", false},

		{"2007-12-03T10:15:30", true},
		{"2007-12-03T10:15:30+1:00", true},
		{"2007-12-03T10:15:30+01:00x", true},
		{"2007-12-03 10:15:30Z", true},
	}
	for _, c := range cases {
		got, err := ParseOffsetDateTime(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseOffsetDateTime(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if got.String() != c.in {
			t.Errorf("round trip of %q = %q", c.in, got.String())
		}
	}
}
