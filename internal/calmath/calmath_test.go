package calmath

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestIsLeapYear(t *testing.T) {
	cases := []struct {
		year int64
		want bool
	}{
		{2020, true},
		{2021, false},
		{2024, true},

		// Century years are only leap when divisible by 400.
		{1900, false},
		{2000, true},
		{2100, false},
		{1600, true},

		// The rule extends unchanged to year zero and negative years.
		{0, true},
		{-4, true},
		{-100, false},
		{-400, true},
	}
	for _, c := range cases {
		if got := IsLeapYear(c.year); got != c.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", c.year, got, c.want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int64
		month time.Month
		want  int
	}{
		{2021, time.January, 31},
		{2021, time.February, 28},
		{2020, time.February, 29},
		{2021, time.April, 30},
		{2021, time.December, 31},
		{1900, time.February, 28},
		{2000, time.February, 29},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestToEpochDay(t *testing.T) {
	cases := []struct {
		year  int64
		month time.Month
		day   int
		want  int64
	}{
		{1970, time.January, 1, 0},
		{1970, time.January, 2, 1},
		{1969, time.December, 31, -1},
		{2000, time.January, 1, 10957},
		{2021, time.March, 28, 18714},

		// MJD epoch.
		{1858, time.November, 17, -MJDEpochToUnixEpoch},

		// Around year zero.
		{0, time.January, 1, -Days0000To1970},
		{-1, time.December, 31, -Days0000To1970 - 1},
	}
	for _, c := range cases {
		if got := ToEpochDay(c.year, c.month, c.day); got != c.want {
			t.Errorf("ToEpochDay(%d, %v, %d) = %d, want %d", c.year, c.month, c.day, got, c.want)
		}
	}
}

func TestFromEpochDay(t *testing.T) {
	type date struct {
		Year  int64
		Month time.Month
		Day   int
	}
	cases := []struct {
		in   int64
		want date
	}{
		{0, date{1970, time.January, 1}},
		{-1, date{1969, time.December, 31}},
		{10957, date{2000, time.January, 1}},
		{-Days0000To1970, date{0, time.January, 1}},
		{-Days0000To1970 - 1, date{-1, time.December, 31}},
	}
	for _, c := range cases {
		y, m, d := FromEpochDay(c.in)
		if diff := cmp.Diff(c.want, date{y, m, d}); diff != "" {
			t.Errorf("FromEpochDay(%d) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

// Conversion must round-trip across leap days, century boundaries and
// negative years.
func TestEpochDayRoundTrip(t *testing.T) {
	for _, epochDay := range []int64{
		-1_000_000, -100_000, -719_528, -1, 0, 1, 59, 60, 10957, 18714, 1_000_000,
	} {
		y, m, d := FromEpochDay(epochDay)
		if got := ToEpochDay(y, m, d); got != epochDay {
			t.Errorf("ToEpochDay(FromEpochDay(%d)) = %d", epochDay, got)
		}
	}

	// Dense scan across two leap cycles around the epoch.
	for epochDay := int64(-1500); epochDay <= 1500; epochDay++ {
		y, m, d := FromEpochDay(epochDay)
		if got := ToEpochDay(y, m, d); got != epochDay {
			t.Fatalf("ToEpochDay(FromEpochDay(%d)) = %d", epochDay, got)
		}
	}
}

func TestDayOfWeek(t *testing.T) {
	cases := []struct {
		epochDay int64
		want     int
	}{
		{0, 4},  // 1970-01-01, Thursday
		{3, 7},  // Sunday
		{4, 1},  // Monday
		{-1, 3}, // 1969-12-31, Wednesday
		{-4, 7}, // Sunday
	}
	for _, c := range cases {
		if got := DayOfWeek(c.epochDay); got != c.want {
			t.Errorf("DayOfWeek(%d) = %d, want %d", c.epochDay, got, c.want)
		}
	}
}

func TestFloorDivMod(t *testing.T) {
	cases := []struct {
		a, b    int64
		wantDiv int64
		wantMod int64
	}{
		{7, 3, 2, 1},
		{-7, 3, -3, 2},
		{7, -3, -3, -2},
		{-7, -3, 2, -1},
		{6, 3, 2, 0},
		{-6, 3, -2, 0},
	}
	for _, c := range cases {
		if got := FloorDiv(c.a, c.b); got != c.wantDiv {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.wantDiv)
		}
		if got := FloorMod(c.a, c.b); got != c.wantMod {
			t.Errorf("FloorMod(%d, %d) = %d, want %d", c.a, c.b, got, c.wantMod)
		}
	}
}

func TestCheckedArithmetic(t *testing.T) {
	const max = int64(1<<63 - 1)
	const min = -max - 1

	if _, ok := AddInt64(max, 1); ok {
		t.Error("AddInt64(max, 1) did not report overflow")
	}
	if _, ok := AddInt64(min, -1); ok {
		t.Error("AddInt64(min, -1) did not report overflow")
	}
	if got, ok := AddInt64(max, -1); !ok || got != max-1 {
		t.Errorf("AddInt64(max, -1) = %d, %v", got, ok)
	}

	if _, ok := SubInt64(min, 1); ok {
		t.Error("SubInt64(min, 1) did not report overflow")
	}
	if _, ok := SubInt64(max, -1); ok {
		t.Error("SubInt64(max, -1) did not report overflow")
	}
	if got, ok := SubInt64(0, min+1); !ok || got != max {
		t.Errorf("SubInt64(0, min+1) = %d, %v", got, ok)
	}

	if _, ok := MulInt64(max, 2); ok {
		t.Error("MulInt64(max, 2) did not report overflow")
	}
	if got, ok := MulInt64(0, min); !ok || got != 0 {
		t.Errorf("MulInt64(0, min) = %d, %v", got, ok)
	}
	if got, ok := MulInt64(-3, 4); !ok || got != -12 {
		t.Errorf("MulInt64(-3, 4) = %d, %v", got, ok)
	}
}
