package civil

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewDate(t *testing.T) {
	cases := []struct {
		year    int64
		month   time.Month
		day     int
		wantErr error
	}{
		{2021, time.March, 28, nil},
		{2020, time.February, 29, nil},
		{MinYear, time.January, 1, nil},
		{MaxYear, time.December, 31, nil},

		// Day valid in general but not in this month.
		{2021, time.February, 29, ErrInvalidDate},
		{2021, time.April, 31, ErrInvalidDate},
		{1900, time.February, 29, ErrInvalidDate},

		// Fields outside their natural ranges.
		{2021, time.Month(13), 1, ErrFieldRange},
		{2021, time.Month(0), 1, ErrFieldRange},
		{2021, time.January, 0, ErrFieldRange},
		{2021, time.January, 32, ErrFieldRange},
		{MaxYear + 1, time.January, 1, ErrFieldRange},
		{MinYear - 1, time.January, 1, ErrFieldRange},
	}
	for _, c := range cases {
		_, err := NewDate(c.year, c.month, c.day)
		if !errors.Is(err, c.wantErr) {
			t.Errorf("NewDate(%d, %v, %d) error = %v, want %v", c.year, c.month, c.day, err, c.wantErr)
		}
	}
}

func TestDateOfYearDay(t *testing.T) {
	cases := []struct {
		year      int64
		dayOfYear int
		want      Date
		wantErr   error
	}{
		{2021, 1, MustDate(2021, time.January, 1), nil},
		{2021, 59, MustDate(2021, time.February, 28), nil},
		{2021, 60, MustDate(2021, time.March, 1), nil},
		{2020, 60, MustDate(2020, time.February, 29), nil},
		{2020, 366, MustDate(2020, time.December, 31), nil},
		{2021, 365, MustDate(2021, time.December, 31), nil},
		{2021, 366, Date{}, ErrInvalidDate},
		{2021, 0, Date{}, ErrFieldRange},
		{2021, 367, Date{}, ErrFieldRange},
	}
	for _, c := range cases {
		got, err := DateOfYearDay(c.year, c.dayOfYear)
		if !errors.Is(err, c.wantErr) {
			t.Errorf("DateOfYearDay(%d, %d) error = %v, want %v", c.year, c.dayOfYear, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("DateOfYearDay(%d, %d) = %v, want %v", c.year, c.dayOfYear, got, c.want)
		}
	}
}

func TestDateAccessors(t *testing.T) {
	d := MustDate(2021, time.March, 28)
	if got := d.Weekday(); got != time.Sunday {
		t.Errorf("Weekday() = %v, want Sunday", got)
	}
	if got := d.DayOfYear(); got != 87 {
		t.Errorf("DayOfYear() = %d, want 87", got)
	}
	if got := d.LengthOfMonth(); got != 31 {
		t.Errorf("LengthOfMonth() = %d, want 31", got)
	}
	if got := d.LengthOfYear(); got != 365 {
		t.Errorf("LengthOfYear() = %d, want 365", got)
	}

	epoch := MustDate(1970, time.January, 1)
	if got := epoch.EpochDay(); got != 0 {
		t.Errorf("EpochDay() = %d, want 0", got)
	}
	if got := epoch.Weekday(); got != time.Thursday {
		t.Errorf("Weekday() = %v, want Thursday", got)
	}
	if got := epoch.ModifiedJulianDay(); got != 40587 {
		t.Errorf("ModifiedJulianDay() = %d, want 40587", got)
	}

	mjdEpoch := MustDate(1858, time.November, 17)
	if got := mjdEpoch.ModifiedJulianDay(); got != 0 {
		t.Errorf("ModifiedJulianDay() = %d, want 0", got)
	}
}

func TestDateOfModifiedJulianDay(t *testing.T) {
	got, err := DateOfModifiedJulianDay(40587)
	if err != nil {
		t.Fatalf("DateOfModifiedJulianDay(40587): %v", err)
	}
	if want := MustDate(1970, time.January, 1); got != want {
		t.Errorf("DateOfModifiedJulianDay(40587) = %v, want %v", got, want)
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name    string
		resolve DateResolver
		want    Date
		wantErr error
	}{
		{"strict", ResolveStrict, Date{}, ErrInvalidDate},
		{"previous valid", ResolvePreviousValid, MustDate(2021, time.February, 28), nil},
		{"next valid", ResolveNextValid, MustDate(2021, time.March, 1), nil},
		{"nil defaults to previous valid", nil, MustDate(2021, time.February, 28), nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Resolve(2021, time.February, 29, c.resolve)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("Resolve error = %v, want %v", err, c.wantErr)
			}
			if got != c.want {
				t.Errorf("Resolve = %v, want %v", got, c.want)
			}
		})
	}

	// A field outside its natural range is rejected by every policy.
	for _, resolve := range []DateResolver{ResolveStrict, ResolvePreviousValid, ResolveNextValid} {
		if _, err := Resolve(2021, time.Month(13), 1, resolve); !errors.Is(err, ErrFieldRange) {
			t.Errorf("Resolve(month 13) error = %v, want %v", err, ErrFieldRange)
		}
	}
}

func TestDateWith(t *testing.T) {
	leap := MustDate(2020, time.February, 29)

	// WithYear and WithMonth clamp to the previous valid day.
	if got, err := leap.WithYear(2021); err != nil || got != MustDate(2021, time.February, 28) {
		t.Errorf("WithYear(2021) = %v, %v", got, err)
	}
	if got, err := MustDate(2021, time.January, 31).WithMonth(time.April); err != nil || got != MustDate(2021, time.April, 30) {
		t.Errorf("WithMonth(April) = %v, %v", got, err)
	}

	// WithDay is strict.
	if _, err := MustDate(2021, time.February, 1).WithDay(29); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("WithDay(29) error = %v, want %v", err, ErrInvalidDate)
	}
	if got, err := MustDate(2021, time.February, 1).WithDay(28); err != nil || got != MustDate(2021, time.February, 28) {
		t.Errorf("WithDay(28) = %v, %v", got, err)
	}

	if got, err := MustDate(2021, time.June, 15).WithDayOfYear(60); err != nil || got != MustDate(2021, time.March, 1) {
		t.Errorf("WithDayOfYear(60) = %v, %v", got, err)
	}
}

func TestDatePlus(t *testing.T) {
	cases := []struct {
		name string
		got  func() (Date, error)
		want Date
	}{
		{
			"plus years clamps leap day",
			func() (Date, error) { return MustDate(2020, time.February, 29).PlusYears(1) },
			MustDate(2021, time.February, 28),
		},
		{
			"plus months clamps to shorter month",
			func() (Date, error) { return MustDate(2008, time.January, 30).PlusMonths(1) },
			MustDate(2008, time.February, 29),
		},
		{
			"plus months clamps in non-leap year",
			func() (Date, error) { return MustDate(2007, time.January, 30).PlusMonths(1) },
			MustDate(2007, time.February, 28),
		},
		{
			"plus months across year boundary",
			func() (Date, error) { return MustDate(2021, time.November, 15).PlusMonths(3) },
			MustDate(2022, time.February, 15),
		},
		{
			"minus months across year boundary",
			func() (Date, error) { return MustDate(2021, time.January, 15).MinusMonths(2) },
			MustDate(2020, time.November, 15),
		},
		{
			"plus days across leap day",
			func() (Date, error) { return MustDate(2020, time.February, 28).PlusDays(2) },
			MustDate(2020, time.March, 1),
		},
		{
			"plus weeks",
			func() (Date, error) { return MustDate(2021, time.March, 28).PlusWeeks(2) },
			MustDate(2021, time.April, 11),
		},
		{
			"minus days across year boundary",
			func() (Date, error) { return MustDate(2021, time.January, 1).MinusDays(1) },
			MustDate(2020, time.December, 31),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.got()
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

// Day-based arithmetic is exact, so adding and subtracting the same delta
// must return the starting date.
func TestDatePlusDaysSymmetry(t *testing.T) {
	start := MustDate(2021, time.March, 28)
	for _, days := range []int64{1, 28, 365, 1461, 146097, -59, -146097} {
		d, err := start.PlusDays(days)
		if err != nil {
			t.Fatal(err)
		}
		back, err := d.PlusDays(-days)
		if err != nil {
			t.Fatal(err)
		}
		if back != start {
			t.Errorf("PlusDays(%d).PlusDays(%d) = %v, want %v", days, -days, back, start)
		}
	}
}

func TestDateRangeErrors(t *testing.T) {
	// Results beyond the supported years fail with a range error even though
	// the machine arithmetic did not overflow.
	if _, err := MaxDate.PlusDays(1); !errors.Is(err, ErrDateRange) {
		t.Errorf("MaxDate.PlusDays(1) error = %v, want %v", err, ErrDateRange)
	}
	if _, err := MinDate.MinusDays(1); !errors.Is(err, ErrDateRange) {
		t.Errorf("MinDate.MinusDays(1) error = %v, want %v", err, ErrDateRange)
	}
	if _, err := MaxDate.PlusYears(1); !errors.Is(err, ErrDateRange) {
		t.Errorf("MaxDate.PlusYears(1) error = %v, want %v", err, ErrDateRange)
	}

	// Machine overflow is reported as such, before any domain check.
	if _, err := MustDate(2021, time.January, 1).PlusDays(1 << 62); !errors.Is(err, ErrDateRange) && !errors.Is(err, ErrOverflow) {
		t.Errorf("PlusDays(1<<62) error = %v", err)
	}
	const maxInt64 = int64(1<<63 - 1)
	if _, err := MustDate(2021, time.January, 1).PlusYears(maxInt64); !errors.Is(err, ErrOverflow) {
		t.Errorf("PlusYears(max) error = %v, want %v", err, ErrOverflow)
	}
}

func TestDateAddPeriod(t *testing.T) {
	cases := []struct {
		name string
		d    Date
		p    Period
		want Date
	}{
		// Years first, then months, then days; clamping at each stage is
		// observable in the result.
		{
			"one month minus one day",
			MustDate(2008, time.January, 31),
			Period{Months: 1, Days: -1},
			MustDate(2008, time.February, 28),
		},
		{
			"year then month from leap day",
			MustDate(2020, time.February, 29),
			Period{Years: 1, Months: 1},
			MustDate(2021, time.March, 28),
		},
		{
			"date components only",
			MustDate(2021, time.March, 28),
			Period{Years: 1, Months: 2, Days: 3},
			MustDate(2022, time.May, 31),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.d.AddPeriod(c.p)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("AddPeriod(%v) = %v, want %v", c.p, got, c.want)
			}
		})
	}

	if _, err := MustDate(2021, time.March, 28).AddPeriod(Period{Hours: 1}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("AddPeriod with time components error = %v, want %v", err, ErrUnsupported)
	}
}

func TestDateSubtractPeriod(t *testing.T) {
	// Subtracting applies the negated period with the same ordering rules.
	got, err := MustDate(2008, time.March, 30).SubtractPeriod(Period{Months: 1, Days: -1})
	if err != nil {
		t.Fatal(err)
	}
	if want := MustDate(2008, time.March, 1); got != want {
		t.Errorf("SubtractPeriod = %v, want %v", got, want)
	}
}

func TestDateCompare(t *testing.T) {
	a := MustDate(2021, time.March, 28)
	b := MustDate(2021, time.March, 29)
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Errorf("ordering of %v and %v broken", a, b)
	}
	if a.Compare(a) != 0 {
		t.Errorf("Compare with itself = %d", a.Compare(a))
	}
	if c := MustDate(-1, time.December, 31).Compare(MustDate(0, time.January, 1)); c >= 0 {
		t.Errorf("year -1 not before year 0, Compare = %d", c)
	}
}

func TestDateString(t *testing.T) {
	cases := []struct {
		d    Date
		want string
	}{
		{MustDate(2007, time.December, 3), "2007-12-03"},
		{MustDate(0, time.January, 1), "0000-01-01"},
		{MustDate(-1, time.January, 2), "-0001-01-02"},
		{MustDate(10000, time.January, 1), "+10000-01-01"},
		{MustDate(9999, time.December, 31), "9999-12-31"},
		{MustDate(-999999999, time.January, 1), "-999999999-01-01"},
	}
	for _, c := range cases {
		if got := c.d.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2007-12-03", MustDate(2007, time.December, 3), false},
		{"-0001-01-02", MustDate(-1, time.January, 2), false},
		{"+10000-01-01", MustDate(10000, time.January, 1), false},
		{"0000-01-01", MustDate(0, time.January, 1), false},

		{"2007-2-03", Date{}, true},
		{"2007-12-3", Date{}, true},
		{"2007-13-01", Date{}, true},
		{"2007-02-29", Date{}, true},
		{"07-12-03", Date{}, true},
		{"2007-12-03T10:15", Date{}, true},
		{"", Date{}, true},
	}
	for _, c := range cases {
		got, err := ParseDate(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDate(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDateTextRoundTrip(t *testing.T) {
	for _, d := range []Date{
		MustDate(2007, time.December, 3),
		MustDate(-1, time.January, 2),
		MustDate(10000, time.June, 30),
		MinDate,
		MaxDate,
	} {
		text, err := d.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Date
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if diff := cmp.Diff(d.String(), back.String()); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}
