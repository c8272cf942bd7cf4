package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParse_Valid(t *testing.T) {
	d, err := Parse("2026-03-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year != 2026 || d.Month != time.March || d.Day != 9 {
		t.Errorf("got %+v", d)
	}
	if d.String() != "2026-03-09" {
		t.Errorf("String() = %q", d.String())
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{"", "2026-02-30", "2026/03/09", "not-a-date", "2026-3-9", "2026-03-09T10:00:00Z"}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := Parse(s)
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidDate", s, err)
			}
		})
	}
}

func TestAddDays_CrossesMonthAndYear(t *testing.T) {
	d := MustParse("2025-12-31")
	if got := d.AddDays(1).String(); got != "2026-01-01" {
		t.Errorf("AddDays(1) = %s", got)
	}
	if got := MustParse("2024-03-01").AddDays(-1).String(); got != "2024-02-29" {
		t.Errorf("leap day: got %s", got)
	}
}

func TestFromTime_UsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	ts := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	if got := FromTime(ts.In(loc)).String(); got != "2026-05-02" {
		t.Errorf("FromTime in +10 = %s, want 2026-05-02", got)
	}
	if got := FromTime(ts).String(); got != "2026-05-01" {
		t.Errorf("FromTime in UTC = %s, want 2026-05-01", got)
	}
}

func TestLastNDays(t *testing.T) {
	days := LastNDays(MustParse("2026-01-02"), 3)
	want := []string{"2025-12-31", "2026-01-01", "2026-01-02"}
	if len(days) != len(want) {
		t.Fatalf("got %d days, want %d", len(days), len(want))
	}
	for i, d := range days {
		if d.String() != want[i] {
			t.Errorf("day %d = %s, want %s", i, d, want[i])
		}
	}
	if LastNDays(MustParse("2026-01-02"), 0) != nil {
		t.Error("expected nil for n=0")
	}
}

func TestWeek(t *testing.T) {
	// 2026-10-15 is a Thursday.
	week := Week(MustParse("2026-10-15"), time.Monday)
	if week[0].String() != "2026-10-12" || week[6].String() != "2026-10-18" {
		t.Errorf("monday week = %s..%s", week[0], week[6])
	}

	week = Week(MustParse("2026-10-15"), time.Sunday)
	if week[0].String() != "2026-10-11" || week[6].String() != "2026-10-17" {
		t.Errorf("sunday week = %s..%s", week[0], week[6])
	}

	// Day equal to the week start begins its own week.
	week = Week(MustParse("2026-10-12"), time.Monday)
	if week[0].String() != "2026-10-12" {
		t.Errorf("week start = %s", week[0])
	}
}

func TestSorted_Dedupes(t *testing.T) {
	in := []Date{MustParse("2026-01-03"), MustParse("2026-01-01"), MustParse("2026-01-03"), MustParse("2026-01-02")}
	got := Sorted(in)
	want := []string{"2026-01-01", "2026-01-02", "2026-01-03"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("index %d = %s, want %s", i, got[i], want[i])
		}
	}
	if in[0].String() != "2026-01-03" {
		t.Error("Sorted mutated its input")
	}
}

func TestDaysUntil(t *testing.T) {
	a := MustParse("2026-01-01")
	b := MustParse("2026-01-31")
	if a.DaysUntil(b) != 30 {
		t.Errorf("DaysUntil = %d", a.DaysUntil(b))
	}
	if b.DaysUntil(a) != -30 {
		t.Errorf("reverse DaysUntil = %d", b.DaysUntil(a))
	}
}

func TestParseWeekday(t *testing.T) {
	wd, err := ParseWeekday("Monday")
	if err != nil || wd != time.Monday {
		t.Errorf("ParseWeekday(Monday) = %v, %v", wd, err)
	}
	if _, err := ParseWeekday("funday"); err == nil {
		t.Error("expected error for unknown weekday")
	}
}
