package lunar

import (
	"testing"
	"time"
)

func TestFromTimeJanuaryFirst(t *testing.T) {
	d := FromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if d.Year != 2024 {
		t.Errorf("year = %d, want 2024", d.Year)
	}
	if d.Month != 1 {
		t.Errorf("month = %d, want 1", d.Month)
	}
	if d.Day != 2 {
		t.Errorf("day = %d, want 2", d.Day)
	}
	if d.MonthName != "正月" {
		t.Errorf("monthName = %s, want 正月", d.MonthName)
	}
	if d.IsLeapMonth {
		t.Error("leap month should always be false")
	}
}

func TestFromTimeMonthProgression(t *testing.T) {
	// Day 30 of the year sits in the second 29.5-day slot.
	d := FromTime(time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC))
	if d.Month != 2 {
		t.Errorf("month = %d, want 2", d.Month)
	}
	if d.MonthName != "二月" {
		t.Errorf("monthName = %s, want 二月", d.MonthName)
	}
}

func TestFromTimeLabelsInRange(t *testing.T) {
	// Every day of a leap year must produce a label, including days
	// past the 355-day wrap.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 366; i++ {
		d := FromTime(start.AddDate(0, 0, i))
		if d.MonthName == "" || d.DayName == "" {
			t.Fatalf("empty label on %s: %+v", start.AddDate(0, 0, i), d)
		}
		if d.Month < 1 || d.Day < 1 {
			t.Fatalf("non-positive lunar components: %+v", d)
		}
	}
}

func TestParse(t *testing.T) {
	if _, ok := Parse("2024-03-10"); !ok {
		t.Error("expected valid date to parse")
	}
	if _, ok := Parse("not-a-date"); ok {
		t.Error("expected garbage to fail")
	}
}

func TestHolidays(t *testing.T) {
	hs := Holidays(2026)
	if len(hs) != 3 {
		t.Fatalf("expected 3 holidays, got %d", len(hs))
	}
	if hs[0].Name != "春节" || hs[0].Date != "2026-02-01" {
		t.Errorf("unexpected first holiday: %+v", hs[0])
	}
	for _, h := range hs {
		if h.LunarDate == "" || h.Description == "" {
			t.Errorf("incomplete holiday entry: %+v", h)
		}
	}
}
