package carteira

import (
	"testing"
	"time"
)

func TestBusinessDaysBetween(t *testing.T) {
	testCases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{
			// 2025-01-06 is a Monday.
			name:  "full trading week, start exclusive",
			start: "2025-01-06",
			end:   "2025-01-10",
			want:  4,
		},
		{
			name:  "across one weekend",
			start: "2025-01-10", // Friday
			end:   "2025-01-13", // Monday
			want:  1,
		},
		{
			name:  "start friday end sunday counts nothing",
			start: "2025-01-10",
			end:   "2025-01-12",
			want:  0,
		},
		{
			name:  "end equals start",
			start: "2025-01-06",
			end:   "2025-01-06",
			want:  0,
		},
		{
			name:  "end before start",
			start: "2025-01-10",
			end:   "2025-01-06",
			want:  0,
		},
		{
			name:  "one calendar month",
			start: "2025-01-31",
			end:   "2025-02-28",
			want:  20,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := BusinessDaysBetween(MustParseDate(tc.start), MustParseDate(tc.end))
			if got != tc.want {
				t.Errorf("BusinessDaysBetween(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestMonthClosedBy(t *testing.T) {
	today := MustParseDate("2025-06-15")
	testCases := []struct {
		month string
		want  bool
	}{
		{"2025-05", true},
		{"2024-12", true},
		{"2025-06", false}, // the current month is open
		{"2025-07", false},
	}
	for _, tc := range testCases {
		m := MustParseMonth(tc.month)
		if got := m.ClosedBy(today); got != tc.want {
			t.Errorf("%s.ClosedBy(%s) = %v, want %v", m, today, got, tc.want)
		}
	}
}

func TestMonthEnd(t *testing.T) {
	testCases := []struct {
		month string
		want  string
	}{
		{"2025-01", "2025-01-31"},
		{"2025-02", "2025-02-28"},
		{"2024-02", "2024-02-29"},
		{"2025-12", "2025-12-31"},
	}
	for _, tc := range testCases {
		if got := MustParseMonth(tc.month).End(); got.String() != tc.want {
			t.Errorf("%s.End() = %s, want %s", tc.month, got, tc.want)
		}
	}
}

func TestMonthsBetween(t *testing.T) {
	got := MonthsBetween(NewMonth(2024, time.November), NewMonth(2025, time.February))
	want := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
	if len(got) != len(want) {
		t.Fatalf("MonthsBetween returned %d months, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.String() != want[i] {
			t.Errorf("month[%d] = %s, want %s", i, m, want[i])
		}
	}
	if MonthsBetween(NewMonth(2025, time.March), NewMonth(2025, time.January)) != nil {
		t.Error("reversed bounds should yield no months")
	}
}
