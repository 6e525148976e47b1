package timeline

import (
	"testing"
	"time"
)

func TestDayKeyOfUsesLocalCalendarFields(t *testing.T) {
	// 23:30 local must stay on its local day even when the UTC
	// rendering of the same instant falls on the next one.
	late := time.Date(2025, 8, 10, 23, 30, 0, 0, time.Local)
	if got := DayKeyOf(late); got != "2025-08-10" {
		t.Errorf("DayKeyOf(23:30 local) = %s, want 2025-08-10", got)
	}
}

func TestParseDayKeyRoundTrip(t *testing.T) {
	day, err := ParseDayKey("2025-08-10", time.Local)
	if err != nil {
		t.Fatalf("ParseDayKey: %v", err)
	}
	if day.Hour() != 0 || day.Minute() != 0 {
		t.Errorf("parsed day is not midnight: %v", day)
	}
	if got := DayKeyOf(day); got != "2025-08-10" {
		t.Errorf("round trip = %s, want 2025-08-10", got)
	}

	if _, err := ParseDayKey("10/08/2025", time.Local); err == nil {
		t.Error("expected an error for a non-ISO date")
	}
}

func TestDaysTouched(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []DayKey
	}{
		{
			name:  "within one day",
			start: "2025-08-10 08:00",
			end:   "2025-08-10 16:00",
			want:  []DayKey{"2025-08-10"},
		},
		{
			name:  "crosses midnight",
			start: "2025-08-10 22:00",
			end:   "2025-08-11 06:00",
			want:  []DayKey{"2025-08-10", "2025-08-11"},
		},
		{
			name:  "ends exactly at midnight",
			start: "2025-08-10 20:00",
			end:   "2025-08-11 00:00",
			want:  []DayKey{"2025-08-10"},
		},
		{
			name:  "spans three days",
			start: "2025-08-10 12:00",
			end:   "2025-08-12 12:00",
			want:  []DayKey{"2025-08-10", "2025-08-11", "2025-08-12"},
		},
		{
			name:  "empty interval",
			start: "2025-08-10 12:00",
			end:   "2025-08-10 12:00",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysTouched(at(t, tt.start), at(t, tt.end))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("day[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}
