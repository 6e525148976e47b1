package timeline

import (
	"testing"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return parsed
}

func tp(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed := at(t, value)
	return &parsed
}

func TestEffectiveRange(t *testing.T) {
	tests := []struct {
		name      string
		shift     *domain.Shift
		wantStart string
		wantEnd   string
		wantOK    bool
	}{
		{
			name: "planned pair",
			shift: &domain.Shift{
				PlannedStart: tp(t, "2025-08-10 08:00"),
				PlannedEnd:   tp(t, "2025-08-10 16:00"),
			},
			wantStart: "2025-08-10 08:00",
			wantEnd:   "2025-08-10 16:00",
			wantOK:    true,
		},
		{
			name: "actual pair wins over planned",
			shift: &domain.Shift{
				PlannedStart: tp(t, "2025-08-10 08:00"),
				PlannedEnd:   tp(t, "2025-08-10 16:00"),
				ActualStart:  tp(t, "2025-08-10 08:30"),
				ActualEnd:    tp(t, "2025-08-10 16:30"),
			},
			wantStart: "2025-08-10 08:30",
			wantEnd:   "2025-08-10 16:30",
			wantOK:    true,
		},
		{
			name: "actual start alone hides the planned pair",
			shift: &domain.Shift{
				PlannedStart: tp(t, "2025-08-10 08:00"),
				PlannedEnd:   tp(t, "2025-08-10 16:00"),
				ActualStart:  tp(t, "2025-08-10 09:00"),
			},
			wantStart: "2025-08-10 09:00",
			wantEnd:   "2025-08-10 10:00",
			wantOK:    true,
		},
		{
			name: "missing end defaults to one hour",
			shift: &domain.Shift{
				PlannedStart: tp(t, "2025-08-10 22:00"),
			},
			wantStart: "2025-08-10 22:00",
			wantEnd:   "2025-08-10 23:00",
			wantOK:    true,
		},
		{
			name:   "no start at all",
			shift:  &domain.Shift{PlannedEnd: tp(t, "2025-08-10 16:00")},
			wantOK: false,
		},
		{
			name: "end before start is malformed",
			shift: &domain.Shift{
				PlannedStart: tp(t, "2025-08-10 16:00"),
				PlannedEnd:   tp(t, "2025-08-10 08:00"),
			},
			wantOK: false,
		},
		{
			name: "zero duration is malformed",
			shift: &domain.Shift{
				PlannedStart: tp(t, "2025-08-10 08:00"),
				PlannedEnd:   tp(t, "2025-08-10 08:00"),
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := EffectiveRange(tt.shift)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !start.Equal(at(t, tt.wantStart)) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(at(t, tt.wantEnd)) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{
			name: "separate",
			a:    [2]string{"2025-08-10 08:00", "2025-08-10 10:00"},
			b:    [2]string{"2025-08-10 11:00", "2025-08-10 12:00"},
			want: false,
		},
		{
			name: "touching edges do not overlap",
			a:    [2]string{"2025-08-10 08:00", "2025-08-10 10:00"},
			b:    [2]string{"2025-08-10 10:00", "2025-08-10 12:00"},
			want: false,
		},
		{
			name: "partial overlap",
			a:    [2]string{"2025-08-10 08:00", "2025-08-10 11:00"},
			b:    [2]string{"2025-08-10 10:00", "2025-08-10 12:00"},
			want: true,
		},
		{
			name: "containment",
			a:    [2]string{"2025-08-10 08:00", "2025-08-10 20:00"},
			b:    [2]string{"2025-08-10 10:00", "2025-08-10 12:00"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Interval{Start: at(t, tt.a[0]), End: at(t, tt.a[1])}
			b := Interval{Start: at(t, tt.b[0]), End: at(t, tt.b[1])}
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			if got := b.Overlaps(a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampToDay(t *testing.T) {
	dayStart := at(t, "2025-08-10 00:00")

	tests := []struct {
		name        string
		start, end  string
		wantStart   string
		wantEnd     string
		wantInto    bool
		wantOut     bool
		wantTouches bool
	}{
		{
			name:        "entirely inside",
			start:       "2025-08-10 08:00",
			end:         "2025-08-10 16:00",
			wantStart:   "2025-08-10 08:00",
			wantEnd:     "2025-08-10 16:00",
			wantTouches: true,
		},
		{
			name:        "crosses in from the previous day",
			start:       "2025-08-09 22:00",
			end:         "2025-08-10 06:00",
			wantStart:   "2025-08-10 00:00",
			wantEnd:     "2025-08-10 06:00",
			wantInto:    true,
			wantTouches: true,
		},
		{
			name:        "crosses out into the next day",
			start:       "2025-08-10 22:00",
			end:         "2025-08-11 06:00",
			wantStart:   "2025-08-10 22:00",
			wantEnd:     "2025-08-11 00:00",
			wantOut:     true,
			wantTouches: true,
		},
		{
			name:        "does not touch the day",
			start:       "2025-08-11 08:00",
			end:         "2025-08-11 16:00",
			wantTouches: false,
		},
		{
			name:        "ends exactly at midnight of the day",
			start:       "2025-08-09 20:00",
			end:         "2025-08-10 00:00",
			wantTouches: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, touches := ClampToDay(at(t, tt.start), at(t, tt.end), dayStart)
			if touches != tt.wantTouches {
				t.Fatalf("touches = %v, want %v", touches, tt.wantTouches)
			}
			if !touches {
				return
			}
			if !iv.Start.Equal(at(t, tt.wantStart)) {
				t.Errorf("start = %v, want %v", iv.Start, tt.wantStart)
			}
			if !iv.End.Equal(at(t, tt.wantEnd)) {
				t.Errorf("end = %v, want %v", iv.End, tt.wantEnd)
			}
			if iv.CrossesIntoDay != tt.wantInto {
				t.Errorf("crossesIntoDay = %v, want %v", iv.CrossesIntoDay, tt.wantInto)
			}
			if iv.CrossesOutOfDay != tt.wantOut {
				t.Errorf("crossesOutOfDay = %v, want %v", iv.CrossesOutOfDay, tt.wantOut)
			}
		})
	}
}

func TestShiftsForDayCountsExcluded(t *testing.T) {
	dayStart := at(t, "2025-08-10 00:00")

	shifts := []*domain.Shift{
		{ID: 1, PlannedStart: tp(t, "2025-08-10 08:00"), PlannedEnd: tp(t, "2025-08-10 16:00")},
		{ID: 2}, // no times at all
		{ID: 3, PlannedStart: tp(t, "2025-08-10 16:00"), PlannedEnd: tp(t, "2025-08-10 08:00")}, // inverted
		{ID: 4, PlannedStart: tp(t, "2025-08-12 08:00"), PlannedEnd: tp(t, "2025-08-12 16:00")}, // other day
	}

	out, excluded := ShiftsForDay(shifts, dayStart)
	if len(out) != 1 || out[0].Shift.ID != 1 {
		t.Fatalf("got %d day shifts, want only shift 1", len(out))
	}
	if excluded != 2 {
		t.Errorf("excluded = %d, want 2", excluded)
	}
}

func TestShiftsForDaySkipsVoided(t *testing.T) {
	dayStart := at(t, "2025-08-10 00:00")

	shifts := []*domain.Shift{
		{ID: 1, PlannedStart: tp(t, "2025-08-10 08:00"), PlannedEnd: tp(t, "2025-08-10 16:00")},
		{ID: 2, Status: domain.ShiftStatusVoided, PlannedStart: tp(t, "2025-08-10 09:00"), PlannedEnd: tp(t, "2025-08-10 13:00")},
	}

	out, excluded := ShiftsForDay(shifts, dayStart)
	if len(out) != 1 || out[0].Shift.ID != 1 {
		t.Fatalf("got %d day shifts, want only shift 1", len(out))
	}
	// A voided shift holds no time; it is not malformed.
	if excluded != 0 {
		t.Errorf("excluded = %d, want 0", excluded)
	}
}
