package models_test

import (
	"testing"
	"time"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

func clock(hour, minute int) time.Time {
	return time.Date(2024, 3, 14, hour, minute, 0, 0, time.UTC)
}

func TestAttendance_Derive(t *testing.T) {
	tests := []struct {
		name       string
		clockIn    time.Time
		clockOut   time.Time
		wantHours  float64
		wantStatus models.AttendanceStatus
		wantShift  models.ShiftType
	}{
		{
			name:       "full day",
			clockIn:    clock(8, 0),
			clockOut:   clock(17, 0),
			wantHours:  9,
			wantStatus: models.AttendancePresent,
			wantShift:  models.ShiftFull,
		},
		{
			name:       "exactly eight hours",
			clockIn:    clock(8, 0),
			clockOut:   clock(16, 0),
			wantHours:  8,
			wantStatus: models.AttendancePresent,
			wantShift:  models.ShiftFull,
		},
		{
			name:       "half day",
			clockIn:    clock(8, 0),
			clockOut:   clock(13, 0),
			wantHours:  5,
			wantStatus: models.AttendanceHalfDay,
			wantShift:  models.ShiftHalf,
		},
		{
			name:       "night shift counts as present",
			clockIn:    clock(19, 0),
			clockOut:   clock(23, 30),
			wantHours:  4.5,
			wantStatus: models.AttendancePresent,
			wantShift:  models.ShiftNight,
		},
		{
			name:       "short attendance is late",
			clockIn:    clock(8, 0),
			clockOut:   clock(10, 30),
			wantHours:  2.5,
			wantStatus: models.AttendanceLate,
		},
		{
			name:       "hours round to two decimals",
			clockIn:    clock(8, 0),
			clockOut:   clock(16, 20),
			wantHours:  8.33,
			wantStatus: models.AttendancePresent,
			wantShift:  models.ShiftFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := tt.clockIn, tt.clockOut
			a := models.Attendance{ClockIn: &in, ClockOut: &out}
			a.Derive()

			if !almostEqual(a.HoursWorked, tt.wantHours) {
				t.Errorf("hoursWorked = %v, want %v", a.HoursWorked, tt.wantHours)
			}
			if a.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", a.Status, tt.wantStatus)
			}
			if tt.wantShift != "" && a.ShiftType != tt.wantShift {
				t.Errorf("shiftType = %q, want %q", a.ShiftType, tt.wantShift)
			}
		})
	}
}

func TestAttendance_DeriveRecomputesShift(t *testing.T) {
	in, out := clock(8, 0), clock(17, 0)
	a := models.Attendance{ClockIn: &in, ClockOut: &out}
	a.Derive()
	if a.ShiftType != models.ShiftFull {
		t.Fatalf("shiftType = %q, want %q", a.ShiftType, models.ShiftFull)
	}

	// Corrected clock-out shrinks the day to two hours; the earlier full
	// shift must not survive the re-derivation.
	out = clock(10, 0)
	a.ClockOut = &out
	a.Derive()

	if a.Status != models.AttendanceLate {
		t.Errorf("status = %q, want %q", a.Status, models.AttendanceLate)
	}
	if a.ShiftType != "" {
		t.Errorf("shiftType = %q, want it cleared after re-derivation", a.ShiftType)
	}
}

func TestAttendance_DeriveWithoutClockTimes(t *testing.T) {
	a := models.Attendance{}
	a.Derive()

	if a.Status != models.AttendanceAbsent {
		t.Errorf("status = %q, want %q when no clock times are set", a.Status, models.AttendanceAbsent)
	}
	if a.HoursWorked != 0 {
		t.Errorf("hoursWorked = %v, want 0", a.HoursWorked)
	}

	in := clock(8, 0)
	a = models.Attendance{ClockIn: &in}
	a.Derive()
	if a.Status != models.AttendanceAbsent {
		t.Errorf("status = %q, clock-in alone must not change the status", a.Status)
	}
}

func TestAttendance_DeriveClockOutBeforeClockIn(t *testing.T) {
	in := clock(17, 0)
	out := clock(8, 0)
	a := models.Attendance{ClockIn: &in, ClockOut: &out}
	a.Derive()

	if a.HoursWorked != 0 {
		t.Errorf("hoursWorked = %v, want 0 for inverted clock times", a.HoursWorked)
	}
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, 6, 1, 15, 42, 7, 999, time.UTC)
	got := models.DateOnly(ts)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly = %v, want %v", got, want)
	}
}
