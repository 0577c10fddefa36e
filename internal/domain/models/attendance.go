package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceStatus is derived from the worked hours on every save.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceHalfDay AttendanceStatus = "half_day"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// ShiftType classifies the worked shift, derived alongside the status.
type ShiftType string

const (
	ShiftFull  ShiftType = "full"
	ShiftHalf  ShiftType = "half"
	ShiftNight ShiftType = "night"
)

// nightShiftStartHour: a clock-in at or after this hour counts as a night shift.
const nightShiftStartHour = 18

// Attendance is one record per (labour, date), enforced by a unique index.
type Attendance struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LabourID    primitive.ObjectID `bson:"labour_id" json:"labourId"`
	Date        time.Time          `bson:"date" json:"date"`
	ClockIn     *time.Time         `bson:"clock_in,omitempty" json:"clockIn,omitempty"`
	ClockOut    *time.Time         `bson:"clock_out,omitempty" json:"clockOut,omitempty"`
	HoursWorked float64            `bson:"hours_worked" json:"hoursWorked"`
	Status      AttendanceStatus   `bson:"status" json:"status"`
	ShiftType   ShiftType          `bson:"shift_type,omitempty" json:"shiftType,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Derive recomputes hours worked, status and shift type from the clock times.
// It is a no-op when either clock time is missing; the default status stands.
func (a *Attendance) Derive() {
	if a.Status == "" {
		a.Status = AttendanceAbsent
	}
	if a.ClockIn == nil || a.ClockOut == nil {
		return
	}

	elapsed := a.ClockOut.Sub(*a.ClockIn)
	if elapsed < 0 {
		elapsed = 0
	}
	hours := decimal.NewFromFloat(elapsed.Hours()).Round(2)
	a.HoursWorked = hours.InexactFloat64()

	night := a.ClockIn.Hour() >= nightShiftStartHour

	switch {
	case a.HoursWorked >= 8:
		a.Status = AttendancePresent
		a.ShiftType = ShiftFull
	case a.HoursWorked >= 4:
		if night {
			a.Status = AttendancePresent
			a.ShiftType = ShiftNight
		} else {
			a.Status = AttendanceHalfDay
			a.ShiftType = ShiftHalf
		}
	case a.HoursWorked > 0:
		a.Status = AttendanceLate
		a.ShiftType = ""
	default:
		a.Status = AttendanceAbsent
		a.ShiftType = ""
	}
}

// DateOnly truncates t to midnight UTC so the (labour, date) uniqueness key
// compares calendar dates, not instants.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
