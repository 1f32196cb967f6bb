package domain

import (
	"fmt"
	"time"
)

// WorkedDuration returns the time an employee spent working for one
// attendance record: clock-out minus clock-in, less recorded break time.
// For an open record (no clock-out yet) the duration runs up to now.
func (a AttendanceRecord) WorkedDuration(now time.Time) time.Duration {
	if a.ClockIn.IsZero() {
		return 0
	}
	end := a.ClockOut
	if end.IsZero() {
		end = now
	}
	if end.Before(a.ClockIn) {
		return 0
	}
	d := end.Sub(a.ClockIn) - time.Duration(a.BreakMins)*time.Minute
	if d < 0 {
		return 0
	}
	return d
}

// IsOpen reports whether the employee is still clocked in
func (a AttendanceRecord) IsOpen() bool {
	return !a.ClockIn.IsZero() && a.ClockOut.IsZero()
}

// FormatHours renders a duration as "7h 45m" for attendance tables
func FormatHours(d time.Duration) string {
	if d <= 0 {
		return "—"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}
