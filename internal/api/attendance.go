package api

import (
	"context"
	"net/url"
	"time"

	"staffdeck/internal/domain"
)

type attendanceWire struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Employee   string    `json:"employee_name"`
	Date       time.Time `json:"date"`
	ClockIn    time.Time `json:"clock_in"`
	ClockOut   time.Time `json:"clock_out"`
	BreakMins  int       `json:"break_minutes"`
	Status     string    `json:"status"`
}

// ListAttendance returns attendance records for one day
func (c *Client) ListAttendance(ctx context.Context, day time.Time) ([]domain.AttendanceRecord, error) {
	q := url.Values{}
	q.Set("date", day.Format("2006-01-02"))

	var wires []attendanceWire
	if err := c.get(ctx, "/v1/attendance", q, &wires); err != nil {
		return nil, err
	}

	records := make([]domain.AttendanceRecord, 0, len(wires))
	for _, w := range wires {
		records = append(records, domain.AttendanceRecord{
			ID:         w.ID,
			EmployeeID: w.EmployeeID,
			Employee:   w.Employee,
			Date:       w.Date,
			ClockIn:    w.ClockIn,
			ClockOut:   w.ClockOut,
			BreakMins:  w.BreakMins,
			Status:     w.Status,
		})
	}
	return records, nil
}
