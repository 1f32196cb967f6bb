package api

import (
	"context"
	"net/url"
	"time"

	"staffdeck/internal/domain"
)

type leaveWire struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Employee   string    `json:"employee_name"`
	Type       string    `json:"type"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Days       float64   `json:"days"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
}

func (w leaveWire) toDomain() domain.LeaveRequest {
	return domain.LeaveRequest{
		ID:         w.ID,
		EmployeeID: w.EmployeeID,
		Employee:   w.Employee,
		Type:       w.Type,
		From:       w.From,
		To:         w.To,
		Days:       w.Days,
		Reason:     w.Reason,
		Status:     w.Status,
	}
}

// ListLeaveRequests returns leave requests, optionally filtered by status
func (c *Client) ListLeaveRequests(ctx context.Context, status string) ([]domain.LeaveRequest, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}

	var wires []leaveWire
	if err := c.get(ctx, "/v1/leave", q, &wires); err != nil {
		return nil, err
	}

	requests := make([]domain.LeaveRequest, 0, len(wires))
	for _, w := range wires {
		requests = append(requests, w.toDomain())
	}
	return requests, nil
}

type resolveLeaveRequest struct {
	Status string `json:"status"` // approved or rejected
	Note   string `json:"note,omitempty"`
}

// ResolveLeaveRequest approves or rejects a pending leave request
func (c *Client) ResolveLeaveRequest(ctx context.Context, id string, approve bool, note string) (*domain.LeaveRequest, error) {
	status := "rejected"
	if approve {
		status = "approved"
	}

	var wire leaveWire
	if err := c.patch(ctx, "/v1/leave/"+url.PathEscape(id), resolveLeaveRequest{Status: status, Note: note}, &wire); err != nil {
		return nil, err
	}
	req := wire.toDomain()
	return &req, nil
}
