package api

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"staffdeck/internal/domain"
)

type headcountWire struct {
	Headcount    int `json:"headcount"`
	PresentToday int `json:"present_today"`
	OnLeaveToday int `json:"on_leave_today"`
}

type paydayWire struct {
	NextPayday time.Time `json:"next_payday"`
}

// GetDashboardSummary fans out to the endpoints behind the landing page
// and assembles one summary. The calls are independent, so they run
// concurrently; the first error cancels the rest.
func (c *Client) GetDashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	var (
		heads   headcountWire
		payday  paydayWire
		pending []domain.LeaveRequest
		runs    []domain.PayrollRun
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.get(gctx, "/v1/dashboard/headcount", nil, &heads)
	})
	g.Go(func() error {
		return c.get(gctx, "/v1/dashboard/payday", nil, &payday)
	})
	g.Go(func() error {
		var err error
		pending, err = c.ListLeaveRequests(gctx, "pending")
		return err
	})
	g.Go(func() error {
		var err error
		runs, err = c.ListPayrollRuns(gctx, 1)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &domain.DashboardSummary{
		Headcount:      heads.Headcount,
		PresentToday:   heads.PresentToday,
		OnLeaveToday:   heads.OnLeaveToday,
		PendingLeave:   len(pending),
		UpcomingPayday: payday.NextPayday,
	}
	if len(runs) > 0 {
		summary.LastPayrollRun = &runs[0]
	}
	return summary, nil
}
