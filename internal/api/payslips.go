package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"staffdeck/internal/domain"
)

type templateWire struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Locale    string `json:"locale"`
	IsDefault bool   `json:"is_default"`
}

// SearchPayslipTemplates looks up payslip templates by name for autocomplete
func (c *Client) SearchPayslipTemplates(ctx context.Context, query string, limit int) ([]domain.PayslipTemplate, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	var wires []templateWire
	if err := c.getCached(ctx, "/v1/payslips/templates/search", q, &wires); err != nil {
		return nil, err
	}

	templates := make([]domain.PayslipTemplate, 0, len(wires))
	for _, w := range wires {
		templates = append(templates, domain.PayslipTemplate{
			ID:        w.ID,
			Name:      w.Name,
			Locale:    w.Locale,
			IsDefault: w.IsDefault,
		})
	}
	return templates, nil
}

type scheduleWire struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	TemplateID string    `json:"template_id"`
	Name       string    `json:"name"`
	Cadence    string    `json:"cadence"`
	DayOfMonth int       `json:"day_of_month"`
	NextRunAt  time.Time `json:"next_run_at"`
}

func (w scheduleWire) toDomain() domain.PayslipSchedule {
	return domain.PayslipSchedule{
		ID:         w.ID,
		CompanyID:  w.CompanyID,
		TemplateID: w.TemplateID,
		Name:       w.Name,
		Cadence:    w.Cadence,
		DayOfMonth: w.DayOfMonth,
		NextRunAt:  w.NextRunAt,
	}
}

// ListPayslipSchedules returns the company's schedules
func (c *Client) ListPayslipSchedules(ctx context.Context) ([]domain.PayslipSchedule, error) {
	var wires []scheduleWire
	if err := c.get(ctx, "/v1/payslips/schedules", nil, &wires); err != nil {
		return nil, err
	}

	schedules := make([]domain.PayslipSchedule, 0, len(wires))
	for _, w := range wires {
		schedules = append(schedules, w.toDomain())
	}
	return schedules, nil
}

// CreatePayslipScheduleRequest carries the fields of the schedule form
type CreatePayslipScheduleRequest struct {
	TemplateID string `json:"template_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Cadence    string `json:"cadence" validate:"required,oneof=weekly biweekly monthly"`
	DayOfMonth int    `json:"day_of_month" validate:"required_if=Cadence monthly,omitempty,min=1,max=28"`
}

// CreatePayslipSchedule submits a new schedule
func (c *Client) CreatePayslipSchedule(ctx context.Context, req CreatePayslipScheduleRequest) (*domain.PayslipSchedule, error) {
	var wire scheduleWire
	if err := c.post(ctx, "/v1/payslips/schedules", req, &wire); err != nil {
		return nil, err
	}
	schedule := wire.toDomain()
	return &schedule, nil
}
