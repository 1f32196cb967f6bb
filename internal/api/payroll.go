package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"staffdeck/internal/domain"
)

type payrollRunWire struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Period      string    `json:"period"`
	Status      string    `json:"status"`
	EmployeeCnt int       `json:"employee_count"`
	GrossTotal  int64     `json:"gross_total"`
	NetTotal    int64     `json:"net_total"`
	RunAt       time.Time `json:"run_at"`
}

func (w payrollRunWire) toDomain() domain.PayrollRun {
	return domain.PayrollRun{
		ID:          w.ID,
		CompanyID:   w.CompanyID,
		Period:      w.Period,
		Status:      w.Status,
		EmployeeCnt: w.EmployeeCnt,
		GrossTotal:  w.GrossTotal,
		NetTotal:    w.NetTotal,
		RunAt:       w.RunAt,
	}
}

// ListPayrollRuns returns recent payroll runs, newest first
func (c *Client) ListPayrollRuns(ctx context.Context, limit int) ([]domain.PayrollRun, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var wires []payrollRunWire
	if err := c.get(ctx, "/v1/payroll/runs", q, &wires); err != nil {
		return nil, err
	}

	runs := make([]domain.PayrollRun, 0, len(wires))
	for _, w := range wires {
		runs = append(runs, w.toDomain())
	}
	return runs, nil
}

// GetPayrollRunDetail fetches the server-rendered breakdown of one run,
// shown in the pager.
func (c *Client) GetPayrollRunDetail(ctx context.Context, id string) (string, error) {
	var detail struct {
		Text string `json:"text"`
	}
	if err := c.get(ctx, "/v1/payroll/runs/"+url.PathEscape(id)+"/detail", nil, &detail); err != nil {
		return "", err
	}
	return detail.Text, nil
}

// CreateArrearRequest carries the fields of the arrear form
type CreateArrearRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Amount     int64  `json:"amount" validate:"required,gt=0"` // minor currency units
	Reason     string `json:"reason" validate:"required"`
	Period     string `json:"period" validate:"required,datetime=2006-01"` // YYYY-MM
}

type arrearWire struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	Amount     int64     `json:"amount"`
	Reason     string    `json:"reason"`
	Period     string    `json:"period"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateArrear submits a back-pay adjustment
func (c *Client) CreateArrear(ctx context.Context, req CreateArrearRequest) (*domain.Arrear, error) {
	var wire arrearWire
	if err := c.post(ctx, "/v1/payroll/arrears", req, &wire); err != nil {
		return nil, err
	}
	return &domain.Arrear{
		ID:         wire.ID,
		EmployeeID: wire.EmployeeID,
		CompanyID:  wire.CompanyID,
		Amount:     wire.Amount,
		Reason:     wire.Reason,
		Period:     wire.Period,
		CreatedAt:  wire.CreatedAt,
	}, nil
}
