package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"staffdeck/internal/domain"
)

type employeeWire struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	ManagerID      string    `json:"manager_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Designation    string    `json:"designation"`
	Department     string    `json:"department"`
	AvatarURL      string    `json:"avatar_url"`
	JoiningDate    time.Time `json:"joining_date"`
	EmploymentType string    `json:"employment_type"`
	Status         string    `json:"status"`
}

func (w employeeWire) toDomain() domain.Employee {
	return domain.Employee{
		ID:             w.ID,
		CompanyID:      w.CompanyID,
		ManagerID:      w.ManagerID,
		FirstName:      w.FirstName,
		LastName:       w.LastName,
		Email:          w.Email,
		Designation:    w.Designation,
		Department:     w.Department,
		AvatarURL:      w.AvatarURL,
		JoiningDate:    w.JoiningDate,
		EmploymentType: w.EmploymentType,
		Status:         w.Status,
	}
}

func employeesToDomain(wires []employeeWire) []domain.Employee {
	out := make([]domain.Employee, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toDomain())
	}
	return out
}

// SearchEmployees looks up employees by free text, scoped to a company
func (c *Client) SearchEmployees(ctx context.Context, query, companyID string, limit int) ([]domain.Employee, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("status", "active")
	if companyID != "" {
		q.Set("company_id", companyID)
	}

	var wires []employeeWire
	if err := c.getCached(ctx, "/v1/employees/search", q, &wires); err != nil {
		return nil, err
	}
	return employeesToDomain(wires), nil
}

// SearchManagers looks up employees eligible to be a manager, scoped to a
// company. Same contract as SearchEmployees with a server-side role filter.
func (c *Client) SearchManagers(ctx context.Context, query, companyID string, limit int) ([]domain.Employee, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("status", "active")
	q.Set("is_manager", "true")
	if companyID != "" {
		q.Set("company_id", companyID)
	}

	var wires []employeeWire
	if err := c.getCached(ctx, "/v1/employees/search", q, &wires); err != nil {
		return nil, err
	}
	return employeesToDomain(wires), nil
}

// ListEmployees returns one page of the employee directory together with
// the server's pagination block, nil when the server omits it.
func (c *Client) ListEmployees(ctx context.Context, companyID string, page, pageSize int) ([]domain.Employee, *PageInfo, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	if companyID != "" {
		q.Set("company_id", companyID)
	}

	var wires []employeeWire
	pageInfo, err := c.getPaged(ctx, "/v1/employees", q, &wires)
	if err != nil {
		return nil, nil, err
	}
	return employeesToDomain(wires), pageInfo, nil
}

// CreateEmployeeRequest carries the fields of the new-employee form
type CreateEmployeeRequest struct {
	CompanyID      string `json:"company_id" validate:"required"`
	ManagerID      string `json:"manager_id,omitempty"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Designation    string `json:"designation"`
	Department     string `json:"department"`
	JoiningDate    string `json:"joining_date" validate:"required,datetime=2006-01-02"`
	EmploymentType string `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract intern"`
}

// CreateEmployee submits a new employee record
func (c *Client) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*domain.Employee, error) {
	var wire employeeWire
	if err := c.post(ctx, "/v1/employees", req, &wire); err != nil {
		return nil, err
	}
	emp := wire.toDomain()
	return &emp, nil
}
