package api

import (
	"context"

	"staffdeck/internal/domain"
	"staffdeck/internal/search"
)

// Source adapters reduce domain records to search candidates. Each search
// box is handed one of these; the search machinery itself never learns the
// underlying record shape.

// CompanySource searches companies; scope is unused
func (c *Client) CompanySource() search.Source {
	return func(ctx context.Context, query, _ string, limit int) ([]search.Candidate, error) {
		companies, err := c.SearchCompanies(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		candidates := make([]search.Candidate, 0, len(companies))
		for _, co := range companies {
			candidates = append(candidates, search.Candidate{
				ID:       co.ID,
				Label:    co.Name,
				Subtitle: co.Code,
				ImageURL: co.LogoURL,
			})
		}
		return candidates, nil
	}
}

// EmployeeSource searches employees scoped to a company id
func (c *Client) EmployeeSource() search.Source {
	return func(ctx context.Context, query, scope string, limit int) ([]search.Candidate, error) {
		employees, err := c.SearchEmployees(ctx, query, scope, limit)
		if err != nil {
			return nil, err
		}
		return employeeCandidates(employees), nil
	}
}

// ManagerSource searches manager-eligible employees scoped to a company id
func (c *Client) ManagerSource() search.Source {
	return func(ctx context.Context, query, scope string, limit int) ([]search.Candidate, error) {
		managers, err := c.SearchManagers(ctx, query, scope, limit)
		if err != nil {
			return nil, err
		}
		return employeeCandidates(managers), nil
	}
}

// RoleSource searches roles; scope is unused
func (c *Client) RoleSource() search.Source {
	return func(ctx context.Context, query, _ string, limit int) ([]search.Candidate, error) {
		roles, err := c.SearchRoles(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		candidates := make([]search.Candidate, 0, len(roles))
		for _, r := range roles {
			candidates = append(candidates, search.Candidate{
				ID:       r.ID,
				Label:    r.Name,
				Subtitle: r.Description,
			})
		}
		return candidates, nil
	}
}

// TemplateSource searches payslip templates; scope is unused
func (c *Client) TemplateSource() search.Source {
	return func(ctx context.Context, query, _ string, limit int) ([]search.Candidate, error) {
		templates, err := c.SearchPayslipTemplates(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		candidates := make([]search.Candidate, 0, len(templates))
		for _, t := range templates {
			subtitle := t.Locale
			if t.IsDefault {
				subtitle += " (default)"
			}
			candidates = append(candidates, search.Candidate{
				ID:       t.ID,
				Label:    t.Name,
				Subtitle: subtitle,
			})
		}
		return candidates, nil
	}
}

func employeeCandidates(employees []domain.Employee) []search.Candidate {
	candidates := make([]search.Candidate, 0, len(employees))
	for _, e := range employees {
		candidates = append(candidates, search.Candidate{
			ID:       e.ID,
			Label:    e.FullName(),
			Subtitle: e.Designation,
			ImageURL: e.AvatarURL,
		})
	}
	return candidates
}
