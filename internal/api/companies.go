package api

import (
	"context"
	"net/url"
	"strconv"

	"staffdeck/internal/domain"
)

type companyWire struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	LogoURL  string `json:"logo_url"`
	IsActive bool   `json:"is_active"`
}

func (w companyWire) toDomain() domain.Company {
	return domain.Company{
		ID:       w.ID,
		Name:     w.Name,
		Code:     w.Code,
		LogoURL:  w.LogoURL,
		IsActive: w.IsActive,
	}
}

// SearchCompanies looks up companies by free text for autocomplete
func (c *Client) SearchCompanies(ctx context.Context, query string, limit int) ([]domain.Company, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("active", "true")

	var wires []companyWire
	if err := c.getCached(ctx, "/v1/companies/search", q, &wires); err != nil {
		return nil, err
	}

	companies := make([]domain.Company, 0, len(wires))
	for _, w := range wires {
		companies = append(companies, w.toDomain())
	}
	return companies, nil
}

// GetCompany fetches one company by id
func (c *Client) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	var wire companyWire
	if err := c.get(ctx, "/v1/companies/"+url.PathEscape(id), nil, &wire); err != nil {
		return nil, err
	}
	company := wire.toDomain()
	return &company, nil
}
