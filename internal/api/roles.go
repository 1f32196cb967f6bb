package api

import (
	"context"
	"net/url"
	"strconv"

	"staffdeck/internal/domain"
)

type roleWire struct {
	ID          string   `json:"id"`
	CompanyID   string   `json:"company_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	MemberCount int      `json:"member_count"`
}

func (w roleWire) toDomain() domain.Role {
	role := domain.Role{
		ID:          w.ID,
		CompanyID:   w.CompanyID,
		Name:        w.Name,
		Description: w.Description,
		MemberCount: w.MemberCount,
	}
	for _, key := range w.Permissions {
		if cap, ok := domain.ParseCapability(key); ok {
			role.Capabilities = append(role.Capabilities, cap)
		}
	}
	return role
}

// SearchRoles looks up roles by name for autocomplete (used when cloning)
func (c *Client) SearchRoles(ctx context.Context, query string, limit int) ([]domain.Role, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	var wires []roleWire
	if err := c.getCached(ctx, "/v1/roles/search", q, &wires); err != nil {
		return nil, err
	}

	roles := make([]domain.Role, 0, len(wires))
	for _, w := range wires {
		roles = append(roles, w.toDomain())
	}
	return roles, nil
}

// ListRoles returns every role of the company
func (c *Client) ListRoles(ctx context.Context) ([]domain.Role, error) {
	var wires []roleWire
	if err := c.get(ctx, "/v1/roles", nil, &wires); err != nil {
		return nil, err
	}

	roles := make([]domain.Role, 0, len(wires))
	for _, w := range wires {
		roles = append(roles, w.toDomain())
	}
	return roles, nil
}

// CreateRoleRequest carries the fields of the new-role form
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,required"`
}

// CreateRole submits a new role
func (c *Client) CreateRole(ctx context.Context, req CreateRoleRequest) (*domain.Role, error) {
	var wire roleWire
	if err := c.post(ctx, "/v1/roles", req, &wire); err != nil {
		return nil, err
	}
	role := wire.toDomain()
	return &role, nil
}
