package api

import (
	"context"
	"time"

	"staffdeck/internal/domain"
)

type subscriptionWire struct {
	PlanID      string    `json:"plan_id"`
	PlanName    string    `json:"plan_name"`
	SeatsUsed   int       `json:"seats_used"`
	SeatsTotal  int       `json:"seats_total"`
	RenewsAt    time.Time `json:"renews_at"`
	IsTrial     bool      `json:"is_trial"`
	IsSuspended bool      `json:"is_suspended"`
}

// GetSubscription fetches the company's current plan and seat usage
func (c *Client) GetSubscription(ctx context.Context) (*domain.Subscription, error) {
	var wire subscriptionWire
	if err := c.get(ctx, "/v1/subscription", nil, &wire); err != nil {
		return nil, err
	}
	return &domain.Subscription{
		PlanID:      wire.PlanID,
		PlanName:    wire.PlanName,
		SeatsUsed:   wire.SeatsUsed,
		SeatsTotal:  wire.SeatsTotal,
		RenewsAt:    wire.RenewsAt,
		IsTrial:     wire.IsTrial,
		IsSuspended: wire.IsSuspended,
	}, nil
}
