package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"staffdeck/internal/domain"
)

type subscriptionLoadedMsg struct {
	sub *domain.Subscription
	err error
}

// SubscriptionPage shows the company's plan and seat usage
type SubscriptionPage struct {
	ctx     Context
	sub     *domain.Subscription
	loading bool
	failed  bool
}

// NewSubscriptionPage creates the subscription page
func NewSubscriptionPage(ctx Context) *SubscriptionPage {
	return &SubscriptionPage{ctx: ctx}
}

func (p *SubscriptionPage) Title() string { return "Subscription" }

func (p *SubscriptionPage) Init() tea.Cmd {
	p.loading = true
	client := p.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		sub, err := client.GetSubscription(ctx)
		return subscriptionLoadedMsg{sub: sub, err: err}
	}
}

func (p *SubscriptionPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case subscriptionLoadedMsg:
		p.loading = false
		p.failed = msg.err != nil
		if msg.err == nil {
			p.sub = msg.sub
		}
		return p, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return p, p.Init()
		}
	}
	return p, nil
}

func (p *SubscriptionPage) View() string {
	s := p.ctx.Styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Subscription"))
	b.WriteString("\n")

	switch {
	case p.loading:
		b.WriteString(s.Dim.Render("Loading…"))
	case p.failed:
		b.WriteString(s.BadgeError.Render("Subscription unavailable, press r to retry"))
	case p.sub != nil:
		b.WriteString(p.renderPlan())
	}

	b.WriteString("\n\n")
	b.WriteString(s.Help.Render("r refresh"))
	return b.String()
}

func (p *SubscriptionPage) renderPlan() string {
	s := p.ctx.Styles
	sub := p.sub
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s %s\n", s.Label.Render(fmt.Sprintf("%-12s", label)), s.Value.Render(value)))
	}

	plan := sub.PlanName
	if sub.IsTrial {
		plan += " " + s.BadgeWarn.Render("(trial)")
	}
	if sub.IsSuspended {
		plan += " " + s.BadgeError.Render("(suspended)")
	}

	row("Plan", plan)
	row("Seats", fmt.Sprintf("%d of %d used", sub.SeatsUsed, sub.SeatsTotal))
	row("Renews", formatDate(sub.RenewsAt))

	if sub.SeatsTotal > 0 && sub.SeatsUsed >= sub.SeatsTotal {
		b.WriteString("\n  " + s.BadgeWarn.Render("All seats are in use; new employees will need a plan upgrade"))
	}
	return b.String()
}
