package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"staffdeck/internal/domain"
)

type dashboardLoadedMsg struct {
	summary *domain.DashboardSummary
	err     error
}

// DashboardPage is the landing screen: headcount, attendance and payroll at
// a glance.
type DashboardPage struct {
	ctx     Context
	summary *domain.DashboardSummary
	loading bool
	failed  bool
}

// NewDashboardPage creates the landing page
func NewDashboardPage(ctx Context) *DashboardPage {
	return &DashboardPage{ctx: ctx}
}

func (p *DashboardPage) Title() string { return "Dashboard" }

func (p *DashboardPage) Init() tea.Cmd {
	p.loading = true
	client := p.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		summary, err := client.GetDashboardSummary(ctx)
		return dashboardLoadedMsg{summary: summary, err: err}
	}
}

func (p *DashboardPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		p.loading = false
		if msg.err != nil {
			p.failed = true
			return p, nil
		}
		p.failed = false
		p.summary = msg.summary
		return p, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return p, p.Init()
		}
	}
	return p, nil
}

func (p *DashboardPage) View() string {
	s := p.ctx.Styles
	var b strings.Builder

	b.WriteString(s.Title.Render(fmt.Sprintf("Welcome back, %s", p.ctx.Session.User.Name)))
	b.WriteString("\n")

	switch {
	case p.loading:
		b.WriteString(s.Dim.Render("Loading…"))
	case p.failed:
		b.WriteString(s.BadgeError.Render("Dashboard unavailable, press r to retry"))
	case p.summary != nil:
		b.WriteString(p.renderSummary())
	}

	b.WriteString("\n\n")
	b.WriteString(s.Help.Render("r refresh"))
	return b.String()
}

func (p *DashboardPage) renderSummary() string {
	s := p.ctx.Styles
	sum := p.summary
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s %s\n", s.Label.Render(fmt.Sprintf("%-16s", label)), s.Value.Render(value)))
	}

	b.WriteString(s.Section.Render("People"))
	b.WriteString("\n")
	row("Headcount", fmt.Sprintf("%d", sum.Headcount))
	row("Present today", fmt.Sprintf("%d", sum.PresentToday))
	row("On leave today", fmt.Sprintf("%d", sum.OnLeaveToday))
	row("Pending leave", fmt.Sprintf("%d", sum.PendingLeave))

	b.WriteString(s.Section.Render("Payroll"))
	b.WriteString("\n")
	if run := sum.LastPayrollRun; run != nil {
		row("Last run", fmt.Sprintf("%s (%s)", run.Period, run.Status))
		row("Net total", formatMoney(run.NetTotal))
	} else {
		row("Last run", "none yet")
	}
	row("Next payday", formatDate(sum.UpcomingPayday))

	return b.String()
}
