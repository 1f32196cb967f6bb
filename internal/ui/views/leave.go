package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"staffdeck/internal/domain"
)

type leaveLoadedMsg struct {
	requests []domain.LeaveRequest
	err      error
}

type leaveResolvedMsg struct {
	request *domain.LeaveRequest
	err     error
}

// LeavePage lists pending leave requests for approval
type LeavePage struct {
	ctx       Context
	requests  []domain.LeaveRequest
	cursor    int
	loading   bool
	resolving bool
}

// NewLeavePage creates the leave approval page
func NewLeavePage(ctx Context) *LeavePage {
	return &LeavePage{ctx: ctx}
}

func (p *LeavePage) Title() string { return "Leave" }

func (p *LeavePage) Init() tea.Cmd {
	p.loading = true
	client := p.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		requests, err := client.ListLeaveRequests(ctx, "pending")
		return leaveLoadedMsg{requests: requests, err: err}
	}
}

func (p *LeavePage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case leaveLoadedMsg:
		p.loading = false
		if msg.err != nil {
			return p, toastCmd("Could not load leave requests", true)
		}
		p.requests = msg.requests
		if p.cursor >= len(p.requests) {
			p.cursor = 0
		}
		return p, nil

	case leaveResolvedMsg:
		p.resolving = false
		if msg.err != nil {
			return p, p.ctx.submitFailed("leave request", msg.err)
		}
		return p, tea.Batch(
			p.ctx.submitted("leave", msg.request.ID, fmt.Sprintf("Leave for %s %s", msg.request.Employee, msg.request.Status)),
			p.Init(),
		)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *LeavePage) handleKey(msg tea.KeyMsg) (Page, tea.Cmd) {
	if p.resolving {
		return p, nil
	}

	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.requests)-1 {
			p.cursor++
		}
	case "a":
		return p.resolve(true)
	case "x":
		return p.resolve(false)
	case "r":
		return p, p.Init()
	}
	return p, nil
}

func (p *LeavePage) resolve(approve bool) (Page, tea.Cmd) {
	if len(p.requests) == 0 {
		return p, nil
	}
	if !p.ctx.Session.Can(domain.CapLeaveApprove) {
		return p, toastCmd("You do not have permission to resolve leave requests", true)
	}

	p.resolving = true
	req := p.requests[p.cursor]
	client := p.ctx.Client
	return p, func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		resolved, err := client.ResolveLeaveRequest(ctx, req.ID, approve, "")
		return leaveResolvedMsg{request: resolved, err: err}
	}
}

func (p *LeavePage) View() string {
	s := p.ctx.Styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Pending leave requests"))
	b.WriteString("\n")

	if p.loading {
		b.WriteString(s.Dim.Render("Loading…"))
		return b.String()
	}
	if len(p.requests) == 0 {
		b.WriteString(s.Dim.Render("Nothing waiting on you"))
		return b.String()
	}

	b.WriteString(s.TableHeader.Render(fmt.Sprintf("  %-26s %-8s %-12s %-12s %6s  %s", "Employee", "Type", "From", "To", "Days", "Reason")))
	b.WriteString("\n")

	for i, req := range p.requests {
		row := fmt.Sprintf("  %-26s %-8s %-12s %-12s %6.1f  %s",
			req.Employee, req.Type, formatDate(req.From), formatDate(req.To), req.Days, s.Dim.Render(req.Reason))
		if i == p.cursor {
			row = s.RowSelected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if p.resolving {
		b.WriteString(s.Dim.Render("Updating…"))
	} else {
		b.WriteString(s.Help.Render("a approve · x reject · r refresh"))
	}
	return b.String()
}
