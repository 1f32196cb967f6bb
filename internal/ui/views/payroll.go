package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"staffdeck/internal/domain"
)

type payrollRunsLoadedMsg struct {
	runs []domain.PayrollRun
	err  error
}

type payrollDetailMsg struct {
	period  string
	content string
	err     error
}

// PayrollPage lists recent payroll runs and hosts the arrear form
type PayrollPage struct {
	ctx     Context
	runs    []domain.PayrollRun
	cursor  int
	loading bool

	form *ArrearFormPage
}

// NewPayrollPage creates the payroll page
func NewPayrollPage(ctx Context) *PayrollPage {
	return &PayrollPage{ctx: ctx}
}

func (p *PayrollPage) Title() string { return "Payroll" }

// CapturingInput reports whether keystrokes belong to an open form
func (p *PayrollPage) CapturingInput() bool { return p.form != nil }

func (p *PayrollPage) Init() tea.Cmd {
	p.loading = true
	client := p.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		runs, err := client.ListPayrollRuns(ctx, 24)
		return payrollRunsLoadedMsg{runs: runs, err: err}
	}
}

func (p *PayrollPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if p.form != nil {
		if _, ok := msg.(BackMsg); ok {
			p.form.Teardown()
			p.form = nil
			return p, nil
		}
		form, cmd := p.form.Update(msg)
		p.form = form
		return p, cmd
	}

	switch msg := msg.(type) {
	case payrollRunsLoadedMsg:
		p.loading = false
		if msg.err != nil {
			return p, toastCmd("Could not load payroll runs", true)
		}
		p.runs = msg.runs
		p.cursor = 0
		return p, nil

	case payrollDetailMsg:
		if msg.err != nil {
			return p, toastCmd("Could not load run detail", true)
		}
		return p, func() tea.Msg {
			return ShowPagerMsg{Title: "Payroll " + msg.period, Content: msg.content}
		}

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PayrollPage) handleKey(msg tea.KeyMsg) (Page, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.runs)-1 {
			p.cursor++
		}
	case "enter", "d":
		if len(p.runs) == 0 {
			return p, nil
		}
		run := p.runs[p.cursor]
		client := p.ctx.Client
		return p, func() tea.Msg {
			ctx, cancel := reqContext()
			defer cancel()
			content, err := client.GetPayrollRunDetail(ctx, run.ID)
			return payrollDetailMsg{period: run.Period, content: content, err: err}
		}
	case "a":
		if !p.ctx.Session.Can(domain.CapPayrollManage) {
			return p, toastCmd("You do not have permission to add arrears", true)
		}
		form := NewArrearFormPage(p.ctx)
		p.form = form
		return p, form.Init()
	case "r":
		return p, p.Init()
	}
	return p, nil
}

func (p *PayrollPage) View() string {
	if p.form != nil {
		return p.form.View()
	}

	s := p.ctx.Styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Payroll runs"))
	b.WriteString("\n")

	if p.loading {
		b.WriteString(s.Dim.Render("Loading…"))
		return b.String()
	}
	if len(p.runs) == 0 {
		b.WriteString(s.Dim.Render("No payroll runs yet"))
		return b.String()
	}

	b.WriteString(s.TableHeader.Render(fmt.Sprintf("  %-9s %-12s %10s %14s %12s", "Period", "Status", "People", "Net total", "Run at")))
	b.WriteString("\n")

	for i, run := range p.runs {
		// Pad before styling so the color codes do not skew the columns
		row := fmt.Sprintf("  %-9s %s %10d %14s %12s",
			run.Period, p.statusBadge(fmt.Sprintf("%-12s", run.Status)), run.EmployeeCnt, formatMoney(run.NetTotal), formatDate(run.RunAt))
		if i == p.cursor {
			row = s.RowSelected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Help.Render("enter run detail · a add arrear · r refresh"))
	return b.String()
}

func (p *PayrollPage) statusBadge(status string) string {
	s := p.ctx.Styles
	switch strings.TrimSpace(status) {
	case "completed":
		return s.Badge.Render(status)
	case "failed":
		return s.BadgeError.Render(status)
	case "processing":
		return s.BadgeWarn.Render(status)
	default:
		return status
	}
}
