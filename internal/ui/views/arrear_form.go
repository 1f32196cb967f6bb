package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"staffdeck/internal/api"
	"staffdeck/internal/domain"
	"staffdeck/internal/search"
	"staffdeck/internal/ui/components/searchbox"
	"staffdeck/internal/ui/forms"
)

type arrearSavedMsg struct {
	arrear *domain.Arrear
	err    error
}

const (
	arrFieldEmployee = iota
	arrFieldAmount
	arrFieldReason
	arrFieldPeriod
	arrFieldCount
)

// ArrearFormPage records a back-pay adjustment for one employee. The
// employee lookup is scoped to the console user's company.
type ArrearFormPage struct {
	ctx Context

	employee searchbox.Model
	amount   textinput.Model
	reason   textinput.Model
	period   textinput.Model

	focus      int
	errs       forms.Errors
	submitting bool
}

// NewArrearFormPage creates the form
func NewArrearFormPage(ctx Context) *ArrearFormPage {
	employee := searchbox.New("arrear-employee", "Search employees…",
		ctx.Client.EmployeeSource(),
		search.Options{Field: "arrear-employee", MinQueryLen: ctx.Config.Search.MinQueryLen, Limit: ctx.Config.Search.Limit, RequireScope: true, OnFailure: ctx.FailureHook()},
		ctx.Config.Search.Debounce(), ctx.Emit)
	employee.SetScope(ctx.Session.User.CompanyID)

	amount := textinput.New()
	amount.Placeholder = "e.g. 125.00"
	amount.Prompt = ""
	amount.CharLimit = 12

	reason := textinput.New()
	reason.Prompt = ""
	reason.CharLimit = 200

	period := textinput.New()
	period.Placeholder = "YYYY-MM"
	period.Prompt = ""
	period.CharLimit = 7

	return &ArrearFormPage{
		ctx:      ctx,
		employee: employee,
		amount:   amount,
		reason:   reason,
		period:   period,
		errs:     forms.Errors{},
	}
}

func (p *ArrearFormPage) Title() string { return "New arrear" }

func (p *ArrearFormPage) Init() tea.Cmd {
	return p.setFocus(arrFieldEmployee)
}

// Teardown disables the employee lookup
func (p *ArrearFormPage) Teardown() {
	p.employee.Teardown()
}

func (p *ArrearFormPage) Update(msg tea.Msg) (*ArrearFormPage, tea.Cmd) {
	switch msg := msg.(type) {
	case arrearSavedMsg:
		p.submitting = false
		if msg.err != nil {
			return p, p.ctx.submitFailed("arrear", msg.err)
		}
		return p, tea.Batch(
			p.ctx.submitted("arrear", msg.arrear.ID, fmt.Sprintf("Arrear for period %s recorded", msg.arrear.Period)),
			func() tea.Msg { return BackMsg{} },
		)

	case searchbox.DebounceElapsedMsg, searchbox.ResultMsg, searchbox.SelectionChangedMsg:
		var cmd tea.Cmd
		p.employee, cmd = p.employee.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *ArrearFormPage) handleKey(msg tea.KeyMsg) (*ArrearFormPage, tea.Cmd) {
	if p.submitting {
		return p, nil
	}

	switch msg.String() {
	case "tab", "enter":
		if p.focus == arrFieldEmployee && msg.String() == "enter" {
			break
		}
		return p, p.setFocus((p.focus + 1) % arrFieldCount)
	case "shift+tab":
		return p, p.setFocus((p.focus + arrFieldCount - 1) % arrFieldCount)
	case "ctrl+s":
		return p.submit()
	case "esc":
		if p.focus == arrFieldEmployee {
			if _, _, ok := p.employee.Selection(); ok {
				break
			}
		}
		return p, func() tea.Msg { return BackMsg{} }
	}

	var cmd tea.Cmd
	switch p.focus {
	case arrFieldEmployee:
		p.employee, cmd = p.employee.Update(msg)
	case arrFieldAmount:
		p.amount, cmd = p.amount.Update(msg)
	case arrFieldReason:
		p.reason, cmd = p.reason.Update(msg)
	case arrFieldPeriod:
		p.period, cmd = p.period.Update(msg)
	}
	return p, cmd
}

func (p *ArrearFormPage) setFocus(target int) tea.Cmd {
	p.employee.Blur()
	p.amount.Blur()
	p.reason.Blur()
	p.period.Blur()

	p.focus = target
	switch target {
	case arrFieldEmployee:
		return p.employee.Focus()
	case arrFieldAmount:
		return p.amount.Focus()
	case arrFieldReason:
		return p.reason.Focus()
	default:
		return p.period.Focus()
	}
}

func (p *ArrearFormPage) submit() (*ArrearFormPage, tea.Cmd) {
	req := api.CreateArrearRequest{
		EmployeeID: p.employee.Value(),
		Amount:     parseAmount(p.amount.Value()),
		Reason:     strings.TrimSpace(p.reason.Value()),
		Period:     strings.TrimSpace(p.period.Value()),
	}

	p.errs = forms.Validate(req)
	if p.errs.HasErrors() {
		return p, toastCmd("Please fix the highlighted fields", true)
	}

	p.submitting = true
	client := p.ctx.Client
	return p, func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		arrear, err := client.CreateArrear(ctx, req)
		return arrearSavedMsg{arrear: arrear, err: err}
	}
}

// parseAmount converts a decimal amount to minor currency units. Anything
// unparsable becomes zero, which validation then rejects.
func parseAmount(text string) int64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return int64(f*100 + 0.5)
}

func (p *ArrearFormPage) View() string {
	s := p.ctx.Styles
	var b strings.Builder
	b.WriteString(s.Title.Render("New arrear"))
	b.WriteString("\n")

	writeField := func(label, wireName, body string, focused bool) {
		marker := "  "
		if focused {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s\n", marker, s.Label.Render(label)))
		for _, line := range strings.Split(body, "\n") {
			b.WriteString("    " + line + "\n")
		}
		if msg, ok := p.errs[wireName]; ok {
			b.WriteString("    " + s.FieldError.Render(fmt.Sprintf("%s %s", label, msg)) + "\n")
		}
	}

	writeField("Employee", "employee_id", p.employee.View(), p.focus == arrFieldEmployee)
	writeField("Amount", "amount", p.amount.View(), p.focus == arrFieldAmount)
	writeField("Reason", "reason", p.reason.View(), p.focus == arrFieldReason)
	writeField("Period", "period", p.period.View(), p.focus == arrFieldPeriod)

	b.WriteString("\n")
	if p.submitting {
		b.WriteString(s.Dim.Render("Saving…"))
	} else {
		b.WriteString(s.Help.Render("tab next field · ctrl+s save · esc cancel"))
	}
	return b.String()
}
