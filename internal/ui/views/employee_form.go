package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"staffdeck/internal/api"
	"staffdeck/internal/domain"
	"staffdeck/internal/search"
	"staffdeck/internal/ui/components/searchbox"
	"staffdeck/internal/ui/forms"
)

type employeeSavedMsg struct {
	employee *domain.Employee
	err      error
}

// field indexes within the form, in tab order
const (
	empFieldCompany = iota
	empFieldManager
	empFieldFirstName
	empFieldLastName
	empFieldEmail
	empFieldDesignation
	empFieldDepartment
	empFieldJoiningDate
	empFieldType
	empFieldCount
)

var empTextFields = []struct {
	label       string
	wireName    string
	placeholder string
}{
	{"First name", "first_name", ""},
	{"Last name", "last_name", ""},
	{"Email", "email", "name@company.com"},
	{"Designation", "designation", ""},
	{"Department", "department", ""},
	{"Joining date", "joining_date", "YYYY-MM-DD"},
	{"Employment type", "employment_type", "full_time / part_time / contract / intern"},
}

// EmployeeFormPage creates a new employee. The company box searches all
// companies the console user administers; the manager box only searches
// within the chosen company and stays inert until one is chosen.
type EmployeeFormPage struct {
	ctx Context

	company searchbox.Model
	manager searchbox.Model
	inputs  []textinput.Model

	focus      int
	errs       forms.Errors
	submitting bool
}

// NewEmployeeFormPage creates the form with its two lookups wired
func NewEmployeeFormPage(ctx Context) *EmployeeFormPage {
	debounce := ctx.Config.Search.Debounce()
	limit := ctx.Config.Search.Limit
	minLen := ctx.Config.Search.MinQueryLen

	company := searchbox.New("company", "Search companies…",
		ctx.Client.CompanySource(),
		search.Options{Field: "company", MinQueryLen: minLen, Limit: limit, OnFailure: ctx.FailureHook()},
		debounce, ctx.Emit)

	manager := searchbox.New("manager", "Search managers…",
		ctx.Client.ManagerSource(),
		search.Options{Field: "manager", MinQueryLen: minLen, Limit: limit, RequireScope: true, OnFailure: ctx.FailureHook()},
		debounce, ctx.Emit)

	inputs := make([]textinput.Model, len(empTextFields))
	for i, f := range empTextFields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.Prompt = ""
		ti.CharLimit = 120
		inputs[i] = ti
	}

	return &EmployeeFormPage{
		ctx:     ctx,
		company: company,
		manager: manager,
		inputs:  inputs,
		errs:    forms.Errors{},
	}
}

func (p *EmployeeFormPage) Title() string { return "New employee" }

func (p *EmployeeFormPage) Init() tea.Cmd {
	return p.setFocus(empFieldCompany)
}

// Teardown disables both lookups so responses landing after the form is
// closed change nothing.
func (p *EmployeeFormPage) Teardown() {
	p.company.Teardown()
	p.manager.Teardown()
}

func (p *EmployeeFormPage) Update(msg tea.Msg) (*EmployeeFormPage, tea.Cmd) {
	switch msg := msg.(type) {
	case employeeSavedMsg:
		p.submitting = false
		if msg.err != nil {
			return p, p.ctx.submitFailed("employee", msg.err)
		}
		return p, tea.Batch(
			p.ctx.submitted("employee", msg.employee.ID, fmt.Sprintf("Employee %s added", msg.employee.FullName())),
			func() tea.Msg { return BackMsg{} },
		)

	case searchbox.SelectionChangedMsg:
		if msg.Field == "company" {
			// Manager candidates only make sense within the chosen company
			return p, p.manager.SetScope(msg.ID)
		}
		return p, nil

	case searchbox.DebounceElapsedMsg, searchbox.ResultMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		p.company, cmd = p.company.Update(msg)
		cmds = append(cmds, cmd)
		p.manager, cmd = p.manager.Update(msg)
		cmds = append(cmds, cmd)
		return p, tea.Batch(cmds...)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *EmployeeFormPage) handleKey(msg tea.KeyMsg) (*EmployeeFormPage, tea.Cmd) {
	if p.submitting {
		return p, nil
	}

	switch msg.String() {
	case "tab", "enter":
		// Enter inside a search box commits a candidate instead
		if p.focusedSearchbox() != nil && msg.String() == "enter" {
			break
		}
		return p, p.setFocus((p.focus + 1) % empFieldCount)
	case "shift+tab":
		return p, p.setFocus((p.focus + empFieldCount - 1) % empFieldCount)
	case "ctrl+s":
		return p.submit()
	case "esc":
		// Esc inside an occupied search box clears it first; a second
		// press leaves the form.
		if box := p.focusedSearchbox(); box != nil {
			if _, _, ok := box.Selection(); ok {
				break
			}
		}
		return p, func() tea.Msg { return BackMsg{} }
	}

	if box := p.focusedSearchbox(); box != nil {
		var cmd tea.Cmd
		*box, cmd = box.Update(msg)
		return p, cmd
	}

	idx := p.focus - empFieldFirstName
	var cmd tea.Cmd
	p.inputs[idx], cmd = p.inputs[idx].Update(msg)
	return p, cmd
}

func (p *EmployeeFormPage) focusedSearchbox() *searchbox.Model {
	switch p.focus {
	case empFieldCompany:
		return &p.company
	case empFieldManager:
		return &p.manager
	}
	return nil
}

func (p *EmployeeFormPage) setFocus(target int) tea.Cmd {
	p.company.Blur()
	p.manager.Blur()
	for i := range p.inputs {
		p.inputs[i].Blur()
	}

	p.focus = target
	switch target {
	case empFieldCompany:
		return p.company.Focus()
	case empFieldManager:
		return p.manager.Focus()
	default:
		return p.inputs[target-empFieldFirstName].Focus()
	}
}

func (p *EmployeeFormPage) request() api.CreateEmployeeRequest {
	return api.CreateEmployeeRequest{
		CompanyID:      p.company.Value(),
		ManagerID:      p.manager.Value(),
		FirstName:      strings.TrimSpace(p.inputs[0].Value()),
		LastName:       strings.TrimSpace(p.inputs[1].Value()),
		Email:          strings.TrimSpace(p.inputs[2].Value()),
		Designation:    strings.TrimSpace(p.inputs[3].Value()),
		Department:     strings.TrimSpace(p.inputs[4].Value()),
		JoiningDate:    strings.TrimSpace(p.inputs[5].Value()),
		EmploymentType: strings.TrimSpace(p.inputs[6].Value()),
	}
}

func (p *EmployeeFormPage) submit() (*EmployeeFormPage, tea.Cmd) {
	req := p.request()
	p.errs = forms.Validate(req)
	if p.errs.HasErrors() {
		return p, toastCmd("Please fix the highlighted fields", true)
	}

	p.submitting = true
	client := p.ctx.Client
	return p, func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		employee, err := client.CreateEmployee(ctx, req)
		return employeeSavedMsg{employee: employee, err: err}
	}
}

func (p *EmployeeFormPage) View() string {
	s := p.ctx.Styles
	var b strings.Builder
	b.WriteString(s.Title.Render("New employee"))
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

	writeField("Company", "company_id", p.company.View(), p.focus == empFieldCompany)
	managerBody := p.manager.View()
	if p.company.Value() == "" {
		managerBody = s.Dim.Render("choose a company first")
	}
	writeField("Manager", "manager_id", managerBody, p.focus == empFieldManager)

	for i, f := range empTextFields {
		writeField(f.label, f.wireName, p.inputs[i].View(), p.focus == empFieldFirstName+i)
	}

	b.WriteString("\n")
	if p.submitting {
		b.WriteString(s.Dim.Render("Saving…"))
	} else {
		b.WriteString(s.Help.Render("tab next field · ctrl+s save · esc cancel"))
	}
	return b.String()
}
