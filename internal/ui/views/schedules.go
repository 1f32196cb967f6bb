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

type schedulesLoadedMsg struct {
	schedules []domain.PayslipSchedule
	err       error
}

type scheduleSavedMsg struct {
	schedule *domain.PayslipSchedule
	err      error
}

// SchedulesPage lists payslip generation schedules and hosts the creation
// form, whose template field is a remote lookup.
type SchedulesPage struct {
	ctx       Context
	schedules []domain.PayslipSchedule
	cursor    int
	loading   bool

	form *scheduleForm
}

// NewSchedulesPage creates the schedules page
func NewSchedulesPage(ctx Context) *SchedulesPage {
	return &SchedulesPage{ctx: ctx}
}

func (p *SchedulesPage) Title() string { return "Payslip schedules" }

// CapturingInput reports whether keystrokes belong to an open form
func (p *SchedulesPage) CapturingInput() bool { return p.form != nil }

func (p *SchedulesPage) Init() tea.Cmd {
	p.loading = true
	client := p.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		schedules, err := client.ListPayslipSchedules(ctx)
		return schedulesLoadedMsg{schedules: schedules, err: err}
	}
}

func (p *SchedulesPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if p.form != nil {
		if _, ok := msg.(BackMsg); ok {
			p.form.teardown()
			p.form = nil
			return p, p.Init()
		}
		form, cmd := p.form.update(msg)
		p.form = form
		return p, cmd
	}

	switch msg := msg.(type) {
	case schedulesLoadedMsg:
		p.loading = false
		if msg.err != nil {
			return p, toastCmd("Could not load schedules", true)
		}
		p.schedules = msg.schedules
		p.cursor = 0
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.schedules)-1 {
				p.cursor++
			}
		case "n":
			if !p.ctx.Session.Can(domain.CapPayrollManage) {
				return p, toastCmd("You do not have permission to add schedules", true)
			}
			form := newScheduleForm(p.ctx)
			p.form = form
			return p, form.init()
		case "r":
			return p, p.Init()
		}
	}
	return p, nil
}

func (p *SchedulesPage) View() string {
	if p.form != nil {
		return p.form.view()
	}

	s := p.ctx.Styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Payslip schedules"))
	b.WriteString("\n")

	if p.loading {
		b.WriteString(s.Dim.Render("Loading…"))
		return b.String()
	}
	if len(p.schedules) == 0 {
		b.WriteString(s.Dim.Render("No schedules yet, press n to add one"))
		return b.String()
	}

	b.WriteString(s.TableHeader.Render(fmt.Sprintf("  %-28s %-10s %6s %12s", "Name", "Cadence", "Day", "Next run")))
	b.WriteString("\n")
	for i, sc := range p.schedules {
		day := "—"
		if sc.DayOfMonth > 0 {
			day = strconv.Itoa(sc.DayOfMonth)
		}
		row := fmt.Sprintf("  %-28s %-10s %6s %12s", sc.Name, sc.Cadence, day, formatDate(sc.NextRunAt))
		if i == p.cursor {
			row = s.RowSelected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Help.Render("n new · r refresh"))
	return b.String()
}

const (
	schFieldTemplate = iota
	schFieldName
	schFieldCadence
	schFieldDay
	schFieldCount
)

type scheduleForm struct {
	ctx Context

	template searchbox.Model
	name     textinput.Model
	cadence  textinput.Model
	day      textinput.Model

	focus      int
	errs       forms.Errors
	submitting bool
}

func newScheduleForm(ctx Context) *scheduleForm {
	template := searchbox.New("template", "Search payslip templates…",
		ctx.Client.TemplateSource(),
		search.Options{Field: "template", MinQueryLen: ctx.Config.Search.MinQueryLen, Limit: ctx.Config.Search.Limit, OnFailure: ctx.FailureHook()},
		ctx.Config.Search.Debounce(), ctx.Emit)

	name := textinput.New()
	name.Prompt = ""
	name.CharLimit = 80

	cadence := textinput.New()
	cadence.Placeholder = "weekly / biweekly / monthly"
	cadence.Prompt = ""
	cadence.CharLimit = 10

	day := textinput.New()
	day.Placeholder = "1-28, monthly only"
	day.Prompt = ""
	day.CharLimit = 2

	return &scheduleForm{
		ctx:      ctx,
		template: template,
		name:     name,
		cadence:  cadence,
		day:      day,
		errs:     forms.Errors{},
	}
}

func (f *scheduleForm) init() tea.Cmd {
	return f.setFocus(schFieldTemplate)
}

func (f *scheduleForm) teardown() {
	f.template.Teardown()
}

func (f *scheduleForm) update(msg tea.Msg) (*scheduleForm, tea.Cmd) {
	switch msg := msg.(type) {
	case scheduleSavedMsg:
		f.submitting = false
		if msg.err != nil {
			return f, f.ctx.submitFailed("schedule", msg.err)
		}
		return f, tea.Batch(
			f.ctx.submitted("schedule", msg.schedule.ID, fmt.Sprintf("Schedule %q created", msg.schedule.Name)),
			func() tea.Msg { return BackMsg{} },
		)

	case searchbox.DebounceElapsedMsg, searchbox.ResultMsg, searchbox.SelectionChangedMsg:
		var cmd tea.Cmd
		f.template, cmd = f.template.Update(msg)
		return f, cmd

	case tea.KeyMsg:
		return f.handleKey(msg)
	}
	return f, nil
}

func (f *scheduleForm) handleKey(msg tea.KeyMsg) (*scheduleForm, tea.Cmd) {
	if f.submitting {
		return f, nil
	}

	switch msg.String() {
	case "tab", "enter":
		if f.focus == schFieldTemplate && msg.String() == "enter" {
			break
		}
		return f, f.setFocus((f.focus + 1) % schFieldCount)
	case "shift+tab":
		return f, f.setFocus((f.focus + schFieldCount - 1) % schFieldCount)
	case "ctrl+s":
		return f.submit()
	case "esc":
		if f.focus == schFieldTemplate {
			if _, _, ok := f.template.Selection(); ok {
				break
			}
		}
		return f, func() tea.Msg { return BackMsg{} }
	}

	var cmd tea.Cmd
	switch f.focus {
	case schFieldTemplate:
		f.template, cmd = f.template.Update(msg)
	case schFieldName:
		f.name, cmd = f.name.Update(msg)
	case schFieldCadence:
		f.cadence, cmd = f.cadence.Update(msg)
	case schFieldDay:
		f.day, cmd = f.day.Update(msg)
	}
	return f, cmd
}

func (f *scheduleForm) setFocus(target int) tea.Cmd {
	f.template.Blur()
	f.name.Blur()
	f.cadence.Blur()
	f.day.Blur()

	f.focus = target
	switch target {
	case schFieldTemplate:
		return f.template.Focus()
	case schFieldName:
		return f.name.Focus()
	case schFieldCadence:
		return f.cadence.Focus()
	default:
		return f.day.Focus()
	}
}

func (f *scheduleForm) submit() (*scheduleForm, tea.Cmd) {
	day, _ := strconv.Atoi(strings.TrimSpace(f.day.Value()))
	req := api.CreatePayslipScheduleRequest{
		TemplateID: f.template.Value(),
		Name:       strings.TrimSpace(f.name.Value()),
		Cadence:    strings.TrimSpace(f.cadence.Value()),
		DayOfMonth: day,
	}

	f.errs = forms.Validate(req)
	if f.errs.HasErrors() {
		return f, toastCmd("Please fix the highlighted fields", true)
	}

	f.submitting = true
	client := f.ctx.Client
	return f, func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		schedule, err := client.CreatePayslipSchedule(ctx, req)
		return scheduleSavedMsg{schedule: schedule, err: err}
	}
}

func (f *scheduleForm) view() string {
	s := f.ctx.Styles
	var b strings.Builder
	b.WriteString(s.Title.Render("New payslip schedule"))
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
		if msg, ok := f.errs[wireName]; ok {
			b.WriteString("    " + s.FieldError.Render(fmt.Sprintf("%s %s", label, msg)) + "\n")
		}
	}

	writeField("Template", "template_id", f.template.View(), f.focus == schFieldTemplate)
	writeField("Name", "name", f.name.View(), f.focus == schFieldName)
	writeField("Cadence", "cadence", f.cadence.View(), f.focus == schFieldCadence)
	writeField("Day of month", "day_of_month", f.day.View(), f.focus == schFieldDay)

	b.WriteString("\n")
	if f.submitting {
		b.WriteString(s.Dim.Render("Saving…"))
	} else {
		b.WriteString(s.Help.Render("tab next field · ctrl+s save · esc cancel"))
	}
	return b.String()
}
