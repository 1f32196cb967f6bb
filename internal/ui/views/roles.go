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

type rolesLoadedMsg struct {
	roles []domain.Role
	err   error
}

type roleSavedMsg struct {
	role *domain.Role
	err  error
}

type roleCloneLoadedMsg struct {
	role *domain.Role
	err  error
}

// RolesPage lists the company's roles and hosts the creation form, which
// can clone the capability set of an existing role via a remote lookup.
type RolesPage struct {
	ctx     Context
	roles   []domain.Role
	cursor  int
	loading bool

	form *roleForm
}

// NewRolesPage creates the roles page
func NewRolesPage(ctx Context) *RolesPage {
	return &RolesPage{ctx: ctx}
}

func (p *RolesPage) Title() string { return "Roles" }

// CapturingInput reports whether keystrokes belong to an open form
func (p *RolesPage) CapturingInput() bool { return p.form != nil }

func (p *RolesPage) Init() tea.Cmd {
	p.loading = true
	client := p.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		roles, err := client.ListRoles(ctx)
		return rolesLoadedMsg{roles: roles, err: err}
	}
}

func (p *RolesPage) Update(msg tea.Msg) (Page, tea.Cmd) {
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
	case rolesLoadedMsg:
		p.loading = false
		if msg.err != nil {
			return p, toastCmd("Could not load roles", true)
		}
		p.roles = msg.roles
		p.cursor = 0
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.roles)-1 {
				p.cursor++
			}
		case "n":
			if !p.ctx.Session.Can(domain.CapRolesManage) {
				return p, toastCmd("You do not have permission to manage roles", true)
			}
			form := newRoleForm(p.ctx)
			p.form = form
			return p, form.init()
		case "r":
			return p, p.Init()
		}
	}
	return p, nil
}

func (p *RolesPage) View() string {
	if p.form != nil {
		return p.form.view()
	}

	s := p.ctx.Styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Roles"))
	b.WriteString("\n")

	if p.loading {
		b.WriteString(s.Dim.Render("Loading…"))
		return b.String()
	}
	if len(p.roles) == 0 {
		b.WriteString(s.Dim.Render("No roles yet, press n to add one"))
		return b.String()
	}

	b.WriteString(s.TableHeader.Render(fmt.Sprintf("  %-24s %8s  %s", "Name", "Members", "Capabilities")))
	b.WriteString("\n")
	for i, role := range p.roles {
		caps := make([]string, 0, len(role.Capabilities))
		for _, c := range role.Capabilities {
			caps = append(caps, string(c))
		}
		row := fmt.Sprintf("  %-24s %8d  %s", role.Name, role.MemberCount, s.Dim.Render(strings.Join(caps, ", ")))
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
	roleFieldClone = iota
	roleFieldName
	roleFieldDescription
	roleFieldCaps
	roleFieldCount
)

type roleForm struct {
	ctx Context

	clone       searchbox.Model
	name        textinput.Model
	description textinput.Model

	capCursor int
	granted   map[domain.Capability]bool

	focus      int
	errs       forms.Errors
	submitting bool
}

func newRoleForm(ctx Context) *roleForm {
	clone := searchbox.New("role-clone", "Copy capabilities from an existing role…",
		ctx.Client.RoleSource(),
		search.Options{Field: "role-clone", MinQueryLen: ctx.Config.Search.MinQueryLen, Limit: ctx.Config.Search.Limit, OnFailure: ctx.FailureHook()},
		ctx.Config.Search.Debounce(), ctx.Emit)

	name := textinput.New()
	name.Prompt = ""
	name.CharLimit = 60

	description := textinput.New()
	description.Prompt = ""
	description.CharLimit = 200

	return &roleForm{
		ctx:         ctx,
		clone:       clone,
		name:        name,
		description: description,
		granted:     map[domain.Capability]bool{},
		errs:        forms.Errors{},
	}
}

func (f *roleForm) init() tea.Cmd {
	return f.setFocus(roleFieldName)
}

func (f *roleForm) teardown() {
	f.clone.Teardown()
}

func (f *roleForm) update(msg tea.Msg) (*roleForm, tea.Cmd) {
	switch msg := msg.(type) {
	case roleSavedMsg:
		f.submitting = false
		if msg.err != nil {
			return f, f.ctx.submitFailed("role", msg.err)
		}
		return f, tea.Batch(
			f.ctx.submitted("role", msg.role.ID, fmt.Sprintf("Role %q created", msg.role.Name)),
			func() tea.Msg { return BackMsg{} },
		)

	case searchbox.SelectionChangedMsg:
		if msg.Field == "role-clone" && msg.ID != "" {
			return f, f.cloneCapabilities(msg.ID)
		}
		return f, nil

	case roleCloneLoadedMsg:
		if msg.err != nil {
			return f, toastCmd("Could not load role to copy", true)
		}
		if msg.role != nil {
			f.granted = map[domain.Capability]bool{}
			for _, c := range msg.role.Capabilities {
				f.granted[c] = true
			}
		}
		return f, nil

	case searchbox.DebounceElapsedMsg, searchbox.ResultMsg:
		var cmd tea.Cmd
		f.clone, cmd = f.clone.Update(msg)
		return f, cmd

	case tea.KeyMsg:
		return f.handleKey(msg)
	}
	return f, nil
}

// cloneCapabilities loads the grants of the chosen role. The search endpoint
// only returns summaries, so the full list is fetched and the chosen role
// picked out by id.
func (f *roleForm) cloneCapabilities(roleID string) tea.Cmd {
	client := f.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		roles, err := client.ListRoles(ctx)
		if err != nil {
			return roleCloneLoadedMsg{err: err}
		}
		for i := range roles {
			if roles[i].ID == roleID {
				return roleCloneLoadedMsg{role: &roles[i]}
			}
		}
		return roleCloneLoadedMsg{}
	}
}

func (f *roleForm) handleKey(msg tea.KeyMsg) (*roleForm, tea.Cmd) {
	if f.submitting {
		return f, nil
	}

	switch msg.String() {
	case "tab", "enter":
		if f.focus == roleFieldClone && msg.String() == "enter" {
			break
		}
		if f.focus == roleFieldCaps && msg.String() == "enter" {
			break
		}
		return f, f.setFocus((f.focus + 1) % roleFieldCount)
	case "shift+tab":
		return f, f.setFocus((f.focus + roleFieldCount - 1) % roleFieldCount)
	case "ctrl+s":
		return f.submit()
	case "esc":
		if f.focus == roleFieldClone {
			if _, _, ok := f.clone.Selection(); ok {
				break
			}
		}
		return f, func() tea.Msg { return BackMsg{} }
	}

	if f.focus == roleFieldCaps {
		switch msg.String() {
		case "up", "k":
			if f.capCursor > 0 {
				f.capCursor--
			}
		case "down", "j":
			if f.capCursor < len(domain.AllCapabilities)-1 {
				f.capCursor++
			}
		case " ", "enter":
			c := domain.AllCapabilities[f.capCursor]
			f.granted[c] = !f.granted[c]
		}
		return f, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case roleFieldClone:
		f.clone, cmd = f.clone.Update(msg)
	case roleFieldName:
		f.name, cmd = f.name.Update(msg)
	case roleFieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return f, cmd
}

func (f *roleForm) setFocus(target int) tea.Cmd {
	f.clone.Blur()
	f.name.Blur()
	f.description.Blur()

	f.focus = target
	switch target {
	case roleFieldClone:
		return f.clone.Focus()
	case roleFieldName:
		return f.name.Focus()
	case roleFieldDescription:
		return f.description.Focus()
	default:
		return nil
	}
}

func (f *roleForm) submit() (*roleForm, tea.Cmd) {
	permissions := make([]string, 0, len(f.granted))
	for _, c := range domain.AllCapabilities {
		if f.granted[c] {
			permissions = append(permissions, string(c))
		}
	}

	req := api.CreateRoleRequest{
		Name:        strings.TrimSpace(f.name.Value()),
		Description: strings.TrimSpace(f.description.Value()),
		Permissions: permissions,
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
		role, err := client.CreateRole(ctx, req)
		return roleSavedMsg{role: role, err: err}
	}
}

func (f *roleForm) view() string {
	s := f.ctx.Styles
	var b strings.Builder
	b.WriteString(s.Title.Render("New role"))
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

	writeField("Copy from", "", f.clone.View(), f.focus == roleFieldClone)
	writeField("Name", "name", f.name.View(), f.focus == roleFieldName)
	writeField("Description", "description", f.description.View(), f.focus == roleFieldDescription)

	marker := "  "
	if f.focus == roleFieldCaps {
		marker = "> "
	}
	b.WriteString(fmt.Sprintf("%s%s\n", marker, s.Label.Render("Capabilities")))
	for i, c := range domain.AllCapabilities {
		check := "[ ]"
		if f.granted[c] {
			check = "[x]"
		}
		line := fmt.Sprintf("    %s %s", check, c)
		if f.focus == roleFieldCaps && i == f.capCursor {
			line = s.RowSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if msg, ok := f.errs["permissions"]; ok {
		b.WriteString("    " + s.FieldError.Render("Capabilities "+msg) + "\n")
	}

	b.WriteString("\n")
	if f.submitting {
		b.WriteString(s.Dim.Render("Saving…"))
	} else {
		b.WriteString(s.Help.Render("tab next field · space toggle capability · ctrl+s save · esc cancel"))
	}
	return b.String()
}
