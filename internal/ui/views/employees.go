package views

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"staffdeck/internal/api"
	"staffdeck/internal/domain"
)

type employeesLoadedMsg struct {
	employees []domain.Employee
	page      *api.PageInfo
	err       error
}

// departmentGroup is one collapsible section of the employee list
type departmentGroup struct {
	name      string
	employees []domain.Employee
	collapsed bool
}

// EmployeesPage lists the company's people grouped by department and hosts
// the new-employee form.
type EmployeesPage struct {
	ctx     Context
	groups  []departmentGroup
	cursor  int // index into visible lines
	loading bool

	total     int // directory size reported by the server
	morePages bool

	form *EmployeeFormPage
}

// NewEmployeesPage creates the employee list page
func NewEmployeesPage(ctx Context) *EmployeesPage {
	return &EmployeesPage{ctx: ctx}
}

func (p *EmployeesPage) Title() string { return "Employees" }

// CapturingInput reports whether keystrokes belong to an open form
func (p *EmployeesPage) CapturingInput() bool { return p.form != nil }

func (p *EmployeesPage) Init() tea.Cmd {
	p.loading = true
	client := p.ctx.Client
	companyID := p.ctx.Session.User.CompanyID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		employees, page, err := client.ListEmployees(ctx, companyID, 1, 200)
		return employeesLoadedMsg{employees: employees, page: page, err: err}
	}
}

func (p *EmployeesPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case employeesLoadedMsg:
		p.loading = false
		if msg.err != nil {
			return p, toastCmd("Could not load employees", true)
		}
		p.groups = groupByDepartment(msg.employees)
		p.cursor = 0
		p.total = len(msg.employees)
		p.morePages = false
		if msg.page != nil {
			p.total = msg.page.Total
			p.morePages = msg.page.TotalPages > 1
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *EmployeesPage) updateForm(msg tea.Msg) (Page, tea.Cmd) {
	if _, ok := msg.(BackMsg); ok {
		p.form.Teardown()
		p.form = nil
		return p, p.Init()
	}
	form, cmd := p.form.Update(msg)
	p.form = form
	return p, cmd
}

func (p *EmployeesPage) handleKey(msg tea.KeyMsg) (Page, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < p.lineCount()-1 {
			p.cursor++
		}
	case "z":
		if gi, isHeader := p.lineAt(p.cursor); isHeader {
			p.groups[gi].collapsed = !p.groups[gi].collapsed
		}
	case "r":
		return p, p.Init()
	case "n":
		if !p.ctx.Session.Can(domain.CapEmployeesManage) {
			return p, toastCmd("You do not have permission to add employees", true)
		}
		form := NewEmployeeFormPage(p.ctx)
		p.form = form
		return p, form.Init()
	}
	return p, nil
}

// lineCount returns how many rows the grouped list renders
func (p *EmployeesPage) lineCount() int {
	n := 0
	for _, g := range p.groups {
		n++ // header
		if !g.collapsed {
			n += len(g.employees)
		}
	}
	return n
}

// lineAt maps a cursor position back to its group, reporting whether the
// line is a group header.
func (p *EmployeesPage) lineAt(line int) (groupIdx int, isHeader bool) {
	i := 0
	for gi, g := range p.groups {
		if i == line {
			return gi, true
		}
		i++
		if g.collapsed {
			continue
		}
		if line < i+len(g.employees) {
			return gi, false
		}
		i += len(g.employees)
	}
	return 0, false
}

func (p *EmployeesPage) View() string {
	if p.form != nil {
		return p.form.View()
	}

	s := p.ctx.Styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Employees"))
	b.WriteString("\n")

	if p.loading {
		b.WriteString(s.Dim.Render("Loading…"))
		return b.String()
	}
	if len(p.groups) == 0 {
		b.WriteString(s.Dim.Render("No employees yet, press n to add one"))
		return b.String()
	}

	count := fmt.Sprintf("%d total", p.total)
	if p.morePages {
		count += " · showing first page"
	}
	b.WriteString(s.Dim.Render(count))
	b.WriteString("\n")

	line := 0
	for _, g := range p.groups {
		marker := "▼"
		if g.collapsed {
			marker = "▶"
		}
		header := fmt.Sprintf("%s %s (%d)", marker, g.name, len(g.employees))
		b.WriteString(p.renderLine(line, s.Section.Render(header)))
		line++
		if g.collapsed {
			continue
		}
		for _, e := range g.employees {
			row := fmt.Sprintf("    %-28s %-24s %s", e.FullName(), e.Designation, s.Dim.Render(e.Email))
			b.WriteString(p.renderLine(line, row))
			line++
		}
	}

	b.WriteString("\n")
	b.WriteString(s.Help.Render("↑/↓ move · z fold group · n new · r refresh"))
	return b.String()
}

func (p *EmployeesPage) renderLine(line int, content string) string {
	if line == p.cursor {
		return p.ctx.Styles.RowSelected.Render(content) + "\n"
	}
	return content + "\n"
}

func groupByDepartment(employees []domain.Employee) []departmentGroup {
	byDept := map[string][]domain.Employee{}
	for _, e := range employees {
		dept := e.Department
		if dept == "" {
			dept = "Unassigned"
		}
		byDept[dept] = append(byDept[dept], e)
	}

	names := make([]string, 0, len(byDept))
	for name := range byDept {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]departmentGroup, 0, len(names))
	for _, name := range names {
		members := byDept[name]
		sort.Slice(members, func(i, j int) bool {
			return members[i].FullName() < members[j].FullName()
		})
		groups = append(groups, departmentGroup{name: name, employees: members})
	}
	return groups
}
