package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"staffdeck/internal/domain"
)

type attendanceLoadedMsg struct {
	day     time.Time
	records []domain.AttendanceRecord
	err     error
}

// AttendancePage shows one day of clock activity with worked hours
type AttendancePage struct {
	ctx     Context
	day     time.Time
	records []domain.AttendanceRecord
	cursor  int
	loading bool
}

// NewAttendancePage creates the attendance page for today
func NewAttendancePage(ctx Context) *AttendancePage {
	return &AttendancePage{ctx: ctx, day: time.Now()}
}

func (p *AttendancePage) Title() string { return "Attendance" }

func (p *AttendancePage) Init() tea.Cmd {
	return p.load(p.day)
}

func (p *AttendancePage) load(day time.Time) tea.Cmd {
	p.loading = true
	client := p.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		records, err := client.ListAttendance(ctx, day)
		return attendanceLoadedMsg{day: day, records: records, err: err}
	}
}

func (p *AttendancePage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case attendanceLoadedMsg:
		p.loading = false
		if msg.err != nil {
			return p, toastCmd("Could not load attendance", true)
		}
		p.day = msg.day
		p.records = msg.records
		p.cursor = 0
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.records)-1 {
				p.cursor++
			}
		case "left", "h":
			return p, p.load(p.day.AddDate(0, 0, -1))
		case "right", "l":
			if !sameDay(p.day, time.Now()) {
				return p, p.load(p.day.AddDate(0, 0, 1))
			}
		case "t":
			return p, p.load(time.Now())
		case "r":
			return p, p.load(p.day)
		}
	}
	return p, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (p *AttendancePage) View() string {
	s := p.ctx.Styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Attendance — " + p.day.Format("Mon 2006-01-02")))
	b.WriteString("\n")

	if p.loading {
		b.WriteString(s.Dim.Render("Loading…"))
		return b.String()
	}
	if len(p.records) == 0 {
		b.WriteString(s.Dim.Render("No records for this day"))
		b.WriteString("\n\n")
		b.WriteString(s.Help.Render("←/→ change day · t today · r refresh"))
		return b.String()
	}

	b.WriteString(s.TableHeader.Render(fmt.Sprintf("  %-28s %-8s %-8s %-8s %-10s %s", "Employee", "In", "Out", "Break", "Worked", "Status")))
	b.WriteString("\n")

	now := time.Now()
	for i, rec := range p.records {
		out := "—"
		if !rec.IsOpen() {
			out = rec.ClockOut.Format("15:04")
		}
		in := "—"
		if !rec.ClockIn.IsZero() {
			in = rec.ClockIn.Format("15:04")
		}
		worked := domain.FormatHours(rec.WorkedDuration(now))
		if rec.IsOpen() && !rec.ClockIn.IsZero() {
			worked += " +" // still on the clock
		}

		row := fmt.Sprintf("  %-28s %-8s %-8s %-8s %-10s %s",
			rec.Employee, in, out, fmt.Sprintf("%dm", rec.BreakMins), worked, p.statusBadge(rec.Status))
		if i == p.cursor {
			row = s.RowSelected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Help.Render("←/→ change day · t today · r refresh"))
	return b.String()
}

func (p *AttendancePage) statusBadge(status string) string {
	s := p.ctx.Styles
	switch status {
	case "present":
		return s.Badge.Render(status)
	case "absent":
		return s.BadgeError.Render(status)
	case "half_day", "on_leave":
		return s.BadgeWarn.Render(status)
	default:
		return status
	}
}
