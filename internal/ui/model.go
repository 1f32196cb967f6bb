package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"staffdeck/internal/api"
	"staffdeck/internal/bootstrap"
	"staffdeck/internal/config"
	"staffdeck/internal/domain"
	"staffdeck/internal/eventbus"
	"staffdeck/internal/session"
	"staffdeck/internal/ui/views"
)

// navEntry is one switchable section of the console. Entries whose
// capability the user lacks are not built at all.
type navEntry struct {
	cap  domain.Capability // empty means always available
	make func(views.Context) views.Page
}

var navOrder = []navEntry{
	{"", func(c views.Context) views.Page { return views.NewDashboardPage(c) }},
	{domain.CapEmployeesView, func(c views.Context) views.Page { return views.NewEmployeesPage(c) }},
	{domain.CapPayrollView, func(c views.Context) views.Page { return views.NewPayrollPage(c) }},
	{domain.CapPayrollView, func(c views.Context) views.Page { return views.NewSchedulesPage(c) }},
	{domain.CapRolesManage, func(c views.Context) views.Page { return views.NewRolesPage(c) }},
	{domain.CapAttendanceView, func(c views.Context) views.Page { return views.NewAttendancePage(c) }},
	{domain.CapLeaveApprove, func(c views.Context) views.Page { return views.NewLeavePage(c) }},
	{domain.CapSubscriptionManage, func(c views.Context) views.Page { return views.NewSubscriptionPage(c) }},
}

// textCapturer is implemented by pages that sometimes own every keystroke
// (an open form); global shortcuts step aside while they do.
type textCapturer interface {
	CapturingInput() bool
}

// Model is the root Bubble Tea model: login gate, page switching, toasts
// and the pager.
type Model struct {
	client *api.Client
	bus    eventbus.EventBus
	cfg    *config.Config
	store  *session.Store
	warmup bootstrap.Service
	styles *views.Styles
	emit   func(tea.Msg)
	pager  *PagerOps

	sess      *session.Session
	login     views.Page
	pages     []views.Page
	active    int
	restoring bool

	toast      string
	toastError bool
	toastID    int

	width  int
	height int
}

// NewModel creates the root model. emit delivers messages produced outside
// the program loop (debounce timers, bus events) into it.
func NewModel(client *api.Client, bus eventbus.EventBus, cfg *config.Config, store *session.Store, warmup bootstrap.Service, emit func(tea.Msg)) *Model {
	styles := views.NewStyles()
	m := &Model{
		client: client,
		bus:    bus,
		cfg:    cfg,
		store:  store,
		warmup: warmup,
		styles: styles,
		emit:   emit,
		pager:  NewPagerOps(nil),
	}
	m.login = views.NewLoginPage(m.pageContext())
	return m
}

// SetProgram hands the model the running program, needed by the pager
func (m *Model) SetProgram(program *tea.Program) {
	m.pager.SetProgram(program)
}

func (m *Model) pageContext() views.Context {
	return views.Context{
		Client:  m.client,
		Session: m.sess,
		Config:  m.cfg,
		Bus:     m.bus,
		Styles:  m.styles,
		Emit:    m.emit,
	}
}

// Init tries to restore a persisted session before showing the login form
func (m *Model) Init() tea.Cmd {
	token, _, err := m.store.Load()
	if err != nil {
		log.Printf("Could not read stored session: %v", err)
	}
	if token == "" {
		return m.login.Init()
	}

	m.restoring = true
	client := m.client
	client.SetToken(token)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		result, err := client.Me(ctx)
		return sessionRestoredMsg{result: result, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionRestoredMsg:
		m.restoring = false
		if msg.err != nil {
			// Stored token no longer valid, fall back to the login form
			log.Printf("Stored session rejected: %v", msg.err)
			m.client.ClearToken()
			m.store.Clear()
			return m, m.login.Init()
		}
		return m, m.startSession(msg.result)

	case views.LoginSucceededMsg:
		return m, m.startSession(msg.Result)

	case views.ToastMsg:
		m.toast = msg.Text
		m.toastError = msg.IsError
		m.toastID++
		id := m.toastID
		return m, tea.Tick(m.toastDuration(), func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		})

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case views.ShowPagerMsg:
		pager := m.pager
		content := msg.Content
		return m, func() tea.Msg {
			return pagerDoneMsg{err: pager.ShowInPager(content)}
		}

	case pagerDoneMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
			return m, m.routeToActive(views.ToastMsg{Text: "Could not open the pager", IsError: true})
		}
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.routeToActive(msg)
}

// routeToActive forwards a message to the page currently on screen
func (m *Model) routeToActive(msg tea.Msg) tea.Cmd {
	if m.sess == nil {
		if m.login == nil {
			return nil
		}
		page, cmd := m.login.Update(msg)
		m.login = page
		return cmd
	}
	if len(m.pages) == 0 {
		return nil
	}
	page, cmd := m.pages[m.active].Update(msg)
	m.pages[m.active] = page
	return cmd
}

func (m *Model) handleEvent(event domain.DomainEvent) tea.Cmd {
	switch ev := event.(type) {
	case domain.WarmupCompletedEvent:
		// Warm-up failures are already logged per kind; stay quiet here
		return nil
	case domain.NoticeRaisedEvent:
		return func() tea.Msg {
			return views.ToastMsg{Text: ev.Message, IsError: ev.IsError}
		}
	case domain.ErrorEvent:
		log.Printf("Error event: %s: %v", ev.Message, ev.Err)
		return func() tea.Msg {
			return views.ToastMsg{Text: ev.Message, IsError: true}
		}
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.shutdown()
		return m, tea.Quit
	}

	if m.sess == nil {
		return m, m.routeToActive(msg)
	}

	capturing := false
	if tc, ok := m.pages[m.active].(textCapturer); ok {
		capturing = tc.CapturingInput()
	}

	if !capturing {
		switch msg.String() {
		case "q":
			m.shutdown()
			return m, tea.Quit
		case "?":
			return m, func() tea.Msg {
				return views.ShowPagerMsg{Title: "Help", Content: m.helpContent()}
			}
		case "L":
			return m, m.logout()
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(msg.String()[0] - '1')
			if idx < len(m.pages) && idx != m.active {
				m.active = idx
				return m, m.pages[m.active].Init()
			}
			return m, nil
		}
	}

	return m, m.routeToActive(msg)
}

// startSession resolves capabilities, persists the token and builds the
// pages the user is allowed to see.
func (m *Model) startSession(result *api.LoginResult) tea.Cmd {
	m.sess = session.Begin(result.Token, result.User, result.Permissions, m.bus)
	if err := m.store.Save(m.sess); err != nil {
		log.Printf("Could not persist session: %v", err)
	}

	ctx := m.pageContext()
	m.pages = m.pages[:0]
	for _, entry := range navOrder {
		if entry.cap != "" && !m.sess.Can(entry.cap) {
			continue
		}
		m.pages = append(m.pages, entry.make(ctx))
	}
	m.active = 0

	if err := m.warmup.Start(context.Background()); err != nil {
		log.Printf("Warm-up not started: %v", err)
	}

	return m.pages[m.active].Init()
}

// logout ends the session locally first so the UI never waits on the
// network, then tells the server in the background.
func (m *Model) logout() tea.Cmd {
	m.warmup.Stop()
	session.End(m.bus)
	m.store.Clear()
	m.sess = nil
	m.pages = nil
	m.active = 0
	m.login = views.NewLoginPage(m.pageContext())

	client := m.client
	return tea.Batch(
		m.login.Init(),
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Logout(ctx); err != nil {
				log.Printf("Server logout failed: %v", err)
			}
			return nil
		},
	)
}

func (m *Model) shutdown() {
	m.warmup.Stop()
	if m.sess != nil {
		session.End(m.bus)
	}
}

func (m *Model) toastDuration() time.Duration {
	seconds := m.cfg.UISettings.ToastSeconds
	if seconds <= 0 {
		seconds = 4
	}
	return time.Duration(seconds) * time.Second
}

func (m *Model) View() string {
	var body string
	switch {
	case m.restoring:
		body = m.styles.Dim.Render("Restoring session…")
	case m.sess == nil:
		body = m.login.View()
	default:
		body = m.renderNav() + "\n\n" + m.pages[m.active].View()
	}

	if m.toast != "" {
		style := m.styles.ToastInfo
		if m.toastError {
			style = m.styles.ToastError
		}
		body += "\n\n" + style.Render(m.toast)
	}

	return m.styles.Main.Render(body)
}

func (m *Model) renderNav() string {
	parts := make([]string, 0, len(m.pages))
	for i, page := range m.pages {
		label := fmt.Sprintf("%d %s", i+1, page.Title())
		if i == m.active {
			parts = append(parts, m.styles.Label.Render(label))
		} else {
			parts = append(parts, m.styles.Dim.Render(label))
		}
	}
	return strings.Join(parts, "   ")
}
