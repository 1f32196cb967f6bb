package views

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"staffdeck/internal/api"
)

// LoginSucceededMsg tells the root model to start a session
type LoginSucceededMsg struct {
	Result *api.LoginResult
}

type loginAttemptMsg struct {
	result *api.LoginResult
	err    error
}

// LoginPage authenticates the console user. It is the only page that runs
// without a session.
type LoginPage struct {
	ctx Context

	email    textinput.Model
	password textinput.Model

	focusPassword bool
	submitting    bool
	errText       string
}

// NewLoginPage creates the login page
func NewLoginPage(ctx Context) *LoginPage {
	email := textinput.New()
	email.Placeholder = "you@company.com"
	email.Prompt = ""
	email.CharLimit = 120

	password := textinput.New()
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120

	return &LoginPage{ctx: ctx, email: email, password: password}
}

func (p *LoginPage) Title() string { return "Sign in" }

func (p *LoginPage) Init() tea.Cmd {
	return p.email.Focus()
}

func (p *LoginPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case loginAttemptMsg:
		p.submitting = false
		if msg.err != nil {
			p.password.SetValue("")
			p.errText = loginErrorText(msg.err)
			return p, nil
		}
		p.errText = ""
		result := msg.result
		return p, func() tea.Msg { return LoginSucceededMsg{Result: result} }

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func loginErrorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return "Could not reach the server, please try again"
}

func (p *LoginPage) handleKey(msg tea.KeyMsg) (Page, tea.Cmd) {
	if p.submitting {
		return p, nil
	}

	switch msg.String() {
	case "tab", "shift+tab":
		return p, p.toggleFocus()
	case "enter":
		if !p.focusPassword {
			return p, p.toggleFocus()
		}
		return p.submit()
	}

	var cmd tea.Cmd
	if p.focusPassword {
		p.password, cmd = p.password.Update(msg)
	} else {
		p.email, cmd = p.email.Update(msg)
	}
	return p, cmd
}

func (p *LoginPage) toggleFocus() tea.Cmd {
	p.focusPassword = !p.focusPassword
	if p.focusPassword {
		p.email.Blur()
		return p.password.Focus()
	}
	p.password.Blur()
	return p.email.Focus()
}

func (p *LoginPage) submit() (Page, tea.Cmd) {
	email := strings.TrimSpace(p.email.Value())
	password := p.password.Value()
	if email == "" || password == "" {
		p.errText = "Email and password are both required"
		return p, nil
	}

	p.submitting = true
	p.errText = ""
	client := p.ctx.Client
	return p, func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		result, err := client.Login(ctx, email, password)
		return loginAttemptMsg{result: result, err: err}
	}
}

func (p *LoginPage) View() string {
	s := p.ctx.Styles
	var b strings.Builder

	b.WriteString(s.Title.Render("StaffDeck"))
	b.WriteString("\n")
	b.WriteString(s.Dim.Render("Sign in to your HR console"))
	b.WriteString("\n\n")

	marker := func(active bool) string {
		if active {
			return "> "
		}
		return "  "
	}

	b.WriteString(marker(!p.focusPassword) + s.Label.Render("Email") + "\n")
	b.WriteString("    " + p.email.View() + "\n")
	b.WriteString(marker(p.focusPassword) + s.Label.Render("Password") + "\n")
	b.WriteString("    " + p.password.View() + "\n")

	if p.errText != "" {
		b.WriteString("\n  " + s.FieldError.Render(p.errText) + "\n")
	}

	b.WriteString("\n")
	if p.submitting {
		b.WriteString(s.Dim.Render("Signing in…"))
	} else {
		b.WriteString(s.Help.Render("enter sign in · ctrl+c quit"))
	}
	return b.String()
}
