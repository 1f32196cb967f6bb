package views

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"staffdeck/internal/api"
	"staffdeck/internal/config"
	"staffdeck/internal/domain"
	"staffdeck/internal/eventbus"
	"staffdeck/internal/search"
	"staffdeck/internal/session"
)

// requestTimeout bounds one page-level API call
const requestTimeout = 15 * time.Second

// Context carries the injected dependencies every page needs. Pages never
// reach for globals; the root model hands this in at construction.
type Context struct {
	Client  *api.Client
	Session *session.Session
	Config  *config.Config
	Bus     eventbus.EventBus
	Styles  *Styles
	Emit    func(tea.Msg)
}

// Page is one screen of the console
type Page interface {
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) (Page, tea.Cmd)
	View() string
}

// ToastMsg asks the root model to show a transient notice
type ToastMsg struct {
	Text    string
	IsError bool
}

// ShowPagerMsg asks the root model to open content in the external pager
type ShowPagerMsg struct {
	Title   string
	Content string
}

// BackMsg asks the root model to leave a sub-page (e.g. a form) and return
// to the list it was opened from.
type BackMsg struct{}

func toastCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Text: text, IsError: isError} }
}

// FailureHook returns the hook a search field reports swallowed lookup
// failures to. The user sees nothing; the bus and the log see everything.
func (c Context) FailureHook() search.FailureHook {
	bus := c.Bus
	return func(field, query string, err error) {
		log.Printf("Search for %s (%q) failed: %v", field, query, err)
		if bus != nil {
			bus.Publish(domain.SearchFailedEvent{Field: field, Query: query, Err: err})
		}
	}
}

// submitFailed turns a failed submission into the toast the user sees and
// announces it on the bus. API envelope errors carry a server-provided
// message; anything else gets a generic line so raw transport errors never
// leak into the UI.
func (c Context) submitFailed(entity string, err error) tea.Cmd {
	text := fmt.Sprintf("Saving %s failed, please try again", entity)
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		text = apiErr.UserMessage()
	}
	if c.Bus != nil {
		c.Bus.Publish(domain.SubmissionFailedEvent{Entity: entity, Message: text, Err: err})
	}
	return toastCmd(text, true)
}

// submitted announces a successful submission and shows the given notice
func (c Context) submitted(entity, id, notice string) tea.Cmd {
	if c.Bus != nil {
		c.Bus.Publish(domain.SubmissionCompletedEvent{Entity: entity, ID: id})
	}
	return toastCmd(notice, false)
}

func reqContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// formatMoney renders minor currency units as a plain decimal amount
func formatMoney(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02")
}
