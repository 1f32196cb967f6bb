package searchbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"staffdeck/internal/search"
)

// DebounceElapsedMsg is emitted when a field's quiet period expires.
// Token identifies the keystroke burst; the controller ignores tokens
// that a later keystroke superseded.
type DebounceElapsedMsg struct {
	Field string
	Token int
}

// ResultMsg carries a resolved lookup back to the component
type ResultMsg struct {
	Field      string
	Gen        int
	Candidates []search.Candidate
	Err        error
}

// SelectionChangedMsg tells the owning form that the committed (id, label)
// pair changed. Both halves always travel together.
type SelectionChangedMsg struct {
	Field string
	ID    string
	Label string
}

// fetchTimeout bounds one autocomplete lookup
const fetchTimeout = 10 * time.Second

// Model is a text box backed by a remote candidate list. The owning form
// reads the committed selection via Selection or listens for
// SelectionChangedMsg.
type Model struct {
	field    string
	input    textinput.Model
	ctrl     *search.Controller
	source   search.Source
	debounce *search.Debouncer
	emit     func(tea.Msg)

	cursor  int
	focused bool

	styles Styles
}

// Styles controls how the component renders
type Styles struct {
	Prompt    lipgloss.Style
	Candidate lipgloss.Style
	Selected  lipgloss.Style
	Subtitle  lipgloss.Style
	Dim       lipgloss.Style
}

// DefaultStyles returns the standard look
func DefaultStyles() Styles {
	return Styles{
		Prompt:    lipgloss.NewStyle().Bold(true),
		Candidate: lipgloss.NewStyle(),
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Subtitle:  lipgloss.NewStyle().Faint(true),
		Dim:       lipgloss.NewStyle().Faint(true),
	}
}

// New creates a search box. emit delivers debounce expirations into the
// program loop; in the application this is the main event channel, in
// tests a recording function.
func New(field, placeholder string, source search.Source, opts search.Options, debounceDelay time.Duration, emit func(tea.Msg)) Model {
	if opts.Field == "" {
		opts.Field = field
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 120

	return Model{
		field:    field,
		input:    ti,
		ctrl:     search.NewController(opts),
		source:   source,
		debounce: search.NewDebouncer(debounceDelay),
		emit:     emit,
		styles:   DefaultStyles(),
	}
}

// Field returns the component's identity, used to route messages
func (m Model) Field() string { return m.field }

// Focus gives the component keyboard focus
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes focus and cancels any pending debounce emission
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
	m.debounce.Flush()
}

// Focused reports whether the component has keyboard focus
func (m Model) Focused() bool { return m.focused }

// Selection returns the committed (id, label) pair
func (m Model) Selection() (id, label string, ok bool) {
	return m.ctrl.Selection()
}

// Value returns the committed id, or "" when nothing is selected
func (m Model) Value() string {
	id, _, _ := m.ctrl.Selection()
	return id
}

// SetScope updates the parent value of a dependent search. Candidates and
// selection are cleared when the parent changes.
func (m *Model) SetScope(scope string) tea.Cmd {
	before := m.ctrl.Scope()
	m.ctrl.SetScope(scope)
	if m.ctrl.Scope() != before {
		m.input.SetValue("")
		m.cursor = 0
		m.debounce.Flush()
		return m.announceSelection()
	}
	return nil
}

// Teardown permanently disables the component: the debouncer stops and the
// controller refuses all further mutation, including late responses.
func (m *Model) Teardown() {
	m.debounce.Stop()
	m.ctrl.Close()
}

// Update handles keys and the component's own messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)

	case DebounceElapsedMsg:
		if msg.Field != m.field {
			return m, nil
		}
		fetch, action := m.ctrl.DebounceElapsed(msg.Token)
		switch action {
		case search.ActionFetch:
			return m, m.fetchCmd(fetch)
		case search.ActionClear:
			m.cursor = 0
		}
		return m, nil

	case ResultMsg:
		if msg.Field != m.field {
			return m, nil
		}
		if m.ctrl.Resolve(msg.Gen, msg.Candidates, msg.Err) {
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.cursor < len(m.ctrl.Candidates())-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		candidates := m.ctrl.Candidates()
		if len(candidates) == 0 {
			return m, nil
		}
		cand := candidates[m.cursor]
		m.ctrl.Select(cand)
		m.input.SetValue(cand.Label)
		m.input.CursorEnd()
		m.cursor = 0
		return m, m.announceSelection()

	case "esc":
		m.ctrl.ClearSelection()
		m.input.SetValue("")
		m.cursor = 0
		m.debounce.Flush()
		return m, m.announceSelection()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	value := m.input.Value()
	if value == before {
		return m, cmd
	}

	token, cleared := m.ctrl.SetText(value)
	if cleared {
		// Box emptied: candidates and selection are gone already, tell
		// the owner in the same update.
		m.cursor = 0
		m.debounce.Flush()
		return m, tea.Batch(cmd, m.announceSelection())
	}

	hadSelection := before != "" // an edit may have invalidated a selection
	m.scheduleDebounce(token)
	if hadSelection {
		return m, tea.Batch(cmd, m.announceSelection())
	}
	return m, cmd
}

// scheduleDebounce restarts the quiet period for the current burst. The
// debouncer fires at most once per burst; the token makes late firings
// harmless besides.
func (m *Model) scheduleDebounce(token int) {
	field := m.field
	emit := m.emit
	m.debounce.Trigger(m.input.Value(), func(string) {
		emit(DebounceElapsedMsg{Field: field, Token: token})
	})
}

// fetchCmd issues the remote lookup for a settled query
func (m Model) fetchCmd(fetch search.Fetch) tea.Cmd {
	source := m.source
	field := m.field
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		candidates, err := source(ctx, fetch.Query, fetch.Scope, fetch.Limit)
		return ResultMsg{Field: field, Gen: fetch.Gen, Candidates: candidates, Err: err}
	}
}

func (m Model) announceSelection() tea.Cmd {
	id, label, _ := m.ctrl.Selection()
	field := m.field
	return func() tea.Msg {
		return SelectionChangedMsg{Field: field, ID: id, Label: label}
	}
}

// View renders the input and, while searching, the candidate list
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())

	if !m.focused {
		return b.String()
	}

	switch m.ctrl.State() {
	case search.StateLoading:
		b.WriteString("\n")
		b.WriteString(m.styles.Dim.Render("  searching…"))

	case search.StateResults:
		candidates := m.ctrl.Candidates()
		if len(candidates) == 0 {
			b.WriteString("\n")
			b.WriteString(m.styles.Dim.Render("  no matches"))
			break
		}
		for i, cand := range candidates {
			b.WriteString("\n")
			line := "  " + cand.Label
			if cand.Subtitle != "" {
				line += " " + m.styles.Subtitle.Render(fmt.Sprintf("(%s)", cand.Subtitle))
			}
			if i == m.cursor {
				b.WriteString(m.styles.Selected.Render(line))
			} else {
				b.WriteString(m.styles.Candidate.Render(line))
			}
		}
	}

	return b.String()
}
