package search

import "strings"

// State identifies where a search field is in its lifecycle
type State int

const (
	StateIdle    State = iota // no pending work, candidates may be empty
	StatePending              // text changed, debounce window still open
	StateLoading              // request in flight
	StateResults              // candidate list reflects the latest query
)

// Action tells the caller what to do after a debounce window settles
type Action int

const (
	ActionNone  Action = iota // token superseded, nothing to do
	ActionClear               // query too short or scope unset: no request
	ActionFetch               // issue the returned fetch
)

// Fetch describes one remote lookup. Gen tags the request so a late
// response for an older query can be recognized and dropped.
type Fetch struct {
	Gen   int
	Query string
	Scope string
	Limit int
}

// FailureHook observes swallowed lookup failures
type FailureHook func(field, query string, err error)

// Options configures a search field
type Options struct {
	Field        string // metric label and log name, e.g. "company"
	MinQueryLen  int    // below this no request is issued (default 2)
	Limit        int    // result cap per request (default 20)
	RequireScope bool   // dependent search: no requests while scope is unset
	OnFailure    FailureHook
}

// Controller is the state machine behind one autocomplete field. It is
// deliberately clock-free: the owner feeds it keystrokes, elapsed debounce
// tokens and resolved responses, which keeps every race testable.
//
// The candidate list always reflects the most recently issued query, never
// merely the most recently arrived response.
type Controller struct {
	opts Options

	state       State
	text        string
	scope       string
	debounceTok int
	fetchGen    int
	candidates  []Candidate

	selectedID    string
	selectedLabel string
	hasSelection  bool

	closed bool
}

// NewController creates a controller for one search field
func NewController(opts Options) *Controller {
	if opts.MinQueryLen <= 0 {
		opts.MinQueryLen = 2
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	return &Controller{opts: opts}
}

// SetText records a keystroke. Every call supersedes earlier debounce
// tokens; only the token returned by the final call in a burst will be
// honored by DebounceElapsed. A cleared box (empty text) resets the field
// immediately: candidates, selection and any in-flight request are dropped
// without waiting for the debounce window.
func (c *Controller) SetText(text string) (token int, cleared bool) {
	if c.closed {
		return 0, false
	}

	c.text = text
	c.debounceTok++

	if strings.TrimSpace(text) == "" {
		c.reset()
		return c.debounceTok, true
	}

	// Any edit after a selection invalidates it; the owning field pair is
	// cleared in the same step so id and label never diverge.
	c.hasSelection = false
	c.selectedID = ""
	c.selectedLabel = ""

	c.state = StatePending
	return c.debounceTok, false
}

// DebounceElapsed is called when the quiet period for token expires. Stale
// tokens (a newer keystroke arrived meanwhile) are ignored.
func (c *Controller) DebounceElapsed(token int) (Fetch, Action) {
	if c.closed || token != c.debounceTok {
		return Fetch{}, ActionNone
	}

	query := strings.TrimSpace(c.text)
	if len([]rune(query)) < c.opts.MinQueryLen {
		c.candidates = nil
		c.state = StateIdle
		return Fetch{}, ActionClear
	}
	if c.opts.RequireScope && c.scope == "" {
		c.candidates = nil
		c.state = StateIdle
		return Fetch{}, ActionClear
	}

	c.fetchGen++
	c.state = StateLoading
	requestsTotal.WithLabelValues(c.opts.Field).Inc()
	return Fetch{Gen: c.fetchGen, Query: query, Scope: c.scope, Limit: c.opts.Limit}, ActionFetch
}

// Resolve applies a response. Responses tagged with an older generation are
// discarded so an earlier slow request can never overwrite the results of a
// later fast one. Lookup errors degrade to an empty candidate list: the
// user sees "no matches", the failure hook and counters see the truth.
// Returns true when the response was applied.
func (c *Controller) Resolve(gen int, candidates []Candidate, err error) bool {
	if c.closed {
		return false
	}
	if gen != c.fetchGen {
		staleDiscardedTotal.WithLabelValues(c.opts.Field).Inc()
		return false
	}
	if c.state != StateLoading {
		// A clear or scope change raced the response; nothing to show.
		return false
	}

	c.state = StateResults
	if err != nil {
		failuresTotal.WithLabelValues(c.opts.Field).Inc()
		if c.opts.OnFailure != nil {
			c.opts.OnFailure(c.opts.Field, strings.TrimSpace(c.text), err)
		}
		c.candidates = nil
		return true
	}

	if len(candidates) > c.opts.Limit {
		candidates = candidates[:c.opts.Limit]
	}
	c.candidates = candidates
	return true
}

// Select commits one candidate: the owning (id, label) pair is set in the
// same step, the box text mirrors the label and the remaining candidates
// are discarded.
func (c *Controller) Select(cand Candidate) {
	if c.closed {
		return
	}
	c.selectedID = cand.ID
	c.selectedLabel = cand.Label
	c.hasSelection = true
	c.text = cand.Label
	c.candidates = nil
	c.debounceTok++ // cancel any pending debounce for the old text
	c.fetchGen++    // drop any in-flight response
	c.state = StateIdle
}

// ClearSelection resets both halves of the owning field pair together
func (c *Controller) ClearSelection() {
	if c.closed {
		return
	}
	c.reset()
	c.text = ""
}

// SetScope updates the parent value of a dependent search. A change clears
// the candidate list and the selection: results fetched under the old scope
// are meaningless under the new one.
func (c *Controller) SetScope(scope string) {
	if c.closed || scope == c.scope {
		return
	}
	c.scope = scope
	c.reset()
	c.text = ""
}

// Close tears the field down. No further state mutation happens, including
// from requests that resolve after teardown.
func (c *Controller) Close() {
	c.closed = true
}

func (c *Controller) reset() {
	c.candidates = nil
	c.selectedID = ""
	c.selectedLabel = ""
	c.hasSelection = false
	c.fetchGen++ // invalidate in-flight responses
	c.state = StateIdle
}

// Accessors used by the rendering layer

func (c *Controller) State() State            { return c.state }
func (c *Controller) Text() string            { return c.text }
func (c *Controller) Scope() string           { return c.scope }
func (c *Controller) Candidates() []Candidate { return c.candidates }
func (c *Controller) IsLoading() bool         { return c.state == StateLoading }

// Selection returns the committed (id, label) pair
func (c *Controller) Selection() (id, label string, ok bool) {
	return c.selectedID, c.selectedLabel, c.hasSelection
}
