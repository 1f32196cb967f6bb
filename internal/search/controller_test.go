package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(opts Options) *Controller {
	if opts.Field == "" {
		opts.Field = "test"
	}
	return NewController(opts)
}

// settle types the text and expires its debounce token, returning the
// fetch decision.
func settle(c *Controller, text string) (Fetch, Action) {
	tok, _ := c.SetText(text)
	return c.DebounceElapsed(tok)
}

func TestOnlyLastTokenOfBurstIsHonored(t *testing.T) {
	c := newTestController(Options{})

	tok1, _ := c.SetText("Ac")
	tok2, _ := c.SetText("Acm")

	_, action := c.DebounceElapsed(tok1)
	assert.Equal(t, ActionNone, action, "superseded token must be ignored")

	fetch, action := c.DebounceElapsed(tok2)
	require.Equal(t, ActionFetch, action)
	assert.Equal(t, "Acm", fetch.Query)

	// The same token does not fire twice
	_, action = c.DebounceElapsed(tok2)
	assert.Equal(t, ActionNone, action)
}

func TestMinimumLengthGate(t *testing.T) {
	c := newTestController(Options{MinQueryLen: 2})

	// Seed some candidates first so the gate provably clears them
	fetch, action := settle(c, "ac")
	require.Equal(t, ActionFetch, action)
	require.True(t, c.Resolve(fetch.Gen, []Candidate{{ID: "c1", Label: "Acme"}}, nil))
	require.Len(t, c.Candidates(), 1)

	_, action = settle(c, "a")
	assert.Equal(t, ActionClear, action, "one rune is below the gate")
	assert.Empty(t, c.Candidates())
	assert.Equal(t, StateIdle, c.State())

	_, action = settle(c, "  a  ")
	assert.Equal(t, ActionClear, action, "surrounding whitespace does not count")
}

func TestStaleResponseDiscard(t *testing.T) {
	c := newTestController(Options{})

	r1, action := settle(c, "ac")
	require.Equal(t, ActionFetch, action)

	r2, action := settle(c, "acm")
	require.Equal(t, ActionFetch, action)
	require.Greater(t, r2.Gen, r1.Gen)

	// R2 resolves first
	require.True(t, c.Resolve(r2.Gen, []Candidate{{ID: "c2", Label: "Acme Corp"}}, nil))
	// R1 arrives late and must be dropped
	require.False(t, c.Resolve(r1.Gen, []Candidate{{ID: "c1", Label: "Academy"}}, nil))

	require.Len(t, c.Candidates(), 1)
	assert.Equal(t, "c2", c.Candidates()[0].ID)
}

func TestSelectionAtomicity(t *testing.T) {
	c := newTestController(Options{})

	fetch, _ := settle(c, "ac")
	require.True(t, c.Resolve(fetch.Gen, []Candidate{{ID: "c1", Label: "Acme Corp", Subtitle: "ACME"}}, nil))

	c.Select(c.Candidates()[0])
	id, label, ok := c.Selection()
	require.True(t, ok)
	assert.Equal(t, "c1", id)
	assert.Equal(t, "Acme Corp", label)
	assert.Equal(t, "Acme Corp", c.Text(), "box text mirrors the label")
	assert.Empty(t, c.Candidates(), "rest of the set is discarded")

	c.ClearSelection()
	id, label, ok = c.Selection()
	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Empty(t, label)
	assert.Empty(t, c.Text())
}

func TestEditAfterSelectionInvalidatesIt(t *testing.T) {
	c := newTestController(Options{})

	fetch, _ := settle(c, "ac")
	require.True(t, c.Resolve(fetch.Gen, []Candidate{{ID: "c1", Label: "Acme Corp"}}, nil))
	c.Select(c.Candidates()[0])

	c.SetText("Acme Corp Gmb")
	_, _, ok := c.Selection()
	assert.False(t, ok, "editing the box drops the committed id with the label")
}

func TestClearingTextResetsImmediately(t *testing.T) {
	c := newTestController(Options{})

	fetch, _ := settle(c, "ac")
	require.True(t, c.Resolve(fetch.Gen, []Candidate{{ID: "c1", Label: "Acme"}}, nil))
	c.Select(Candidate{ID: "c1", Label: "Acme"})

	_, cleared := c.SetText("")
	assert.True(t, cleared)
	assert.Empty(t, c.Candidates())
	_, _, ok := c.Selection()
	assert.False(t, ok)

	// A response for the pre-clear request must not resurface
	assert.False(t, c.Resolve(fetch.Gen, []Candidate{{ID: "c9", Label: "Stale"}}, nil))
	assert.Empty(t, c.Candidates())
}

func TestDependentSearchGating(t *testing.T) {
	c := newTestController(Options{RequireScope: true})

	// Parent unset: settling text issues no request
	_, action := settle(c, "jane")
	assert.Equal(t, ActionClear, action)

	c.SetScope("company-1")
	fetch, action := settle(c, "jane")
	require.Equal(t, ActionFetch, action)
	assert.Equal(t, "company-1", fetch.Scope)
	require.True(t, c.Resolve(fetch.Gen, []Candidate{{ID: "e1", Label: "Jane Doe"}}, nil))
	c.Select(c.Candidates()[0])

	// Parent changes: candidates and selection are cleared at once
	c.SetScope("company-2")
	assert.Empty(t, c.Candidates())
	_, _, ok := c.Selection()
	assert.False(t, ok)

	// And responses still in flight under the old scope are dropped
	assert.False(t, c.Resolve(fetch.Gen, []Candidate{{ID: "e1", Label: "Jane Doe"}}, nil))
}

func TestLookupFailureIsSwallowed(t *testing.T) {
	var hookField, hookQuery string
	var hookErr error
	c := newTestController(Options{
		Field: "company",
		OnFailure: func(field, query string, err error) {
			hookField, hookQuery, hookErr = field, query, err
		},
	})

	fetch, action := settle(c, "ac")
	require.Equal(t, ActionFetch, action)

	boom := errors.New("connection refused")
	require.True(t, c.Resolve(fetch.Gen, nil, boom))

	assert.Empty(t, c.Candidates(), "failure degrades to no matches")
	assert.Equal(t, StateResults, c.State())
	assert.False(t, c.IsLoading())

	// The observability hook saw what the user did not
	assert.Equal(t, "company", hookField)
	assert.Equal(t, "ac", hookQuery)
	assert.Equal(t, boom, hookErr)
}

func TestResultCapIsEnforced(t *testing.T) {
	c := newTestController(Options{Limit: 2})

	fetch, _ := settle(c, "ac")
	many := []Candidate{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	require.True(t, c.Resolve(fetch.Gen, many, nil))
	assert.Len(t, c.Candidates(), 2)
}

func TestNoMutationAfterClose(t *testing.T) {
	c := newTestController(Options{})

	fetch, action := settle(c, "ac")
	require.Equal(t, ActionFetch, action)

	c.Close()

	assert.False(t, c.Resolve(fetch.Gen, []Candidate{{ID: "c1"}}, nil))
	assert.Empty(t, c.Candidates())

	tok, _ := c.SetText("more typing")
	assert.Zero(t, tok)
	_, action = c.DebounceElapsed(tok)
	assert.Equal(t, ActionNone, action)
}

func TestExampleScenario(t *testing.T) {
	// Typing "Ac" then "Acm" within the debounce window produces exactly
	// one request, for "Acm"; selecting the single row commits (c1, Acme Corp).
	c := newTestController(Options{Field: "company"})

	tok1, _ := c.SetText("Ac")
	tok2, _ := c.SetText("Acm")

	_, action := c.DebounceElapsed(tok1)
	require.Equal(t, ActionNone, action)

	fetch, action := c.DebounceElapsed(tok2)
	require.Equal(t, ActionFetch, action)
	require.Equal(t, "Acm", fetch.Query)

	require.True(t, c.Resolve(fetch.Gen, []Candidate{{ID: "c1", Label: "Acme Corp", Subtitle: "ACME"}}, nil))
	require.Len(t, c.Candidates(), 1)

	c.Select(c.Candidates()[0])
	id, label, ok := c.Selection()
	require.True(t, ok)
	assert.Equal(t, "c1", id)
	assert.Equal(t, "Acme Corp", label)
}
