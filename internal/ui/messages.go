package ui

import (
	"staffdeck/internal/api"
	"staffdeck/internal/domain"
)

// EventMsg wraps a domain event forwarded from the bus into the program
// loop.
type EventMsg struct {
	Event domain.DomainEvent
}

// pagerDoneMsg reports the pager command finishing
type pagerDoneMsg struct {
	err error
}

// toastExpiredMsg clears a toast; the id guards against an old timer
// clearing a newer toast.
type toastExpiredMsg struct {
	id int
}

// sessionRestoredMsg carries the result of validating a stored token
type sessionRestoredMsg struct {
	result *api.LoginResult
	err    error
}
