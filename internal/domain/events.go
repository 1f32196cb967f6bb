package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSessionStarted      EventType = "SessionStarted"
	EventSessionEnded        EventType = "SessionEnded"
	EventReferenceDataLoaded EventType = "ReferenceDataLoaded"
	EventWarmupCompleted     EventType = "WarmupCompleted"
	EventSearchFailed        EventType = "SearchFailed"
	EventSubmissionCompleted EventType = "SubmissionCompleted"
	EventSubmissionFailed    EventType = "SubmissionFailed"
	EventNoticeRaised        EventType = "NoticeRaised"
	EventError               EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SessionStartedEvent is emitted when a user session becomes active
type SessionStartedEvent struct {
	User         User
	Capabilities CapabilitySet
}

func (e SessionStartedEvent) Type() EventType { return EventSessionStarted }

// SessionEndedEvent is emitted on logout
type SessionEndedEvent struct{}

func (e SessionEndedEvent) Type() EventType { return EventSessionEnded }

// ReferenceDataLoadedEvent is emitted as the warm-up service fetches one
// kind of reference data
type ReferenceDataLoadedEvent struct {
	Kind  string // "companies", "roles", "templates", "subscription"
	Count int
}

func (e ReferenceDataLoadedEvent) Type() EventType { return EventReferenceDataLoaded }

// WarmupCompletedEvent is emitted when the warm-up service finishes
type WarmupCompletedEvent struct {
	Failures int
}

func (e WarmupCompletedEvent) Type() EventType { return EventWarmupCompleted }

// SearchFailedEvent is emitted when an autocomplete lookup fails. The UI
// stays silent about these; the event exists so operators can observe a
// failing search backend.
type SearchFailedEvent struct {
	Field string
	Query string
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SubmissionCompletedEvent is emitted when a create/update call succeeds
type SubmissionCompletedEvent struct {
	Entity string // "employee", "arrear", "schedule", "role", ...
	ID     string
}

func (e SubmissionCompletedEvent) Type() EventType { return EventSubmissionCompleted }

// SubmissionFailedEvent is emitted when a create/update call fails; the
// message comes from the API error envelope and is shown to the user.
type SubmissionFailedEvent struct {
	Entity  string
	Message string
	Err     error
}

func (e SubmissionFailedEvent) Type() EventType { return EventSubmissionFailed }

// NoticeRaisedEvent carries a transient status-bar notice
type NoticeRaisedEvent struct {
	Message string
	IsError bool
}

func (e NoticeRaisedEvent) Type() EventType { return EventNoticeRaised }

// ErrorEvent is emitted when an unexpected error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
