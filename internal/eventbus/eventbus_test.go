package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdeck/internal/domain"
)

func collect(t *testing.T, bus EventBus, eventType domain.EventType) func() []domain.DomainEvent {
	t.Helper()

	var mu sync.Mutex
	var got []domain.DomainEvent
	bus.Subscribe(eventType, func(e domain.DomainEvent) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	})

	return func() []domain.DomainEvent {
		mu.Lock()
		defer mu.Unlock()
		out := make([]domain.DomainEvent, len(got))
		copy(out, got)
		return out
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestPublishReachesSubscribers(t *testing.T) {
	bus := New()
	defer bus.Close()

	got := collect(t, bus, domain.EventNoticeRaised)

	bus.Publish(domain.NoticeRaisedEvent{Message: "saved"})
	bus.Publish(domain.NoticeRaisedEvent{Message: "failed", IsError: true})

	eventually(t, func() bool { return len(got()) == 2 })

	events := got()
	first, ok := events[0].(domain.NoticeRaisedEvent)
	require.True(t, ok)
	assert.Equal(t, "saved", first.Message)
}

func TestSubscribeFiltersOnType(t *testing.T) {
	bus := New()
	defer bus.Close()

	notices := collect(t, bus, domain.EventNoticeRaised)
	failures := collect(t, bus, domain.EventSearchFailed)

	bus.Publish(domain.SearchFailedEvent{Field: "company", Query: "ac"})

	eventually(t, func() bool { return len(failures()) == 1 })
	assert.Empty(t, notices())
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New()
	defer bus.Close()

	var mu sync.Mutex
	count := 0
	unsub := bus.Subscribe(domain.EventNoticeRaised, func(domain.DomainEvent) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	bus.Publish(domain.NoticeRaisedEvent{Message: "one"})
	eventually(t, func() bool { mu.Lock(); defer mu.Unlock(); return count == 1 })

	unsub()
	bus.Publish(domain.NoticeRaisedEvent{Message: "two"})

	// Give the dispatcher a chance to misbehave
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count)
}

func TestPanickingHandlerDoesNotStopDispatch(t *testing.T) {
	bus := New()
	defer bus.Close()

	bus.Subscribe(domain.EventNoticeRaised, func(domain.DomainEvent) {
		panic("bad subscriber")
	})
	got := collect(t, bus, domain.EventNoticeRaised)

	bus.Publish(domain.NoticeRaisedEvent{Message: "still delivered"})
	bus.Publish(domain.NoticeRaisedEvent{Message: "and again"})

	eventually(t, func() bool { return len(got()) == 2 })
}
