package bootstrap

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"staffdeck/internal/api"
	"staffdeck/internal/domain"
	"staffdeck/internal/eventbus"
)

// Service warms the console after login: reference data the pages lean on
// (roles, schedules, subscription) is prefetched in the background so the
// first page open does not stall on the network. Failures are per-kind;
// one broken endpoint does not block the rest.
type Service interface {
	Start(ctx context.Context) error
	Stop()
}

// service is the concrete implementation
type service struct {
	client *api.Client
	bus    eventbus.EventBus

	mu         sync.Mutex
	running    bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewService creates a warm-up service
func NewService(client *api.Client, bus eventbus.EventBus) Service {
	return &service{client: client, bus: bus}
}

// Start kicks off the warm-up in the background
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("warm-up already in progress")
	}
	s.running = true

	warmCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		failures := s.warm(warmCtx)

		s.mu.Lock()
		s.running = false
		s.cancelFunc = nil
		s.mu.Unlock()

		s.bus.Publish(domain.WarmupCompletedEvent{Failures: failures})
	}()

	return nil
}

// Stop cancels any ongoing warm-up and waits for it to finish
func (s *service) Stop() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// warm fetches each kind of reference data concurrently and publishes an
// event as each one lands. Returns the number of kinds that failed.
func (s *service) warm(ctx context.Context) int {
	var mu sync.Mutex
	failures := 0

	fail := func(kind string, err error) {
		mu.Lock()
		failures++
		mu.Unlock()
		log.Printf("Warm-up fetch for %s failed: %v", kind, err)
	}

	g := new(errgroup.Group)

	g.Go(func() error {
		roles, err := s.client.ListRoles(ctx)
		if err != nil {
			fail("roles", err)
			return nil
		}
		s.bus.Publish(domain.ReferenceDataLoadedEvent{Kind: "roles", Count: len(roles)})
		return nil
	})

	g.Go(func() error {
		schedules, err := s.client.ListPayslipSchedules(ctx)
		if err != nil {
			fail("schedules", err)
			return nil
		}
		s.bus.Publish(domain.ReferenceDataLoadedEvent{Kind: "schedules", Count: len(schedules)})
		return nil
	})

	g.Go(func() error {
		_, err := s.client.GetSubscription(ctx)
		if err != nil {
			fail("subscription", err)
			return nil
		}
		s.bus.Publish(domain.ReferenceDataLoadedEvent{Kind: "subscription", Count: 1})
		return nil
	})

	g.Wait()
	return failures
}
