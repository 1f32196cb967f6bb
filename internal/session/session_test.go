package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdeck/internal/domain"
	"staffdeck/internal/eventbus"
)

func TestBeginResolvesCapabilitiesOnce(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	started := make(chan domain.SessionStartedEvent, 1)
	bus.Subscribe(domain.EventSessionStarted, func(e domain.DomainEvent) {
		if ev, ok := e.(domain.SessionStartedEvent); ok {
			started <- ev
		}
	})

	user := domain.User{ID: "u1", Name: "Admin", CompanyID: "c1"}
	sess := Begin("tok", user, []string{"employees.view", "made.up.key", "leave.approve"}, bus)

	assert.True(t, sess.Can(domain.CapEmployeesView))
	assert.True(t, sess.Can(domain.CapLeaveApprove))
	assert.False(t, sess.Can(domain.CapPayrollManage))

	select {
	case ev := <-started:
		assert.Equal(t, "u1", ev.User.ID)
		assert.True(t, ev.Capabilities.Has(domain.CapEmployeesView))
	case <-time.After(time.Second):
		t.Fatal("SessionStarted event not published")
	}
}

func TestNilSessionHasNoCapabilities(t *testing.T) {
	var sess *Session
	assert.False(t, sess.Can(domain.CapRolesManage))
}

func TestStoreRoundtrip(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))

	sess := &Session{
		Token: "tok-42",
		User:  domain.User{ID: "u1", Name: "Admin", Language: "en"},
	}
	require.NoError(t, store.Save(sess))

	token, user, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-42", token)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
}

func TestStoreLoadWithoutFile(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))

	token, user, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestStoreClear(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(&Session{Token: "tok"}))
	require.NoError(t, store.Clear())

	token, _, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing twice is not an error
	require.NoError(t, store.Clear())
}
