package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"staffdeck/internal/domain"
	"staffdeck/internal/eventbus"
)

// Session is the explicit application context for one authenticated user:
// token, identity, language and the capability flags resolved once at
// session start. Pages receive it by injection; there is no ambient
// singleton to reach for.
type Session struct {
	Token        string
	User         domain.User
	Capabilities domain.CapabilitySet
	StartedAt    time.Time
}

// Can reports whether the current user holds a capability
func (s *Session) Can(c domain.Capability) bool {
	if s == nil {
		return false
	}
	return s.Capabilities.Has(c)
}

// Begin resolves the server's permission keys into a typed capability set
// and announces the session on the bus. Unknown keys are logged and
// dropped rather than carried as strings.
func Begin(token string, user domain.User, permissionKeys []string, bus eventbus.EventBus) *Session {
	caps, unknown := domain.NewCapabilitySet(permissionKeys)
	for _, key := range unknown {
		log.Printf("Ignoring unknown permission key from server: %q", key)
	}

	sess := &Session{
		Token:        token,
		User:         user,
		Capabilities: caps,
		StartedAt:    time.Now(),
	}

	if bus != nil {
		bus.Publish(domain.SessionStartedEvent{User: user, Capabilities: caps})
	}
	return sess
}

// End tears the session down and announces it
func End(bus eventbus.EventBus) {
	if bus != nil {
		bus.Publish(domain.SessionEndedEvent{})
	}
}

// saved is the on-disk shape. Capabilities are deliberately not persisted:
// they are re-resolved from the server on every session start.
type saved struct {
	Token    string      `json:"token"`
	User     domain.User `json:"user"`
	SavedAt  time.Time   `json:"saved_at"`
	Language string      `json:"language"`
}

// Store persists the token between console runs
type Store struct {
	filePath string
}

// NewStore creates a session store in the user config dir
func NewStore() *Store {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "staffdeck")
	os.MkdirAll(appDir, 0700)

	return &Store{filePath: filepath.Join(appDir, "session.json")}
}

// NewStoreAt creates a session store at a specific path
func NewStoreAt(path string) *Store {
	return &Store{filePath: path}
}

// Load returns the persisted token and user, or (nil, nil) when no
// session is stored.
func (s *Store) Load() (token string, user *domain.User, err error) {
	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sv saved
	if err := json.Unmarshal(data, &sv); err != nil {
		return "", nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if sv.Token == "" {
		return "", nil, nil
	}
	return sv.Token, &sv.User, nil
}

// Save persists the session token and user
func (s *Store) Save(sess *Session) error {
	data, err := json.MarshalIndent(saved{
		Token:    sess.Token,
		User:     sess.User,
		SavedAt:  time.Now(),
		Language: sess.User.Language,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session (logout)
func (s *Store) Clear() error {
	err := os.Remove(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
