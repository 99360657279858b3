package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hupe1980/strapikit/core"
	"github.com/hupe1980/strapikit/logging"
	"github.com/hupe1980/strapikit/storage"
)

// Slot keys owned by Store.
const (
	UserKey    = "user"
	SessionKey = "session"
	PostKey    = "post"
)

// StorageSessionKey is the durable storage key holding the serialized session.
const StorageSessionKey = "session"

// Options configures a Store.
type Options struct {
	// Registry holding the slots. Defaults to a fresh registry; pass a shared
	// one to let several stores (or other code) observe the same slots.
	Registry *Registry
	// Logger defaults to NoOpLogger if nil.
	Logger logging.Logger
}

// Store owns the user, session and current-post slots. Session writes are
// persisted to the configured core.Storage before memory is updated.
type Store struct {
	reg     *Registry
	durable core.Storage
	logger  logging.Logger
}

// New constructs a Store persisting sessions to durable. A nil durable
// falls back to an in-memory backend.
func New(durable core.Storage, optFns ...func(o *Options)) *Store {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if durable == nil {
		durable = storage.NewInMemoryStore()
	}
	return &Store{reg: opts.Registry, durable: durable, logger: logging.OrNoOp(opts.Logger)}
}

var (
	defaultStore     *Store
	defaultStoreOnce sync.Once
)

// Default returns a process-wide Store backed by in-memory storage. It is
// created on first use. Prefer constructing a Store explicitly.
func Default() *Store {
	defaultStoreOnce.Do(func() {
		defaultStore = New(nil)
	})
	return defaultStore
}

// Registry returns the registry backing the store.
func (s *Store) Registry() *Registry { return s.reg }

// Storage returns the durable backend.
func (s *Store) Storage() core.Storage { return s.durable }

// UserSlot returns the live user slot, registering it with an empty user on
// first use.
func (s *Store) UserSlot() *Slot[core.User] {
	return Use(s.reg, UserKey, func() core.User { return core.User{} })
}

// SessionSlot returns the live session slot, registering it as pending on
// first use.
func (s *Store) SessionSlot() *Slot[core.Session] {
	return Use(s.reg, SessionKey, core.NewSession)
}

// PostSlot returns the live current-post slot, registering it with an empty
// post on first use.
func (s *Store) PostSlot() *Slot[core.Post] {
	return Use(s.reg, PostKey, func() core.Post { return core.Post{} })
}

// GetUser returns the current user. Before any write this is an empty user.
func (s *Store) GetUser() core.User { return s.UserSlot().Get() }

// SetUser replaces the current user. The last write wins; values are not merged.
func (s *Store) SetUser(u core.User) { s.UserSlot().Set(u) }

// GetSession returns the current session value.
func (s *Store) GetSession() core.Session { return s.SessionSlot().Get() }

// SetSession persists data under StorageSessionKey, then marks the session
// resolved with data and mirrors data's user into the user slot (nil when
// data carries no user). When the durable write fails the in-memory state is
// left untouched.
func (s *Store) SetSession(ctx context.Context, data core.SessionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.durable.Set(ctx, StorageSessionKey, raw); err != nil {
		s.logger.Error("Persisting session failed", "error", err)
		return fmt.Errorf("persist session: %w", err)
	}

	s.SessionSlot().Update(func(sess *core.Session) {
		sess.Pending = false
		sess.Data = data
	})
	s.SetUser(data.User())

	s.logger.Debug("Session updated", "has_user", data.User() != nil)
	return nil
}

// LoadPersisted reads the session last written by SetSession from durable
// storage. The in-memory slots are not touched. core.ErrNotFound is returned
// when no session was persisted.
func (s *Store) LoadPersisted(ctx context.Context) (core.SessionData, error) {
	raw, err := s.durable.Get(ctx, StorageSessionKey)
	if err != nil {
		return nil, err
	}
	var data core.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return data, nil
}

// ClearSession removes the persisted session and resets the session and user
// slots to their defaults.
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.durable.Delete(ctx, StorageSessionKey); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.SessionSlot().Set(core.NewSession())
	s.SetUser(core.User{})
	return nil
}

// GetPost returns the currently viewed post.
func (s *Store) GetPost() core.Post { return s.PostSlot().Get() }

// SetPost replaces the currently viewed post.
func (s *Store) SetPost(p core.Post) { s.PostSlot().Set(p) }
