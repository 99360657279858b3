package testutil

import (
	"github.com/hupe1980/strapikit/core"
)

// SessionBuilder helps construct session data with fluent chaining for tests.
// Example:
//
//	data := NewSessionBuilder().JWT("t").User("id", 1).User("username", "ada").Build()
type SessionBuilder struct {
	jwt    string
	user   core.User
	noUser bool
	extra  map[string]any
}

// NewSessionBuilder creates a builder with an empty user object.
func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{user: core.User{}, extra: map[string]any{}}
}

// JWT sets the "jwt" entry (chainable).
func (b *SessionBuilder) JWT(token string) *SessionBuilder { b.jwt = token; return b }

// User sets a field on the embedded user object (chainable).
func (b *SessionBuilder) User(key string, val any) *SessionBuilder {
	b.user[key] = val
	return b
}

// WithoutUser omits the "user" entry entirely (chainable).
func (b *SessionBuilder) WithoutUser() *SessionBuilder { b.noUser = true; return b }

// Set adds an arbitrary top-level entry (chainable).
func (b *SessionBuilder) Set(key string, val any) *SessionBuilder {
	b.extra[key] = val
	return b
}

// Build returns the session data.
func (b *SessionBuilder) Build() core.SessionData {
	d := core.SessionData{}
	for k, v := range b.extra {
		d[k] = v
	}
	if b.jwt != "" {
		d["jwt"] = b.jwt
	}
	if !b.noUser {
		u := make(map[string]any, len(b.user))
		for k, v := range b.user {
			u[k] = v
		}
		d["user"] = u
	}
	return d
}
