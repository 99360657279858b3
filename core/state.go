package core

// User is an opaque user record as returned by the backend. The zero value
// (nil) means "no user"; the state store defaults to an empty, non-nil map.
type User map[string]any

// Post is an opaque record describing the currently viewed post.
type Post map[string]any

// SessionData is the opaque payload of an authenticated session. By
// convention it carries a "user" object and usually a "jwt" token.
type SessionData map[string]any

// User returns the "user" entry of the session data. It returns nil when the
// entry is absent or is not an object.
func (d SessionData) User() User {
	switch u := d["user"].(type) {
	case User:
		return u
	case map[string]any:
		return User(u)
	default:
		return nil
	}
}

// Token returns the "jwt" entry of the session data or an empty string.
func (d SessionData) Token() string {
	s, _ := d["jwt"].(string)
	return s
}

// Clone returns a shallow copy of the session data.
func (d SessionData) Clone() SessionData {
	if d == nil {
		return nil
	}
	clone := make(SessionData, len(d))
	for k, v := range d {
		clone[k] = v
	}
	return clone
}

// Session tracks whether a session has been resolved and, once it has, the
// session payload.
//
// Contract:
//   - Pending starts true and becomes false exactly when a session is set
//   - Data starts nil and is assigned together with Pending.
type Session struct {
	Pending bool        `json:"pending"`
	Data    SessionData `json:"data"`
}

// NewSession returns the initial, unresolved session value.
func NewSession() Session {
	return Session{Pending: true, Data: nil}
}
