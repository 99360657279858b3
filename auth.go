package strapikit

import (
	"context"
	"errors"

	"github.com/hupe1980/strapikit/core"
)

// LoginMutation authenticates against the users-permissions plugin.
const LoginMutation = `mutation Login($input: UsersPermissionsLoginInput!) {
  login(input: $input) {
    jwt
    user { id username email }
  }
}`

// ErrEmptyLogin is returned when the login mutation answered without data.
var ErrEmptyLogin = errors.New("login returned no session")

// Login runs LoginMutation and stores the returned {jwt, user} as the
// session. GraphQL errors (wrong credentials) are returned unchanged and
// leave the state untouched.
func (k *Kit) Login(ctx context.Context, identifier, password string) (core.SessionData, error) {
	res, err := Do[struct {
		Login map[string]any `json:"login"`
	}](ctx, k, LoginMutation, map[string]any{
		"input": map[string]any{"identifier": identifier, "password": password},
	})
	if err != nil {
		return nil, err
	}
	if res.Login == nil {
		return nil, ErrEmptyLogin
	}

	data := core.SessionData(res.Login)
	if err := k.state.SetSession(ctx, data); err != nil {
		return nil, err
	}
	k.opts.Logger.Info("Session established", "identifier", identifier)
	return data, nil
}

// Logout clears the persisted and in-memory session.
func (k *Kit) Logout(ctx context.Context) error {
	return k.state.ClearSession(ctx)
}
