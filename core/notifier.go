package core

import "context"

// Notifier surfaces a message to the user, for example a blocking dialog or a
// line on a terminal. A nil Notifier means no notification capability is
// available; callers skip notifications silently in that case.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// NotifierFunc adapts an ordinary function to the Notifier interface.
type NotifierFunc func(ctx context.Context, message string) error

// Notify calls f(ctx, message).
func (f NotifierFunc) Notify(ctx context.Context, message string) error {
	return f(ctx, message)
}
