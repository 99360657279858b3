package graphql

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Failure stages reported in TransportError.Op.
const (
	OpTransport = "transport"
	OpDecode    = "decode"
	OpNotify    = "notify"
)

// Location is a line/column reference into the request document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is a single entry of a GraphQL "errors" list.
type Error struct {
	Message    string         `json:"message"`
	Locations  []Location     `json:"locations,omitempty"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// UnmarshalJSON decodes an error entry. A message that is not a JSON string
// is kept as its raw JSON text, and an entry that is not an object becomes
// the message itself, so every entry still yields a notification.
func (e *Error) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		*e = Error{Message: messageText(b)}
		return nil
	}
	type plain Error
	var aux struct {
		plain
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = Error(aux.plain)
	e.Message = messageText(aux.Message)
	return nil
}

func messageText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	return string(raw)
}

// ResponseError is returned when the endpoint answered with a non-empty
// errors list.
type ResponseError struct {
	Errors []Error
	// Raw is the serialized errors list as received.
	Raw json.RawMessage
}

// Error returns the serialized errors list.
func (e *ResponseError) Error() string {
	if len(e.Raw) > 0 {
		return string(e.Raw)
	}
	b, _ := json.Marshal(e.Errors)
	return string(b)
}

// Messages returns the message of every error in order.
func (e *ResponseError) Messages() []string {
	out := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		out[i] = ge.Message
	}
	return out
}

// TransportError reports a failure while sending the request, decoding the
// response or notifying the user.
type TransportError struct {
	Op       string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("graphql %s %s: %v", e.Op, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsResponseError reports whether err carries GraphQL-reported errors.
func IsResponseError(err error) bool {
	var re *ResponseError
	return errors.As(err, &re)
}

// IsTransportError reports whether err is a transport, decode or notify failure.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// ErrorsOf folds an error returned by Send into a single "errors" value:
// the errors list for a *ResponseError, the underlying cause for a
// *TransportError and err itself otherwise. It returns nil for a nil error.
func ErrorsOf(err error) any {
	if err == nil {
		return nil
	}
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Errors
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Err
	}
	return err
}
