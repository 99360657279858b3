package graphql

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseError_Error(t *testing.T) {
	withRaw := &ResponseError{Errors: []Error{{Message: "a"}}, Raw: []byte(`[{"message":"a"}]`)}
	assert.Equal(t, `[{"message":"a"}]`, withRaw.Error())

	withoutRaw := &ResponseError{Errors: []Error{{Message: "b", Path: []any{"posts", 0}}}}
	assert.JSONEq(t, `[{"message":"b","path":["posts",0]}]`, withoutRaw.Error())
}

func TestTransportError_Wrapping(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("query posts: %w", &TransportError{Op: OpTransport, Endpoint: "http://x", Err: cause})

	assert.True(t, IsTransportError(err))
	assert.False(t, IsResponseError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, ErrorsOf(err))
	assert.Contains(t, err.Error(), "graphql transport http://x: dial tcp: refused")
}

func TestError_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Error
	}{
		{"full", `{"message":"boom","locations":[{"line":1,"column":2}],"path":["post"],"extensions":{"code":"FORBIDDEN"}}`,
			Error{Message: "boom", Locations: []Location{{Line: 1, Column: 2}}, Path: []any{"post"}, Extensions: map[string]any{"code": "FORBIDDEN"}}},
		{"numeric message", `{"message":42}`, Error{Message: "42"}},
		{"null message", `{"message":null}`, Error{}},
		{"missing message", `{"path":["a"]}`, Error{Path: []any{"a"}}},
		{"bare string", `"denied"`, Error{Message: "denied"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Error
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}
