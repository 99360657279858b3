package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionData_User(t *testing.T) {
	d := SessionData{"user": map[string]any{"id": 1}, "jwt": "token"}
	assert.Equal(t, User{"id": 1}, d.User())
	assert.Equal(t, "token", d.Token())

	typed := SessionData{"user": User{"id": 2}}
	assert.Equal(t, User{"id": 2}, typed.User())

	assert.Nil(t, SessionData{}.User())
	assert.Nil(t, SessionData{"user": "not-an-object"}.User())
	assert.Empty(t, SessionData{"jwt": 42}.Token())
}

func TestSessionData_Clone(t *testing.T) {
	d := SessionData{"a": 1}
	clone := d.Clone()
	clone["b"] = 2
	_, exists := d["b"]
	assert.False(t, exists, "original should not have clone's new key")

	var nilData SessionData
	assert.Nil(t, nilData.Clone())
}

func TestNewSession(t *testing.T) {
	s := NewSession()
	assert.True(t, s.Pending)
	assert.Nil(t, s.Data)
}

func TestNotifierFunc(t *testing.T) {
	var got []string
	n := NotifierFunc(func(_ context.Context, msg string) error {
		got = append(got, msg)
		if msg == "fail" {
			return errors.New("boom")
		}
		return nil
	})

	assert.NoError(t, n.Notify(context.Background(), "hello"))
	assert.Error(t, n.Notify(context.Background(), "fail"))
	assert.Equal(t, []string{"hello", "fail"}, got)
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
