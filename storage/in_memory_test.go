package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/strapikit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ core.Storage = (*InMemoryStore)(nil)
	_ core.Storage = (*FileStore)(nil)
)

func TestInMemoryStore_SetGetIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	data := []byte("hello")
	require.NoError(t, s.Set(ctx, "k", data))

	// mutate original slice
	data[0] = 'H'
	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	// mutate returned slice
	out[0] = 'x'
	out2, _ := s.Get(ctx, "k")
	assert.Equal(t, "hello", string(out2))
}

func TestInMemoryStore_NotFoundAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, s.Set(ctx, "a", []byte("1")))
	require.NoError(t, s.Set(ctx, "b", []byte("2")))
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"), "deleting a missing key is not an error")
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, []string{"b"}, s.Keys())
}

func TestInMemoryStore_Concurrency(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%10)
			if err := s.Set(ctx, key, []byte("data")); err != nil {
				t.Errorf("set err: %v", err)
			}
			_, _ = s.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.Keys(), 10)
}
