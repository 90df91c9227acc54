package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_CRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Put(ctx, "k", []byte("v1")))
	require.NoError(t, m.Put(ctx, "k", []byte("v2")))
	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v2", string(got))
	assert.Equal(t, 2, m.Writes())

	info, ok, err := m.Stat(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, info.Revision)
	assert.Equal(t, 2, info.Size)

	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	buf := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", buf))
	buf[0] = 'x'

	got, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(got))
	got[1] = 'y'

	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemory_SetDoesNotCountWrite(t *testing.T) {
	m := NewMemory()
	m.Set("k", []byte("seed"))
	assert.Equal(t, 0, m.Writes())

	got, ok, _ := m.Get(context.Background(), "k")
	assert.True(t, ok)
	assert.Equal(t, "seed", string(got))
}
