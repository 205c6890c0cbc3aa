package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetAndGet(t *testing.T) {
	s := NewStore()

	err := s.Set("key", map[string]int{"a": 1}, time.Minute)
	assert.NoError(t, err)

	raw, ok := s.Get("key")
	assert.True(t, ok)

	var decoded map[string]int
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 1, decoded["a"])
}

func TestStore_GetMissing(t *testing.T) {
	s := NewStore()
	raw, ok := s.Get("absent")
	assert.False(t, ok)
	assert.Nil(t, raw)
}

func TestStore_ExpiredEntryIsMiss(t *testing.T) {
	s := NewStore()
	assert.NoError(t, s.Set("key", "value", -time.Second))

	_, ok := s.Get("key")
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	s := NewStore()
	assert.NoError(t, s.Set("key", "value", time.Minute))

	s.Delete("key")
	_, ok := s.Get("key")
	assert.False(t, ok)

	// deleting again is a no-op
	s.Delete("key")
}

func TestStore_SetOverwrites(t *testing.T) {
	s := NewStore()
	assert.NoError(t, s.Set("key", "old", time.Minute))
	assert.NoError(t, s.Set("key", "new", time.Minute))

	raw, ok := s.Get("key")
	assert.True(t, ok)
	assert.JSONEq(t, `"new"`, string(raw))
	assert.Equal(t, 1, s.Len())
}

func TestStore_SetUnmarshalable(t *testing.T) {
	s := NewStore()
	err := s.Set("key", func() {}, time.Minute)
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestStore_Sweep(t *testing.T) {
	s := NewStore()
	assert.NoError(t, s.Set("fresh", 1, time.Minute))
	assert.NoError(t, s.Set("stale1", 2, -time.Second))
	assert.NoError(t, s.Set("stale2", 3, -time.Second))

	dropped := s.sweep()
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 1, s.Len())

	_, ok := s.Get("fresh")
	assert.True(t, ok)
}
