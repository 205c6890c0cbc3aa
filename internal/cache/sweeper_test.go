package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartSweeper_DropsExpiredEntries(t *testing.T) {
	s := NewStore()
	assert.NoError(t, s.Set("stale", 1, -time.Second))
	assert.NoError(t, s.Set("fresh", 2, time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := StartSweeper(ctx, s, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return s.Len() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
