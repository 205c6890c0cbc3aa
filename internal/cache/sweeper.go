package cache

import (
	"context"
	"time"

	"github.com/bassista/dockhand/internal/logger"
)

// StartSweeper runs a goroutine that periodically drops expired entries
// so a cache with a low hit rate does not grow without bound. Returns a
// channel that is closed when the sweeper has stopped.
func StartSweeper(ctx context.Context, store *Store, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	logger.WithComponent("cache").Debugf("starting cache sweeper with interval: %v", interval)
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("cache").Debug("cache sweeper stopped")
				return
			case <-ticker.C:
				if dropped := store.sweep(); dropped > 0 {
					logger.WithComponent("cache").Debugf("cache sweeper dropped %d expired entries", dropped)
				}
			}
		}
	}()
	return done
}
