package session

import (
	"context"
	"time"
)

// janitorInterval is how often idle sessions are checked for eviction.
const janitorInterval = 5 * time.Minute

// StartJanitor periodically evicts sessions idle longer than ttl until the
// context is cancelled. Run it once, from main.
func (s *Store) StartJanitor(ctx context.Context, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.evictIdle(ttl); n > 0 {
					s.logger.Info("evicted idle sessions", "count", n, "remaining", s.Len())
				}
			}
		}
	}()
}
