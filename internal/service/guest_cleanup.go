package service

import (
	"time"

	"memoknot/memo-api/pkg/kvstore"

	"go.uber.org/zap"
)

// GuestCleanup defines a function used to periodically evict guest sessions
// that haven't been touched for longer than ttl
func GuestCleanup(t time.Duration, ttl time.Duration, kv *kvstore.Memory) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Guest cleanup attached", zap.Duration("tick_every", t), zap.Duration("ttl", ttl))

	go func() {
		for range ticker.C {
			if n := kv.EvictIdle(ttl); n > 0 {
				zap.L().Debug("Evicted idle guest entries", zap.Int("count", n))
			}
		}
	}()
}
