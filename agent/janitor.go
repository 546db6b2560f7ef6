package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ExpireCallback is called for every session the janitor removes.
type ExpireCallback func(key string)

// Sweep removes sessions whose last update is older than idle and returns
// how many were removed. A non-positive idle never expires anything.
func (s *SessionStore) Sweep(ctx context.Context, idle time.Duration, onExpire ExpireCallback) (int, error) {
	if idle <= 0 {
		return 0, nil
	}
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	removed := 0
	for _, key := range keys {
		expired, err := s.expireIfIdle(ctx, key, idle)
		if err != nil {
			slog.Warn("Session janitor failed to expire session", "session_key", key, "error", err)
			continue
		}
		if !expired {
			continue
		}
		removed++
		if onExpire != nil {
			onExpire(key)
		}
	}
	return removed, nil
}

// expireIfIdle skips a session whose turn is in flight; it is not idle.
func (s *SessionStore) expireIfIdle(ctx context.Context, key string, idle time.Duration) (bool, error) {
	unlock, ok := s.turns.tryLock(key)
	if !ok {
		return false, nil
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok || sess == nil {
		return false, err
	}
	if s.now().Sub(sess.UpdatedAt) < idle {
		return false, nil
	}
	return true, s.store.Del(ctx, key)
}

// StartJanitor sweeps idle sessions every interval until ctx is done. The
// returned channel is closed once the worker has exited. With a non-positive
// idle or interval no worker is started.
func (s *SessionStore) StartJanitor(ctx context.Context, interval, idle time.Duration, onExpire ExpireCallback) <-chan struct{} {
	done := make(chan struct{})
	if idle <= 0 || interval <= 0 {
		close(done)
		return done
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		slog.Info("Session janitor started", "interval", interval, "idle_ttl", idle)

		for {
			select {
			case <-ticker.C:
				removed, err := s.Sweep(ctx, idle, onExpire)
				if err != nil {
					slog.Error("Session janitor sweep failed", "error", err)
					continue
				}
				if removed > 0 {
					slog.Info("Session janitor expired sessions", "count", removed)
				}
			case <-ctx.Done():
				slog.Info("Session janitor shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
	return done
}
