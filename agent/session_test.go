package agent

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/formassist/forms"
	"github.com/tbxark/formassist/prompt"
	"github.com/tbxark/formassist/record"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(opts ...SessionStoreOption) *SessionStore {
	return NewMemorySessionStore(prompt.NewComposer(forms.Builtin()), opts...)
}

func TestEnsureIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	created, err := s.Ensure(ctx, "a", "deposit")
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, s.AppendUserTurn(ctx, "a", "hello"))

	created, err = s.Ensure(ctx, "a", "kyc")
	require.NoError(t, err)
	assert.False(t, created)

	sess, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "deposit", sess.FormID)
	assert.Len(t, sess.Turns, 3)
}

func TestResetThenEnsureStartsFresh(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, err := s.Ensure(ctx, "a", "deposit")
	require.NoError(t, err)
	require.NoError(t, s.AppendUserTurn(ctx, "a", "hello"))
	require.NoError(t, s.AppendAssistantTurn(ctx, "a", "hi"))
	require.NoError(t, s.MergeRecord(ctx, "a", record.Record{"branch_name": "Main"}))

	require.NoError(t, s.Reset(ctx, "a"))
	require.NoError(t, s.Reset(ctx, "a"))
	require.NoError(t, s.Reset(ctx, "never-seen"))

	_, err = s.Ensure(ctx, "a", "deposit")
	require.NoError(t, err)
	sess, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, sess.Turns, 2)
	assert.Empty(t, sess.Record)
}

func TestUnknownSessionOperationsFail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	assert.ErrorIs(t, s.AppendUserTurn(ctx, "nope", "x"), ErrSessionNotFound)
	assert.ErrorIs(t, s.AppendAssistantTurn(ctx, "nope", "x"), ErrSessionNotFound)
	assert.ErrorIs(t, s.MergeRecord(ctx, "nope", record.Record{"a": "1"}), ErrSessionNotFound)
	_, err := s.GetRecord(ctx, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Transcript(ctx, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMergeRecordAccumulates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	_, err := s.Ensure(ctx, "a", "kyc")
	require.NoError(t, err)

	require.NoError(t, s.MergeRecord(ctx, "a", record.Record{"a": "1"}))
	require.NoError(t, s.MergeRecord(ctx, "a", record.Record{"b": "2"}))
	require.NoError(t, s.MergeRecord(ctx, "a", record.Record{"a": "3"}))

	rec, err := s.GetRecord(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, record.Record{"a": "3", "b": "2"}, rec)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	_, err := s.Ensure(ctx, "a", "kyc")
	require.NoError(t, err)
	require.NoError(t, s.MergeRecord(ctx, "a", record.Record{"name": "Ravi"}))

	turns, err := s.Transcript(ctx, "a")
	require.NoError(t, err)
	turns[0].Content = "tampered"
	rec, err := s.GetRecord(ctx, "a")
	require.NoError(t, err)
	rec["name"] = "tampered"

	sess, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", sess.Turns[0].Content)
	assert.Equal(t, "Ravi", sess.Record["name"])
}

func TestConcurrentMergesAreNotLost(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	_, err := s.Ensure(ctx, "a", "kyc")
	require.NoError(t, err)

	var wg sync.WaitGroup
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			assert.NoError(t, s.MergeRecord(ctx, "a", record.Record{k: k}))
		}(k)
	}
	wg.Wait()

	rec, err := s.GetRecord(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, rec, len(keys))
}

func TestSweepExpiresIdleSessions(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)}
	s := newTestStore(WithClock(clock.Now))

	_, err := s.Ensure(ctx, "old", "kyc")
	require.NoError(t, err)
	clock.Advance(20 * time.Minute)
	_, err = s.Ensure(ctx, "fresh", "kyc")
	require.NoError(t, err)
	clock.Advance(15 * time.Minute)

	var expired []string
	removed, err := s.Sweep(ctx, 30*time.Minute, func(key string) { expired = append(expired, key) })
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"old"}, expired)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, keys)

	removed, err = s.Sweep(ctx, 0, nil)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSweepSkipsSessionWithTurnInFlight(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)}
	s := newTestStore(WithClock(clock.Now))
	_, err := s.Ensure(ctx, "busy", "kyc")
	require.NoError(t, err)
	clock.Advance(time.Hour)

	unlock := s.lockTurn("busy")
	removed, err := s.Sweep(ctx, 30*time.Minute, nil)
	require.NoError(t, err)
	assert.Zero(t, removed)
	_, err = s.Get(ctx, "busy")
	require.NoError(t, err)

	unlock()
	removed, err = s.Sweep(ctx, 30*time.Minute, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Empty(t, s.turns.locks)
}

func TestJanitorStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	clock := &fakeClock{now: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)}
	s := newTestStore(WithClock(clock.Now))
	_, err := s.Ensure(context.Background(), "idle", "kyc")
	require.NoError(t, err)
	clock.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	expired := make(chan string, 1)
	done := s.StartJanitor(ctx, 5*time.Millisecond, 30*time.Minute, func(key string) { expired <- key })

	select {
	case key := <-expired:
		assert.Equal(t, "idle", key)
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not expire the idle session")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestJanitorDisabledWithoutTTL(t *testing.T) {
	s := newTestStore()
	done := s.StartJanitor(context.Background(), time.Second, 0, nil)
	_, open := <-done
	assert.False(t, open)
}
