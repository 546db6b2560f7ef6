package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/formassist/prompt"
	"github.com/tbxark/formassist/record"
)

const sessionNamespace = "formassist:session"

// Session is one conversation: the ordered turns sent to the model and the
// record accumulated from its confirmed replies.
type Session struct {
	Key       string            `json:"key"`
	FormID    string            `json:"form_id"`
	Turns     []*schema.Message `json:"turns"`
	Record    record.Record     `json:"record"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Turns = cloneTurns(s.Turns)
	out.Record = s.Record.Clone()
	return &out
}

func cloneTurns(turns []*schema.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(turns))
	for _, m := range turns {
		if m == nil {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	return out
}

type SessionStoreOption func(*SessionStore)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) SessionStoreOption {
	return func(s *SessionStore) {
		s.now = now
	}
}

// SessionStore owns every Session. Callers only ever see copies; each
// read-modify-write runs under the store mutex so concurrent writers to one
// key never lose an update. turns serializes whole turns per key, and reset
// and expiry wait for it so a session never disappears mid-turn.
type SessionStore struct {
	mu       sync.Mutex
	turns    keyLocks
	store    Store[*Session]
	composer *prompt.Composer
	now      func() time.Time
}

func NewSessionStore(core Cache[*Session], composer *prompt.Composer, opts ...SessionStoreOption) *SessionStore {
	s := &SessionStore{
		turns:    newKeyLocks(),
		store:    NewStore(core, sessionNamespace),
		composer: composer,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func NewMemorySessionStore(composer *prompt.Composer, opts ...SessionStoreOption) *SessionStore {
	return NewSessionStore(NewMemoryCache[*Session](), composer, opts...)
}

// Ensure creates the session seeded with the directive and acknowledgment
// turns if it does not exist yet. It reports whether a session was created.
func (s *SessionStore) Ensure(ctx context.Context, key, formID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check session %q: %w", key, err)
	}
	if exists {
		return false, nil
	}

	now := s.now()
	sess := &Session{
		Key:    key,
		FormID: formID,
		Turns: []*schema.Message{
			schema.UserMessage(s.composer.Compose(formID)),
			schema.AssistantMessage(s.composer.Acknowledgment(formID), nil),
		},
		Record:    record.Record{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Set(ctx, key, sess); err != nil {
		return false, fmt.Errorf("failed to create session %q: %w", key, err)
	}
	slog.Debug("Session created", "session_key", key, "form_id", formID)
	return true, nil
}

func (s *SessionStore) AppendUserTurn(ctx context.Context, key, text string) error {
	return s.update(ctx, key, func(sess *Session) error {
		sess.Turns = append(sess.Turns, schema.UserMessage(text))
		return nil
	})
}

func (s *SessionStore) AppendAssistantTurn(ctx context.Context, key, text string) error {
	return s.update(ctx, key, func(sess *Session) error {
		sess.Turns = append(sess.Turns, schema.AssistantMessage(text, nil))
		return nil
	})
}

// MergeRecord folds fields into the session record; later keys win.
func (s *SessionStore) MergeRecord(ctx context.Context, key string, fields record.Record) error {
	return s.update(ctx, key, func(sess *Session) error {
		merged, err := record.Merge(sess.Record, fields)
		if err != nil {
			return fmt.Errorf("failed to merge record: %w", err)
		}
		sess.Record = merged
		return nil
	})
}

// Get returns a copy of the session.
func (s *SessionStore) Get(ctx context.Context, key string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	return sess.clone(), nil
}

func (s *SessionStore) GetRecord(ctx context.Context, key string) (record.Record, error) {
	sess, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return sess.Record, nil
}

// Transcript returns the full ordered turn list, synthetic turns included.
func (s *SessionStore) Transcript(ctx context.Context, key string) ([]*schema.Message, error) {
	sess, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return sess.Turns, nil
}

// Reset drops the transcript and the record. Missing keys are not an error.
// A turn in flight on key finishes first.
func (s *SessionStore) Reset(ctx context.Context, key string) error {
	unlock := s.lockTurn(key)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Del(ctx, key); err != nil {
		return fmt.Errorf("failed to reset session %q: %w", key, err)
	}
	return nil
}

// lockTurn holds key for one whole turn.
func (s *SessionStore) lockTurn(key string) func() {
	return s.turns.lock(key)
}

func (s *SessionStore) Keys(ctx context.Context) ([]string, error) {
	return s.store.Keys(ctx)
}

func (s *SessionStore) load(ctx context.Context, key string) (*Session, error) {
	sess, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %q: %w", key, err)
	}
	if !ok || sess == nil {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, key)
	}
	return sess, nil
}

func (s *SessionStore) update(ctx context.Context, key string, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	sess := stored.clone()
	if err := fn(sess); err != nil {
		return err
	}
	sess.UpdatedAt = s.now()
	if err := s.store.Set(ctx, key, sess); err != nil {
		return fmt.Errorf("failed to save session %q: %w", key, err)
	}
	return nil
}
