package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/tbxark/formassist/extract"
	"github.com/tbxark/formassist/forms"
	"github.com/tbxark/formassist/record"
)

// TurnResult is what the caller sees of one turn. Fields holds only what
// this turn extracted, not the accumulated record.
type TurnResult struct {
	Reply    string        `json:"reply"`
	Complete bool          `json:"complete"`
	Fields   record.Record `json:"fields,omitempty"`
}

// Engine runs one request/response cycle against the language model.
type Engine struct {
	sessions   *SessionStore
	chatModel  model.BaseChatModel
	registry   *forms.Registry
	extractors sync.Map
}

func NewEngine(sessions *SessionStore, chatModel model.BaseChatModel, registry *forms.Registry) *Engine {
	return &Engine{
		sessions:  sessions,
		chatModel: chatModel,
		registry:  registry,
	}
}

func (e *Engine) Sessions() *SessionStore {
	return e.sessions
}

// HandleTurn ensures the session, sends the whole transcript plus userText to
// the model and returns the cleaned reply. Turns on the same key are
// serialized; different keys run in parallel.
func (e *Engine) HandleTurn(ctx context.Context, key, formID, userText string) (*TurnResult, error) {
	ctx = callbacks.EnsureRunInfo(ctx, "FormAssist", "Engine")
	ctx = callbacks.OnStart(ctx, map[string]any{
		"session_key": key,
		"form_id":     formID,
		"input":       userText,
	})

	unlock := e.sessions.lockTurn(key)
	defer unlock()

	result, err := e.runInternal(ctx, key, formID, userText)
	if err != nil {
		callbacks.OnError(ctx, err)
		return nil, err
	}

	callbacks.OnEnd(ctx, map[string]any{
		"reply":    result.Reply,
		"complete": result.Complete,
	})
	return result, nil
}

func (e *Engine) runInternal(ctx context.Context, key, formID, userText string) (*TurnResult, error) {
	created, err := e.sessions.Ensure(ctx, key, formID)
	if err != nil {
		return nil, err
	}
	if created && strings.TrimSpace(userText) == "" {
		slog.Debug("Greeting new session", "session_key", key, "form_id", formID)
		return &TurnResult{Reply: e.registry.Lookup(formID).Greeting}, nil
	}

	if err := e.sessions.AppendUserTurn(ctx, key, userText); err != nil {
		return nil, err
	}
	sess, err := e.sessions.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	slog.Debug("Requesting model reply", "session_key", key, "turns", len(sess.Turns))
	msg, err := e.chatModel.Generate(ctx, sess.Turns)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate reply: %w", ErrCapabilityFailure, err)
	}
	raw := ""
	if msg != nil {
		raw = msg.Content
	}

	if err := e.sessions.AppendAssistantTurn(ctx, key, raw); err != nil {
		return nil, err
	}

	res := e.extractor(sess.FormID).Extract(raw)
	if res.Complete {
		if err := e.sessions.MergeRecord(ctx, key, res.Fields); err != nil {
			return nil, err
		}
		slog.Info("Form record completed",
			"session_key", key,
			"form_id", sess.FormID,
			"strategy", res.Strategy,
			"fields", len(res.Fields),
		)
	}

	return &TurnResult{
		Reply:    res.Clean,
		Complete: res.Complete,
		Fields:   res.Fields,
	}, nil
}

func (e *Engine) extractor(formID string) *extract.Extractor {
	if cached, ok := e.extractors.Load(formID); ok {
		return cached.(*extract.Extractor)
	}
	ex := extract.New(e.registry.Lookup(formID))
	actual, _ := e.extractors.LoadOrStore(formID, ex)
	return actual.(*extract.Extractor)
}
