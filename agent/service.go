package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tbxark/formassist/record"
	"github.com/tbxark/formassist/speech"
)

var errNoTranscriber = errors.New("speech-to-text is not configured")

// Service is the caller-facing surface shared by the HTTP server and the CLI.
type Service struct {
	engine      *Engine
	transcriber speech.Transcriber
}

// NewService wires the engine with an optional transcriber.
func NewService(engine *Engine, transcriber speech.Transcriber) *Service {
	return &Service{
		engine:      engine,
		transcriber: transcriber,
	}
}

func (s *Service) Engine() *Engine {
	return s.engine
}

// StartOrContinueTurn runs one turn; an empty key means DefaultSessionKey.
func (s *Service) StartOrContinueTurn(ctx context.Context, key, formID, userText string) (*TurnResult, error) {
	if key == "" {
		key = DefaultSessionKey
	}
	return s.engine.HandleTurn(ctx, key, formID, userText)
}

// GetAccumulatedRecord returns everything merged into the session so far.
func (s *Service) GetAccumulatedRecord(ctx context.Context, key string) (record.Record, error) {
	if key == "" {
		key = DefaultSessionKey
	}
	return s.engine.sessions.GetRecord(ctx, key)
}

func (s *Service) ResetSession(ctx context.Context, key string) error {
	if key == "" {
		key = DefaultSessionKey
	}
	if err := s.engine.sessions.Reset(ctx, key); err != nil {
		return err
	}
	slog.Info("Session reset", "session_key", key)
	return nil
}

// TranscribeAudio hands the audio to the speech-to-text capability untouched.
func (s *Service) TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if s.transcriber == nil {
		return "", fmt.Errorf("%w: %w", ErrCapabilityFailure, errNoTranscriber)
	}
	text, err := s.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return "", fmt.Errorf("%w: failed to transcribe audio: %w", ErrCapabilityFailure, err)
	}
	return text, nil
}
