// Package llm provides the language-model capability: concrete chat backends
// behind eino's model.BaseChatModel and a failback chain across them.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var (
	ErrNoBackends        = errors.New("no language model backends configured")
	ErrAllBackendsFailed = errors.New("all language model backends failed")
)

// Outcome says what the chain does after a backend error.
type Outcome int

const (
	// TryNext moves on to the next backend.
	TryNext Outcome = iota
	// Fatal stops the chain and returns the error as is.
	Fatal
)

// Classifier maps a backend error to an Outcome.
type Classifier func(err error) Outcome

// DefaultClassifier stops on cancellation and deadline errors and tries the
// next backend for anything else (quota, auth, transport).
func DefaultClassifier(err error) Outcome {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Fatal
	}
	return TryNext
}

// Backend is one named model in the chain, typically one provider credential.
type Backend struct {
	Name  string
	Model model.BaseChatModel
}

type FailbackOption func(*Failback)

func WithClassifier(c Classifier) FailbackOption {
	return func(f *Failback) {
		if c != nil {
			f.classify = c
		}
	}
}

// Failback tries backends in order and returns the first success.
type Failback struct {
	backends []Backend
	classify Classifier
}

func NewFailback(backends []Backend, opts ...FailbackOption) *Failback {
	f := &Failback{
		backends: backends,
		classify: DefaultClassifier,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Names lists the backends in the order they are tried.
func (f *Failback) Names() []string {
	names := make([]string, 0, len(f.backends))
	for _, b := range f.backends {
		names = append(names, b.Name)
	}
	return names
}

func (f *Failback) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if len(f.backends) == 0 {
		return nil, ErrNoBackends
	}
	var errs []error
	for _, b := range f.backends {
		msg, err := b.Model.Generate(ctx, input, opts...)
		if err == nil {
			return msg, nil
		}
		err = fmt.Errorf("%s: %w", b.Name, err)
		if f.classify(err) == Fatal {
			return nil, err
		}
		slog.Warn("Language model backend failed, trying next", "backend", b.Name, "error", err)
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("%w: %w", ErrAllBackendsFailed, errors.Join(errs...))
}

func (f *Failback) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	if len(f.backends) == 0 {
		return nil, ErrNoBackends
	}
	var errs []error
	for _, b := range f.backends {
		stream, err := b.Model.Stream(ctx, input, opts...)
		if err == nil {
			return stream, nil
		}
		err = fmt.Errorf("%s: %w", b.Name, err)
		if f.classify(err) == Fatal {
			return nil, err
		}
		slog.Warn("Language model backend failed to stream, trying next", "backend", b.Name, "error", err)
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("%w: %w", ErrAllBackendsFailed, errors.Join(errs...))
}

var _ model.BaseChatModel = (*Failback)(nil)
