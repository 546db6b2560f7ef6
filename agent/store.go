package agent

import (
	"context"
	"errors"
	"strings"
)

var errEmptyKey = errors.New("empty store key")

// Store namespaces a Cache so several kinds of state can share one backend.
type Store[S any] struct {
	core      Cache[S]
	namespace string
}

func NewStore[S any](core Cache[S], namespace string) Store[S] {
	return Store[S]{
		core:      core,
		namespace: namespace,
	}
}

func (c Store[S]) key(key string) (string, error) {
	if key == "" {
		return "", errEmptyKey
	}
	return c.prefix() + key, nil
}

func (c Store[S]) prefix() string {
	return c.namespace + ":"
}

func (c Store[S]) Set(ctx context.Context, key string, val S) error {
	k, err := c.key(key)
	if err != nil {
		return err
	}
	return c.core.Set(ctx, k, val)
}

func (c Store[S]) Get(ctx context.Context, key string) (S, bool, error) {
	k, err := c.key(key)
	if err != nil {
		var zero S
		return zero, false, err
	}
	return c.core.Get(ctx, k)
}

func (c Store[S]) Del(ctx context.Context, key string) error {
	k, err := c.key(key)
	if err != nil {
		return err
	}
	return c.core.Del(ctx, k)
}

func (c Store[S]) Exists(ctx context.Context, key string) (bool, error) {
	k, err := c.key(key)
	if err != nil {
		return false, err
	}
	return c.core.Exists(ctx, k)
}

// Keys lists the un-namespaced keys held by this store.
func (c Store[S]) Keys(ctx context.Context) ([]string, error) {
	raw, err := c.core.Keys(ctx, c.prefix())
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, k := range raw {
		out = append(out, strings.TrimPrefix(k, c.prefix()))
	}
	return out, nil
}
