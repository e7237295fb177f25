// Package memory provides an in-process settings backend.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/flickernaut/pkg/core"
)

// Backend implements core.Settings with a map. It is meant for tests and
// for hosts that persist settings themselves.
type Backend struct {
	schema core.Schema
	subs   core.Subscriptions

	mu     sync.RWMutex
	values map[string]any

	// FailWrites makes every write return this error, to exercise
	// persistence failure paths.
	FailWrites error
}

// New creates an empty backend using schema (DefaultSchema when nil).
func New(schema core.Schema) *Backend {
	if schema == nil {
		schema = core.DefaultSchema()
	}
	return &Backend{
		schema: schema,
		values: make(map[string]any),
	}
}

func (b *Backend) StringList(ctx context.Context, key string) ([]string, error) {
	v, err := b.Value(ctx, key)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]string)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a string list", core.ErrTypeMismatch, key)
	}
	return list, nil
}

func (b *Backend) SetStringList(ctx context.Context, key string, values []string) error {
	return b.SetValue(ctx, key, values)
}

func (b *Backend) Value(ctx context.Context, key string) (any, error) {
	v, ok, err := b.UserValue(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		return v, nil
	}
	return b.schema.Default(key)
}

func (b *Backend) SetValue(ctx context.Context, key string, value any) error {
	v, err := b.schema.Coerce(key, value)
	if err != nil {
		return err
	}
	if b.FailWrites != nil {
		return b.FailWrites
	}

	b.mu.Lock()
	b.values[key] = v
	b.mu.Unlock()

	b.subs.Fire(key)
	return nil
}

func (b *Backend) UserValue(ctx context.Context, key string) (any, bool, error) {
	if !b.schema.Has(key) {
		return nil, false, fmt.Errorf("%w: %s", core.ErrUnknownKey, key)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[key]
	if list, isList := v.([]string); isList {
		return slices.Clone(list), ok, nil
	}
	return v, ok, nil
}

func (b *Backend) Reset(ctx context.Context, key string) error {
	if !b.schema.Has(key) {
		return fmt.Errorf("%w: %s", core.ErrUnknownKey, key)
	}
	if b.FailWrites != nil {
		return b.FailWrites
	}

	b.mu.Lock()
	_, had := b.values[key]
	delete(b.values, key)
	b.mu.Unlock()

	if had {
		b.subs.Fire(key)
	}
	return nil
}

func (b *Backend) Keys() []string {
	return b.schema.Keys()
}

func (b *Backend) Subscribe(key string, fn func(key string)) func() {
	return b.subs.Add(key, fn)
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "memory"
}

var _ core.Settings = (*Backend)(nil)
