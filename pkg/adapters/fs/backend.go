// Package fs implements core.Settings on top of a single YAML document.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/flickernaut/pkg/core"
)

// DefaultFileName is the settings document created inside a settings directory.
const DefaultFileName = "settings.yaml"

// Config holds the configuration for the filesystem backend.
type Config struct {
	Path      string // Path to the YAML document.
	Logger    *slog.Logger
	Schema    core.Schema // Defaults to core.DefaultSchema.
	MustExist bool        // Fail Initialize when the document is missing.
	ReadOnly  bool
	// ErrorHandler receives watcher failures that would otherwise only be logged.
	ErrorHandler func(error)
}

// Backend implements core.Settings with a YAML file. The file is read on
// every access and rewritten atomically on every write; nothing is cached
// except the snapshot used to detect external changes.
type Backend struct {
	Path   string
	config Config
	schema core.Schema
	subs   core.Subscriptions

	// mu serializes read-modify-write cycles on the document.
	mu sync.Mutex

	stateMu       sync.RWMutex
	seen          map[string]any
	watcherActive bool
	lastReload    *time.Time
}

// NewBackend creates a filesystem-backed settings store.
func NewBackend(config Config) *Backend {
	if config.Schema == nil {
		config.Schema = core.DefaultSchema()
	}
	return &Backend{
		Path:   config.Path,
		config: config,
		schema: config.Schema,
		seen:   make(map[string]any),
	}
}

// Initialize checks the document is usable and records its current values.
func (b *Backend) Initialize(ctx context.Context) error {
	info, err := os.Stat(b.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if b.config.MustExist {
			return fmt.Errorf("settings file does not exist: %s", b.Path)
		}
	case err != nil:
		return fmt.Errorf("failed to stat settings file: %w", err)
	case info.IsDir():
		return fmt.Errorf("settings path is a directory: %s", b.Path)
	}

	doc, err := b.read()
	if err != nil {
		return err
	}
	b.remember(doc)
	return nil
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

func (b *Backend) UserValue(ctx context.Context, key string) (any, bool, error) {
	if !b.schema.Has(key) {
		return nil, false, fmt.Errorf("%w: %s", core.ErrUnknownKey, key)
	}

	b.mu.Lock()
	doc, err := b.read()
	b.mu.Unlock()
	if err != nil {
		return nil, false, err
	}

	raw, ok := doc[key]
	if !ok {
		return nil, false, nil
	}
	v, err := b.coerce(key, raw)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (b *Backend) SetValue(ctx context.Context, key string, value any) error {
	v, err := b.schema.Coerce(key, value)
	if err != nil {
		return err
	}
	return b.mutate(key, func(doc map[string]any) bool {
		doc[key] = v
		return true
	})
}

func (b *Backend) Reset(ctx context.Context, key string) error {
	if !b.schema.Has(key) {
		return fmt.Errorf("%w: %s", core.ErrUnknownKey, key)
	}
	return b.mutate(key, func(doc map[string]any) bool {
		if _, ok := doc[key]; !ok {
			return false
		}
		delete(doc, key)
		return true
	})
}

func (b *Backend) Keys() []string {
	return b.schema.Keys()
}

func (b *Backend) Subscribe(key string, fn func(key string)) func() {
	return b.subs.Add(key, fn)
}

// mutate applies fn to a fresh copy of the document and writes it back
// when fn reports a change. Subscribers of key are notified afterwards.
func (b *Backend) mutate(key string, fn func(doc map[string]any) bool) error {
	if b.config.ReadOnly {
		return core.ErrReadOnly
	}

	b.mu.Lock()
	doc, err := b.read()
	if err != nil {
		b.mu.Unlock()
		return err
	}
	if !fn(doc) {
		b.mu.Unlock()
		return nil
	}
	if err := b.write(doc); err != nil {
		b.mu.Unlock()
		return err
	}
	b.remember(doc)
	b.mu.Unlock()

	b.subs.Fire(key)
	return nil
}

// read loads the document. A missing file is an empty document.
func (b *Backend) read() (map[string]any, error) {
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	doc := make(map[string]any)
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid settings document %s: %w", b.Path, err)
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, nil
}

func (b *Backend) write(doc map[string]any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return writeAtomic(b.Path, data, 0o644)
}

// coerce converts a decoded YAML value to the schema type of key.
// Hand-edited string lists may hold items YAML parsed as mappings or
// numbers; those are re-encoded as JSON text so each item stays its own
// entry and a single bad item cannot hide the rest of the list.
func (b *Backend) coerce(key string, raw any) (any, error) {
	items, ok := raw.([]any)
	if !ok || b.schema[key].Type != core.TypeStringList {
		return b.schema.Coerce(key, raw)
	}

	list := make([]string, 0, len(items))
	for i, item := range items {
		if str, ok := item.(string); ok {
			list = append(list, str)
			continue
		}
		text, err := json.Marshal(item)
		if err != nil {
			text = []byte(fmt.Sprint(item))
		}
		if b.config.Logger != nil {
			b.config.Logger.Debug("non-string list item re-encoded", "key", key, "index", i, "item", string(text))
		}
		list = append(list, string(text))
	}
	return list, nil
}

// remember stores the coerced schema values of doc for change detection.
func (b *Backend) remember(doc map[string]any) {
	snapshot := make(map[string]any, len(b.schema))
	for key := range b.schema {
		if raw, ok := doc[key]; ok {
			if v, err := b.coerce(key, raw); err == nil {
				snapshot[key] = v
			}
		}
	}

	b.stateMu.Lock()
	b.seen = snapshot
	b.stateMu.Unlock()
}

// changedKeys returns the schema keys whose value in doc differs from the
// last remembered snapshot.
func (b *Backend) changedKeys(doc map[string]any) []string {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()

	var changed []string
	for _, key := range b.schema.Keys() {
		var current any
		if raw, ok := doc[key]; ok {
			if v, err := b.coerce(key, raw); err == nil {
				current = v
			}
		}
		if !reflect.DeepEqual(current, b.seen[key]) {
			changed = append(changed, key)
		}
	}
	return changed
}

var _ core.Settings = (*Backend)(nil)
