package core

import "context"

// Settings defines the contract for the key-value settings backend.
// Adhering to this interface keeps the store independent of where the
// values live (a file, an in-memory map, a desktop settings daemon).
type Settings interface {
	// StringList returns the list stored under key, or its default.
	StringList(ctx context.Context, key string) ([]string, error)

	// SetStringList replaces the list stored under key.
	SetStringList(ctx context.Context, key string, values []string) error

	// Value returns the effective value of key (user value or default).
	Value(ctx context.Context, key string) (any, error)

	// SetValue writes a user value for key.
	SetValue(ctx context.Context, key string, value any) error

	// UserValue returns the value explicitly written for key, if any.
	UserValue(ctx context.Context, key string) (any, bool, error)

	// Reset drops the user value of key so the default applies again.
	Reset(ctx context.Context, key string) error

	// Keys lists every key the backend schema knows about.
	Keys() []string

	// Subscribe registers fn to be called after key changes.
	// The returned function removes the subscription.
	Subscribe(key string, fn func(key string)) (cancel func())
}
