package core

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// Settings keys.
const (
	KeyApplications    = "applications"
	KeySettingsVersion = "settings-version"
	KeySubmenu         = "submenu"

	// KeyEditors held the editor list before schema version 2.
	KeyEditors = "editors"
)

// ValueType is the type signature of a settings key.
type ValueType string

const (
	TypeStringList ValueType = "as"
	TypeUint       ValueType = "u"
	TypeBool       ValueType = "b"
)

// KeySpec describes one key of the schema.
type KeySpec struct {
	Type    ValueType
	Default any
}

// Schema maps keys to their type and default value.
type Schema map[string]KeySpec

// DefaultSchema returns the schema shipped with the extension.
func DefaultSchema() Schema {
	return Schema{
		KeyApplications:    {Type: TypeStringList, Default: []string{}},
		KeySettingsVersion: {Type: TypeUint, Default: uint32(0)},
		KeySubmenu:         {Type: TypeBool, Default: false},
		KeyEditors:         {Type: TypeStringList, Default: []string{}},
	}
}

// Keys returns the schema keys in a stable order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key is part of the schema.
func (s Schema) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Default returns a copy of the default value of key.
func (s Schema) Default(key string) (any, error) {
	ks, ok := s[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if list, ok := ks.Default.([]string); ok {
		return slices.Clone(list), nil
	}
	return ks.Default, nil
}

// Coerce converts value to the canonical Go type of key:
// []string for "as", uint32 for "u" and bool for "b".
// Backends decoding loosely typed documents rely on this to normalize
// numbers and lists before handing them out.
func (s Schema) Coerce(key string, value any) (any, error) {
	ks, ok := s[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	switch ks.Type {
	case TypeStringList:
		switch v := value.(type) {
		case []string:
			return slices.Clone(v), nil
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				str, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%w: %s expects strings, got %T", ErrTypeMismatch, key, item)
				}
				out = append(out, str)
			}
			return out, nil
		case nil:
			return []string{}, nil
		}
	case TypeUint:
		if n, ok := toUint32(value); ok {
			return n, nil
		}
	case TypeBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s (%s) cannot hold %T", ErrTypeMismatch, key, ks.Type, value)
}

func toUint32(value any) (uint32, bool) {
	var n int64
	switch v := value.(type) {
	case uint32:
		return v, true
	case uint:
		if v > math.MaxUint32 {
			return 0, false
		}
		return uint32(v), true
	case uint64:
		if v > math.MaxUint32 {
			return 0, false
		}
		return uint32(v), true
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		n = int64(v)
	default:
		return 0, false
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}
