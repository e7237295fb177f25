package core

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
)

// Field names a record field that can be validated.
// The value is the key the field uses in the stored blob.
type Field string

const (
	FieldName      Field = "name"
	FieldNative    Field = "native"
	FieldFlatpak   Field = "flatpak"
	FieldAppID     Field = "appId"
	FieldArguments Field = "arguments"
	FieldMimeTypes Field = "mimeTypes"
)

// checksDuplicates reports whether two records may not share a value of f.
func (f Field) checksDuplicates() bool {
	switch f {
	case FieldName, FieldNative, FieldFlatpak, FieldAppID:
		return true
	default:
		return false
	}
}

// ValidationResult is the structured outcome of Validate.
type ValidationResult struct {
	IsValid     bool `json:"isValid"`
	IsDuplicate bool `json:"isDuplicate"`
	IsEmpty     bool `json:"isEmpty"`
}

// EntrySource exposes the raw persisted blobs a Validator scans.
type EntrySource interface {
	RawEntries(ctx context.Context) ([]string, error)
}

// Validator checks candidate field values against sibling records.
type Validator struct {
	source EntrySource
	logger *slog.Logger
}

// NewValidator creates a Validator reading siblings from source.
func NewValidator(source EntrySource, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = discardLogger
	}
	return &Validator{
		source: source,
		logger: logger,
	}
}

// Validate checks value for field on behalf of the record ownerID.
//
// An empty name is invalid; other empty fields are accepted. Non-empty
// values of name and launch target fields are compared with every record
// except ownerID. Blobs Load would skip as corrupt are skipped here too.
func (v *Validator) Validate(ctx context.Context, value, ownerID string, field Field) ValidationResult {
	candidate := NormalizeScalar(value)
	if candidate == "" {
		return ValidationResult{IsValid: field != FieldName, IsEmpty: true}
	}
	if !field.checksDuplicates() {
		return ValidationResult{IsValid: true}
	}

	raw, err := v.source.RawEntries(ctx)
	if err != nil {
		v.logger.Warn("validation scan skipped", "field", field, "error", err)
		return ValidationResult{IsValid: true}
	}

	// A Caser is not safe for concurrent use.
	fold := cases.Fold()
	needle := candidate
	if field == FieldName {
		needle = fold.String(candidate)
	}

	for _, blob := range raw {
		// Entries Load would drop are invisible to the user, so they never collide.
		if !gjson.Valid(blob) || DecodeEntry(blob).Err != nil {
			continue
		}
		if gjson.Get(blob, "id").String() == ownerID {
			continue
		}
		if matches(fold, gjson.Get(blob, string(field)), field, needle) {
			return ValidationResult{IsDuplicate: true}
		}
	}
	return ValidationResult{IsValid: true}
}

func matches(fold cases.Caser, stored gjson.Result, field Field, needle string) bool {
	if !stored.Exists() {
		return false
	}
	switch field {
	case FieldName:
		return fold.String(NormalizeScalar(stored.String())) == needle
	case FieldAppID:
		return stored.String() == needle
	default:
		if !stored.IsArray() {
			return false
		}
		tokens := make([]string, 0, len(stored.Array()))
		for _, t := range stored.Array() {
			tokens = append(tokens, t.String())
		}
		return strings.Join(tokens, " ") == needle
	}
}
