package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Kind identifies the payload variant carried by a Record.
type Kind string

const (
	KindEditor      Kind = "editor"
	KindApplication Kind = "application"
)

// PackageType classifies how an application was installed.
type PackageType string

const (
	PackageNative   PackageType = "Native"
	PackageFlatpak  PackageType = "Flatpak"
	PackageAppImage PackageType = "AppImage"
)

// Record is one configured launcher entry.
// Exactly one of Editor or Application is set.
type Record struct {
	ID      string
	Name    string
	Enabled bool

	Editor      *Editor
	Application *Application
}

// Editor is the payload of a manually configured editor slot.
type Editor struct {
	Native        []string
	Flatpak       []string
	Arguments     []string
	SupportsFiles bool
}

// Application is the payload of an entry picked from the installed desktop applications.
type Application struct {
	AppID           string
	Icon            string
	PackageType     PackageType
	Pinned          bool
	MultipleFiles   bool
	MultipleFolders bool
	MimeTypes       []string
}

// Kind reports the payload variant, or "" when the record has none.
func (r Record) Kind() Kind {
	switch {
	case r.Application != nil:
		return KindApplication
	case r.Editor != nil:
		return KindEditor
	default:
		return ""
	}
}

// AppID returns the external application identifier, if any.
func (r Record) AppID() string {
	if r.Application == nil {
		return ""
	}
	return r.Application.AppID
}

// Check verifies the structural invariants every stored record must hold.
func (r Record) Check() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	if NormalizeScalar(r.Name) == "" {
		return fmt.Errorf("%w: record %s has an empty name", ErrInvalidRecord, r.ID)
	}
	if (r.Editor == nil) == (r.Application == nil) {
		return fmt.Errorf("%w: record %s must carry exactly one payload", ErrInvalidRecord, r.ID)
	}
	if r.Application != nil && strings.TrimSpace(r.Application.AppID) == "" {
		return fmt.Errorf("%w: application %s has no appId", ErrInvalidRecord, r.ID)
	}
	return nil
}

// Clone returns a deep copy so callers can rebuild a record without aliasing stored slices.
func (r Record) Clone() Record {
	out := r
	if r.Editor != nil {
		e := *r.Editor
		e.Native = slices.Clone(e.Native)
		e.Flatpak = slices.Clone(e.Flatpak)
		e.Arguments = slices.Clone(e.Arguments)
		out.Editor = &e
	}
	if r.Application != nil {
		a := *r.Application
		a.MimeTypes = slices.Clone(a.MimeTypes)
		out.Application = &a
	}
	return out
}

// normalized returns a deep copy with every text field in its stored form:
// scalars trimmed, token lists collapsed and blank lists dropped.
func (r Record) normalized() Record {
	out := r.Clone()
	out.ID = strings.TrimSpace(out.ID)
	out.Name = NormalizeScalar(out.Name)
	if e := out.Editor; e != nil {
		e.Native = normalizeTokens(e.Native)
		e.Flatpak = normalizeTokens(e.Flatpak)
		e.Arguments = normalizeTokens(e.Arguments)
	}
	if a := out.Application; a != nil {
		a.AppID = NormalizeScalar(a.AppID)
		a.Icon = NormalizeScalar(a.Icon)
		a.MimeTypes = normalizeTokens(a.MimeTypes)
	}
	return out
}

// normalizeTokens renormalizes a token list. A list holding only
// whitespace becomes nil rather than a single empty token.
func normalizeTokens(tokens []string) []string {
	text := ListToDisplay(tokens)
	if text == "" {
		return nil
	}
	return NormalizeToList(text)
}

// --- Wire format ---

// wireID accepts both the string ids of applications and the numeric ids
// written by the legacy editor schema.
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = wireID(n.String())
	return nil
}

type editorWire struct {
	ID            wireID   `json:"id"`
	Name          string   `json:"name"`
	Enable        *bool    `json:"enable,omitempty"`
	Native        []string `json:"native,omitempty"`
	Flatpak       []string `json:"flatpak,omitempty"`
	Arguments     []string `json:"arguments,omitempty"`
	SupportsFiles bool     `json:"supports_files"`
}

type applicationWire struct {
	ID              wireID      `json:"id"`
	AppID           string      `json:"appId"`
	Name            string      `json:"name"`
	Icon            string      `json:"icon"`
	Pinned          bool        `json:"pinned"`
	MultipleFiles   bool        `json:"multipleFiles"`
	MultipleFolders bool        `json:"multipleFolders"`
	PackageType     PackageType `json:"packageType"`
	MimeTypes       []string    `json:"mimeTypes"`
	Enable          *bool       `json:"enable,omitempty"`
}

// MarshalJSON encodes the record as a flat object in the layout of its variant.
func (r Record) MarshalJSON() ([]byte, error) {
	enable := r.Enabled
	switch {
	case r.Application != nil:
		a := r.Application
		mimes := a.MimeTypes
		if mimes == nil {
			mimes = []string{}
		}
		return json.Marshal(applicationWire{
			ID:              wireID(r.ID),
			AppID:           a.AppID,
			Name:            r.Name,
			Icon:            a.Icon,
			Pinned:          a.Pinned,
			MultipleFiles:   a.MultipleFiles,
			MultipleFolders: a.MultipleFolders,
			PackageType:     a.PackageType,
			MimeTypes:       mimes,
			Enable:          &enable,
		})
	case r.Editor != nil:
		e := r.Editor
		return json.Marshal(editorWire{
			ID:            wireID(r.ID),
			Name:          r.Name,
			Enable:        &enable,
			Native:        e.Native,
			Flatpak:       e.Flatpak,
			Arguments:     e.Arguments,
			SupportsFiles: e.SupportsFiles,
		})
	default:
		return nil, fmt.Errorf("%w: record %s has no payload", ErrInvalidRecord, r.ID)
	}
}

// UnmarshalJSON decodes either variant. Blobs carrying an "appId" key are
// applications, everything else is an editor.
func (r *Record) UnmarshalJSON(data []byte) error {
	var probe struct {
		AppID *string `json:"appId"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if probe.AppID != nil {
		var w applicationWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		pkg := w.PackageType
		if pkg == "" {
			pkg = PackageNative
		}
		*r = Record{
			ID:      string(w.ID),
			Name:    w.Name,
			Enabled: enabled(w.Enable),
			Application: &Application{
				AppID:           w.AppID,
				Icon:            w.Icon,
				PackageType:     pkg,
				Pinned:          w.Pinned,
				MultipleFiles:   w.MultipleFiles,
				MultipleFolders: w.MultipleFolders,
				MimeTypes:       w.MimeTypes,
			},
		}
		return nil
	}

	var w editorWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Record{
		ID:      string(w.ID),
		Name:    w.Name,
		Enabled: enabled(w.Enable),
		Editor: &Editor{
			Native:        w.Native,
			Flatpak:       w.Flatpak,
			Arguments:     w.Arguments,
			SupportsFiles: w.SupportsFiles,
		},
	}
	return nil
}

func enabled(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

// Entry is the decode result of one persisted blob.
// Err is non-nil (wrapping ErrParse) when the blob was unusable.
type Entry struct {
	Raw    string
	Record Record
	Err    error
}

// DecodeEntry parses a single persisted blob.
func DecodeEntry(raw string) Entry {
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Entry{Raw: raw, Err: fmt.Errorf("%w: %v", ErrParse, err)}
	}
	if strings.TrimSpace(rec.ID) == "" {
		return Entry{Raw: raw, Err: fmt.Errorf("%w: missing id", ErrParse)}
	}
	return Entry{Raw: raw, Record: rec}
}

// DecodeEntries parses every blob independently, preserving order.
func DecodeEntries(raw []string) []Entry {
	entries := make([]Entry, 0, len(raw))
	for _, blob := range raw {
		entries = append(entries, DecodeEntry(blob))
	}
	return entries
}

// EncodeRecords serializes each record into its own blob.
func EncodeRecords(records []Record) ([]string, error) {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to encode record %s: %w", rec.ID, err)
		}
		out = append(out, string(data))
	}
	return out, nil
}
