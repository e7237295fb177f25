package core

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

var discardLogger = slog.New(slog.DiscardHandler)

// defaultIDAttempts bounds GenerateID retries when a candidate is taken.
const defaultIDAttempts = 16

// Notifier is told after every successful write.
type Notifier interface {
	NotifyAll()
}

// StoreConfig holds the collaborators of a Store.
type StoreConfig struct {
	Settings Settings
	Logger   *slog.Logger
	Notifier Notifier    // Optional.
	IDs      IDGenerator // Defaults to RandomIDs.
	// Key is the settings key holding the record list. Defaults to KeyApplications.
	Key string
}

// Store owns the record collection. The settings backend is the only
// source of truth: every read decodes the stored list and every write
// replaces it whole.
type Store struct {
	settings  Settings
	logger    *slog.Logger
	notifier  Notifier
	ids       IDGenerator
	key       string
	validator *Validator

	mu     sync.RWMutex
	writes int
}

// NewStore creates a Store over the configured backend.
func NewStore(cfg StoreConfig) *Store {
	s := &Store{
		settings: cfg.Settings,
		logger:   cfg.Logger,
		notifier: cfg.Notifier,
		ids:      cfg.IDs,
		key:      cfg.Key,
	}
	if s.logger == nil {
		s.logger = discardLogger
	}
	if s.ids == nil {
		s.ids = RandomIDs{}
	}
	if s.key == "" {
		s.key = KeyApplications
	}
	s.validator = NewValidator(s, s.logger)
	return s
}

// RawEntries returns the stored blobs without decoding them.
func (s *Store) RawEntries(ctx context.Context) ([]string, error) {
	return s.settings.StringList(ctx, s.key)
}

// Load decodes the stored collection. Entries that fail to parse are
// logged and skipped; the rest keep their stored order.
func (s *Store) Load(ctx context.Context) ([]Record, error) {
	raw, err := s.RawEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}

	records := make([]Record, 0, len(raw))
	for _, entry := range DecodeEntries(raw) {
		if entry.Err != nil {
			s.logger.Warn("skipping record entry", "key", s.key, "entry", entry.Raw, "error", entry.Err)
			continue
		}
		records = append(records, entry.Record)
	}
	return records, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id string) (Record, bool, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return Record{}, false, err
	}
	idx := slices.IndexFunc(records, func(r Record) bool { return r.ID == id })
	if idx < 0 {
		return Record{}, false, nil
	}
	return records[idx], true, nil
}

// Add appends rec unless a record with the same id, or the same external
// application id, is already stored. It reports whether rec was added.
// Text fields are stored normalized, whatever form the caller passed.
func (s *Store) Add(ctx context.Context, rec Record) (bool, error) {
	rec = rec.normalized()
	if err := rec.Check(); err != nil {
		return false, err
	}

	records, err := s.Load(ctx)
	if err != nil {
		return false, err
	}

	appID := rec.AppID()
	if slices.ContainsFunc(records, func(r Record) bool {
		return r.ID == rec.ID || (appID != "" && r.AppID() == appID)
	}) {
		s.logger.Debug("add ignored, record already present", "id", rec.ID, "app_id", appID)
		return false, nil
	}

	if err := s.persist(ctx, append(records, rec)); err != nil {
		return false, err
	}
	s.logger.Debug("record added", "id", rec.ID, "kind", rec.Kind())
	return true, nil
}

// Remove drops the record with the given id. The collection is written back
// even when no record matched.
func (s *Store) Remove(ctx context.Context, id string) error {
	records, err := s.Load(ctx)
	if err != nil {
		return err
	}
	records = slices.DeleteFunc(records, func(r Record) bool { return r.ID == id })
	if err := s.persist(ctx, records); err != nil {
		return err
	}
	s.logger.Debug("record removed", "id", id)
	return nil
}

// Update replaces the stored record sharing rec's id, keeping its position.
// A missing id is not an error: it reports false and writes nothing.
func (s *Store) Update(ctx context.Context, rec Record) (bool, error) {
	rec = rec.normalized()
	if err := rec.Check(); err != nil {
		return false, err
	}

	records, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	idx := slices.IndexFunc(records, func(r Record) bool { return r.ID == rec.ID })
	if idx < 0 {
		s.logger.Debug("update ignored, record not found", "id", rec.ID)
		return false, nil
	}

	records[idx] = rec
	if err := s.persist(ctx, records); err != nil {
		return false, err
	}
	s.logger.Debug("record updated", "id", rec.ID)
	return true, nil
}

// GenerateID returns an id not used by any stored record.
func (s *Store) GenerateID(ctx context.Context) (string, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(records))
	for _, r := range records {
		taken[r.ID] = true
	}
	isTaken := func(id string) bool { return taken[id] }

	for range defaultIDAttempts {
		id := s.ids.NextID(isTaken)
		if id != "" && !taken[id] {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

// Validate checks a field value against the other stored records.
func (s *Store) Validate(ctx context.Context, value, ownerID string, field Field) ValidationResult {
	return s.validator.Validate(ctx, value, ownerID, field)
}

// Submenu reports whether launchers are grouped under a submenu.
func (s *Store) Submenu(ctx context.Context) (bool, error) {
	v, err := s.settings.Value(ctx, KeySubmenu)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", KeySubmenu, err)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s holds %T", ErrTypeMismatch, KeySubmenu, v)
	}
	return b, nil
}

// SetSubmenu stores the submenu flag.
func (s *Store) SetSubmenu(ctx context.Context, enabled bool) error {
	if err := s.settings.SetValue(ctx, KeySubmenu, enabled); err != nil {
		s.logger.Error("failed to persist submenu flag", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.changed()
	return nil
}

// Subscribe calls fn whenever the record list changes in the backend,
// including writes made by other processes when the backend watches for them.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	return s.settings.Subscribe(s.key, func(string) { fn() })
}

func (s *Store) persist(ctx context.Context, records []Record) error {
	blobs, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	if err := s.settings.SetStringList(ctx, s.key, blobs); err != nil {
		s.logger.Error("failed to persist records", "key", s.key, "error", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.changed()
	return nil
}

func (s *Store) changed() {
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.NotifyAll()
	}
}
