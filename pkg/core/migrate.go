package core

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

// SchemaVersion is the settings layout version written by this module.
const SchemaVersion uint32 = 2

// Migrate upgrades persisted settings to SchemaVersion.
//
// When the stored version is missing or older, the deprecated editors key is
// reset and the new version written. A current or newer version is left
// untouched, so running Migrate repeatedly is harmless.
func Migrate(ctx context.Context, settings Settings, logger *slog.Logger) error {
	if logger == nil {
		logger = discardLogger
	}

	current, err := storedVersion(ctx, settings)
	if err != nil {
		return err
	}
	if current >= SchemaVersion {
		return nil
	}

	if slices.Contains(settings.Keys(), KeyEditors) {
		if err := settings.Reset(ctx, KeyEditors); err != nil {
			return fmt.Errorf("%w: reset %s: %v", ErrPersistence, KeyEditors, err)
		}
	}
	if err := settings.SetValue(ctx, KeySettingsVersion, SchemaVersion); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrPersistence, KeySettingsVersion, err)
	}

	logger.Info("settings migrated", "from", current, "to", SchemaVersion)
	return nil
}

func storedVersion(ctx context.Context, settings Settings) (uint32, error) {
	raw, ok, err := settings.UserValue(ctx, KeySettingsVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", KeySettingsVersion, err)
	}
	if !ok {
		return 0, nil
	}
	v, ok := toUint32(raw)
	if !ok {
		return 0, fmt.Errorf("%w: %s holds %T", ErrTypeMismatch, KeySettingsVersion, raw)
	}
	return v, nil
}
