package platform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flickernaut/internal/platform"
	"github.com/aretw0/flickernaut/pkg/adapters/memory"
	"github.com/aretw0/flickernaut/pkg/core"
	"github.com/aretw0/flickernaut/pkg/notify"
)

func noRestart() platform.Option {
	return platform.WithRestarter(notify.RestarterFunc(func(context.Context) error { return nil }))
}

func TestOpen_CreatesAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "settings.yaml")

	session, err := platform.Open(path, noRestart())
	require.NoError(t, err)
	defer session.Close()

	ctx := context.Background()
	v, ok, err := session.Settings.UserValue(ctx, core.KeySettingsVersion)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, core.SchemaVersion, v)

	_, err = os.Stat(path)
	assert.NoError(t, err, "migration should have written the settings file")
}

func TestOpen_EndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	session, err := platform.Open(path, noRestart())
	require.NoError(t, err)
	defer session.Close()

	ctx := context.Background()
	store := session.Store

	added, err := store.Add(ctx, core.Record{
		ID: "a1", Name: "Code", Enabled: true,
		Editor: &core.Editor{Native: []string{"code"}},
	})
	require.NoError(t, err)
	require.True(t, added)

	updated, err := store.Update(ctx, core.Record{
		ID: "a1", Name: "Code", Enabled: true,
		Editor: &core.Editor{Native: []string{"code", "--wait"}},
	})
	require.NoError(t, err)
	require.True(t, updated)

	// A second session over the same file sees the update.
	other, err := platform.Open(path, noRestart())
	require.NoError(t, err)
	defer other.Close()

	records, err := other.Store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"code", "--wait"}, records[0].Editor.Native)

	require.NoError(t, store.Remove(ctx, "a1"))
	records, err = other.Store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpen_WritesNotifyObservers(t *testing.T) {
	session, err := platform.Open("", platform.WithSettings(memory.New(nil)), noRestart())
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.Store.SetSubmenu(context.Background(), true))
	assert.True(t, session.Notifier.Pending())
}

func TestOpen_ReadOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	empty, err := platform.Open(path, platform.WithReadOnly(true), noRestart())
	require.NoError(t, err)
	records, err := empty.Store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	empty.Close()
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist), "read-only open must not create the file")

	require.NoError(t, os.WriteFile(path, []byte("settings-version: 1\neditors:\n  - '{\"id\":1}'\n"), 0o644))

	session, err := platform.Open(path, platform.WithReadOnly(true), noRestart())
	require.NoError(t, err)
	defer session.Close()

	ctx := context.Background()
	v, _, err := session.Settings.UserValue(ctx, core.KeySettingsVersion)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v, "read-only sessions never migrate")

	err = session.Store.Remove(ctx, "x")
	assert.True(t, errors.Is(err, core.ErrReadOnly), "got %v", err)
}

func TestOpen_MustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "settings.yaml")
	_, err := platform.Open(missing, platform.WithMustExist(true), noRestart())
	assert.Error(t, err)
}
