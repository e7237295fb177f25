package core_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flickernaut/pkg/core"
)

func TestDecodeEntry_Variants(t *testing.T) {
	t.Run("Legacy Editor With Numeric ID", func(t *testing.T) {
		e := core.DecodeEntry(`{"id":3,"name":"Vim","native":["vim"],"supports_files":true}`)
		require.NoError(t, e.Err)
		assert.Equal(t, "3", e.Record.ID)
		assert.Equal(t, core.KindEditor, e.Record.Kind())
		assert.True(t, e.Record.Enabled, "missing enable means enabled")
		assert.True(t, e.Record.Editor.SupportsFiles)
	})

	t.Run("Application", func(t *testing.T) {
		e := core.DecodeEntry(`{"id":"Ab3","appId":"org.foo.desktop","name":"Foo","enable":false,"mimeTypes":["text/*"]}`)
		require.NoError(t, e.Err)
		rec := e.Record
		assert.Equal(t, core.KindApplication, rec.Kind())
		assert.Equal(t, "org.foo.desktop", rec.AppID())
		assert.False(t, rec.Enabled)
		assert.Equal(t, core.PackageNative, rec.Application.PackageType)
		assert.Equal(t, []string{"text/*"}, rec.Application.MimeTypes)
	})

	t.Run("Corrupt", func(t *testing.T) {
		for _, raw := range []string{`not json`, `{"name":"no id"}`, `{"id":"","name":"x"}`} {
			e := core.DecodeEntry(raw)
			assert.True(t, errors.Is(e.Err, core.ErrParse), "%s: got %v", raw, e.Err)
			assert.Equal(t, raw, e.Raw)
		}
	})
}

func TestRecord_EncodeDecodeKeepsVariant(t *testing.T) {
	records := []core.Record{
		{ID: "1", Name: "Code", Enabled: true, Editor: &core.Editor{
			Native: []string{"code"}, Flatpak: []string{"com.visualstudio.code"}, Arguments: []string{"--new-window"},
		}},
		{ID: "xYz", Name: "Files", Enabled: false, Application: &core.Application{
			AppID: "org.gnome.Nautilus.desktop", PackageType: core.PackageFlatpak, Pinned: true, MimeTypes: []string{},
		}},
	}

	blobs, err := core.EncodeRecords(records)
	require.NoError(t, err)
	require.Len(t, blobs, 2)

	var flat map[string]any
	require.NoError(t, json.Unmarshal([]byte(blobs[1]), &flat))
	assert.Equal(t, "org.gnome.Nautilus.desktop", flat["appId"])
	assert.Equal(t, []any{}, flat["mimeTypes"])

	for i, e := range core.DecodeEntries(blobs) {
		require.NoError(t, e.Err)
		assert.Equal(t, records[i], e.Record)
	}
}

func TestRecord_Check(t *testing.T) {
	valid := core.Record{ID: "1", Name: "Code", Editor: &core.Editor{}}
	assert.NoError(t, valid.Check())

	bad := map[string]core.Record{
		"No ID":        {Name: "x", Editor: &core.Editor{}},
		"Blank Name":   {ID: "1", Name: "  ", Editor: &core.Editor{}},
		"No Payload":   {ID: "1", Name: "x"},
		"Two Payloads": {ID: "1", Name: "x", Editor: &core.Editor{}, Application: &core.Application{AppID: "a"}},
		"No AppID":     {ID: "1", Name: "x", Application: &core.Application{}},
	}
	for name, rec := range bad {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, rec.Check(), core.ErrInvalidRecord)
		})
	}
}

func TestRecord_CloneDoesNotAlias(t *testing.T) {
	orig := core.Record{ID: "1", Name: "Code", Editor: &core.Editor{Native: []string{"code"}}}
	clone := orig.Clone()
	clone.Editor.Native[0] = "vim"
	assert.Equal(t, "code", orig.Editor.Native[0])
}
