package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flickernaut/pkg/adapters/lifecycle"
	"github.com/aretw0/flickernaut/pkg/adapters/memory"
	"github.com/aretw0/flickernaut/pkg/core"
)

func TestSource_EmitsChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := memory.New(nil)
	src := lifecycle.NewSource(backend, core.KeyApplications)
	require.NoError(t, src.Start(ctx))

	require.NoError(t, backend.SetValue(ctx, core.KeySubmenu, true))
	require.NoError(t, backend.SetStringList(ctx, core.KeyApplications, []string{"x"}))

	select {
	case ev := <-src.Events():
		change, ok := ev.(lifecycle.Change)
		require.True(t, ok, "unexpected event %T", ev)
		assert.Equal(t, core.KeyApplications, change.Key)
		assert.Equal(t, "settings changed: applications", change.String())
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestSource_ClosesWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := lifecycle.NewSource(memory.New(nil))
	require.NoError(t, src.Start(ctx))

	cancel()
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
}
