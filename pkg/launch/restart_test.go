package launch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCommandRestarter_Default(t *testing.T) {
	r := NewCommandRestarter(nil, nil)
	assert.Equal(t, DefaultRestartCommand, r.Command)
	assert.NotNil(t, r.Logger)
}

func TestCommandRestarter_Restart(t *testing.T) {
	r := NewCommandRestarter([]string{"true"}, nil)
	assert.NoError(t, r.Restart(context.Background()))

	missing := NewCommandRestarter([]string{"flickernaut-no-such-binary"}, nil)
	assert.Error(t, missing.Restart(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Restart(ctx), context.Canceled)
}

func TestStart_EmptyArgv(t *testing.T) {
	assert.Error(t, Start(Invocation{ID: "x"}, nil))
}
