package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, kiterr.ExitSuccess, ExitCode(nil))
	assert.Equal(t, kiterr.ExitInput, ExitCode(kiterr.ErrInvalidArgument))
	assert.Equal(t, kiterr.ExitState, ExitCode(kiterr.ErrNotConnected))
	assert.Equal(t, kiterr.ExitNotFound, ExitCode(kiterr.ErrAgentNotFound))
	assert.Equal(t, kiterr.ExitGeneral, ExitCode(errors.New("plain")))
}

func TestVersionCommand(t *testing.T) {
	isolateState(t)

	stdout, err := execute(t, "version", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "walletkit")
}

func TestUnknownCommand(t *testing.T) {
	isolateState(t)

	_, err := execute(t, "no-such-command")
	require.Error(t, err)
}
