package commands_test

import (
	"testing"

	"statusflow/internal/core/application/usecases/commands"
	"statusflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResyncEntitiesCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewResyncEntitiesCommand(4)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, 4, cmd.Concurrency())
}

func TestNewResyncEntitiesCommand_OutOfRange(t *testing.T) {
	for _, n := range []int{0, -1, commands.MaxResyncConcurrency + 1} {
		_, err := commands.NewResyncEntitiesCommand(n)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	}
}

func TestResyncEntitiesCommand_NotConstructed(t *testing.T) {
	cmd := commands.ResyncEntitiesCommand{}
	assert.ErrorIs(t, cmd.Validate(), commands.ErrResyncEntitiesCommandIsNotConstructed)
}
