package commands_test

import (
	"testing"

	"repairdispatch/internal/core/application/usecases/commands"
	"repairdispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchRequestCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewDispatchRequestCommand(id)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.RequestID())
}

func TestNewDispatchRequestCommand_InvalidRequestID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewDispatchRequestCommand(invalidID)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestDispatchRequestCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.DispatchRequestCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDispatchRequestCommandIsNotConstructed)
}
