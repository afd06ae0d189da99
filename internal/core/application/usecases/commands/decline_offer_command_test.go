package commands_test

import (
	"testing"

	"repairdispatch/internal/core/application/usecases/commands"
	"repairdispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeclineOfferCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewDeclineOfferCommand(id)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OfferID())
}

func TestNewDeclineOfferCommand_InvalidOfferID(t *testing.T) {
	invalidID := kernel.UUID{}
	_, err := commands.NewDeclineOfferCommand(invalidID)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestDeclineOfferCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.DeclineOfferCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDeclineOfferCommandIsNotConstructed)
}

func TestNewExpireOffersCommand_Validate(t *testing.T) {
	cmd := commands.NewExpireOffersCommand()
	require.NoError(t, cmd.Validate())
}

func TestExpireOffersCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.ExpireOffersCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrExpireOffersCommandIsNotConstructed)
}
