package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCloseOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	for _, result := range []order.FulfillmentResult{order.Success, order.Failure} {
		cmd, err := commands.NewCloseOrderCommand(id, result)
		require.NoError(t, err)
		assert.Equal(t, id, cmd.OrderID())
		assert.Equal(t, result, cmd.Result())
	}
}

func TestNewCloseOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCloseOrderCommand(invalidID, order.Success)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCloseOrderCommand_NoResultIsRejected(t *testing.T) {
	_, err := commands.NewCloseOrderCommand(kernel.NewUUID(), order.NoResult)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrFulfillmentResultIsInvalid)
}

func TestCloseOrderCommand_NotConstructed(t *testing.T) {
	var cmd commands.CloseOrderCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCloseOrderCommandIsNotConstructed)
}
