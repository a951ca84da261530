package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStates() []order.State {
	return []order.State{
		order.StateCreated,
		order.StatePaid,
		order.StateInFulfillment,
		order.StateClosed,
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    order.State
		expected string
	}{
		{order.StateCreated, "CREATED"},
		{order.StatePaid, "PAID"},
		{order.StateInFulfillment, "IN_FULFILLMENT"},
		{order.StateClosed, "CLOSED"},
		{order.StateUnknown, "UNKNOWN"},
		{order.State(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestParseState(t *testing.T) {
	t.Run("parses every wire representation", func(t *testing.T) {
		for _, state := range allStates() {
			parsed, err := order.ParseState(state.String())
			require.NoError(t, err)
			assert.Equal(t, state, parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		for _, input := range []string{"", "UNKNOWN", "created", "SHIPPED"} {
			_, err := order.ParseState(input)
			require.Error(t, err, "input %q", input)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestState_Validate(t *testing.T) {
	for _, state := range allStates() {
		assert.NoError(t, state.Validate(), state.String())
	}

	require.Error(t, order.StateUnknown.Validate())
	require.Error(t, order.State(42).Validate())
}

func TestState_CanChangeTo(t *testing.T) {
	valid := map[order.State]order.State{
		order.StateCreated: order.StatePaid,
		order.StatePaid:    order.StateInFulfillment,
	}

	// Exhaust the full (from, to) grid: exactly the two table entries pass.
	for _, from := range allStates() {
		for _, to := range allStates() {
			expected := valid[from] == to
			assert.Equal(t, expected, from.CanChangeTo(to),
				"from %s to %s", from, to)
		}
	}
}

func TestState_CanClose(t *testing.T) {
	for _, from := range allStates() {
		assert.Equal(t, from == order.StateInFulfillment, from.CanClose(), from.String())
	}
}

func TestParseFulfillmentResult(t *testing.T) {
	t.Run("parses every wire representation", func(t *testing.T) {
		for _, result := range []order.FulfillmentResult{order.NoResult, order.Success, order.Failure} {
			parsed, err := order.ParseFulfillmentResult(result.String())
			require.NoError(t, err)
			assert.Equal(t, result, parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := order.ParseFulfillmentResult("MAYBE")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestFulfillmentResult_String(t *testing.T) {
	assert.Equal(t, "NO_RESULT", order.NoResult.String())
	assert.Equal(t, "SUCCESS", order.Success.String())
	assert.Equal(t, "FAILURE", order.Failure.String())
	assert.Equal(t, "NO_RESULT", order.FulfillmentResult(42).String())
}

func TestFulfillmentResult_Validate(t *testing.T) {
	assert.NoError(t, order.NoResult.Validate())
	assert.NoError(t, order.Success.Validate())
	assert.NoError(t, order.Failure.Validate())
	require.Error(t, order.FulfillmentResult(42).Validate())
}
