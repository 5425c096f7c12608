package checkout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHappyPathTransitions(t *testing.T) {
	order := []State{
		StateCollectingCart,
		StateSelectingAddress,
		StateQuotingShipping,
		StateReadyToPay,
		StateSubmitting,
		StateRedirected,
	}
	for i := 0; i < len(order)-1; i++ {
		require.True(t, order[i].CanTransition(order[i+1]),
			"%s -> %s must be allowed", order[i], order[i+1])
	}
}

func TestNoSkippingOrBacktracking(t *testing.T) {
	require.False(t, StateCollectingCart.CanTransition(StateQuotingShipping))
	require.False(t, StateCollectingCart.CanTransition(StateRedirected))
	require.False(t, StateQuotingShipping.CanTransition(StateSelectingAddress))
	require.False(t, StateReadyToPay.CanTransition(StateCollectingCart))
}

func TestFailedReachableFromAnyNonTerminal(t *testing.T) {
	for _, s := range []State{
		StateCollectingCart, StateSelectingAddress, StateQuotingShipping,
		StateReadyToPay, StateSubmitting,
	} {
		require.True(t, s.CanTransition(StateFailed), "%s -> failed must be allowed", s)
	}
}

func TestTerminalStatesAllowNothing(t *testing.T) {
	for _, terminal := range []State{StateRedirected, StateFailed} {
		require.True(t, terminal.Terminal())
		for _, next := range []State{
			StateCollectingCart, StateSelectingAddress, StateQuotingShipping,
			StateReadyToPay, StateSubmitting, StateRedirected, StateFailed,
		} {
			require.False(t, terminal.CanTransition(next),
				"%s -> %s must be rejected", terminal, next)
		}
	}
}

func TestInvalidStates(t *testing.T) {
	require.False(t, State("paying").IsValid())
	require.False(t, StateReadyToPay.CanTransition(State("paying")))
	require.False(t, State("paying").CanTransition(StateFailed))
}
