package checkout

// State is one step of the checkout flow. The flow moves strictly forward
// through the happy path; failed is reachable from any non-terminal state
// and both redirected and failed are terminal.
type State string

const (
	StateCollectingCart   State = "collecting_cart"
	StateSelectingAddress State = "selecting_address"
	StateQuotingShipping  State = "quoting_shipping"
	StateReadyToPay       State = "ready_to_pay"
	StateSubmitting       State = "submitting"
	StateRedirected       State = "redirected"
	StateFailed           State = "failed"
)

var happyPath = map[State]State{
	StateCollectingCart:   StateSelectingAddress,
	StateSelectingAddress: StateQuotingShipping,
	StateQuotingShipping:  StateReadyToPay,
	StateReadyToPay:       StateSubmitting,
	StateSubmitting:       StateRedirected,
}

// IsValid reports whether the value is a known state.
func (s State) IsValid() bool {
	switch s {
	case StateCollectingCart, StateSelectingAddress, StateQuotingShipping,
		StateReadyToPay, StateSubmitting, StateRedirected, StateFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s State) Terminal() bool {
	return s == StateRedirected || s == StateFailed
}

// CanTransition reports whether moving from s to next is allowed.
func (s State) CanTransition(next State) bool {
	if !s.IsValid() || !next.IsValid() || s.Terminal() {
		return false
	}
	if next == StateFailed {
		return true
	}
	return happyPath[s] == next
}

// Next returns the following happy-path state, ok=false at the end.
func (s State) Next() (State, bool) {
	next, ok := happyPath[s]
	return next, ok
}

func (s State) String() string {
	return string(s)
}
