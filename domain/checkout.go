package domain

// CheckoutStatus tracks one checkout attempt through its state machine:
// IDLE -> VALIDATING -> (CARD_FLOW | COD_FLOW) -> COMPLETED | FAILED.
type CheckoutStatus string

const (
	CheckoutStatusIdle       CheckoutStatus = "IDLE"
	CheckoutStatusValidating CheckoutStatus = "VALIDATING"
	CheckoutStatusCardFlow   CheckoutStatus = "CARD_FLOW"
	CheckoutStatusCODFlow    CheckoutStatus = "COD_FLOW"
	CheckoutStatusCompleted  CheckoutStatus = "COMPLETED"
	CheckoutStatusFailed     CheckoutStatus = "FAILED"
)

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCompleted || s == CheckoutStatusFailed
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether a checkout attempt may move from one
// status to another. Failure is reachable from every non-terminal state
// except IDLE; terminal states have no outgoing transitions.
func CanTransitionTo(from, to CheckoutStatus) bool {
	switch from {
	case CheckoutStatusIdle:
		return to == CheckoutStatusValidating
	case CheckoutStatusValidating:
		return to == CheckoutStatusCardFlow ||
			to == CheckoutStatusCODFlow ||
			to == CheckoutStatusFailed
	case CheckoutStatusCardFlow, CheckoutStatusCODFlow:
		return to == CheckoutStatusCompleted || to == CheckoutStatusFailed
	default:
		return false
	}
}
