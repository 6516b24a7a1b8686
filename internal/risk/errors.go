package risk

// LimitBreachedError reports that a limit in the chain rejected the order.
// Reason carries the human-readable breach reason used verbatim for
// alerting.
type LimitBreachedError struct {
	Reason string
}

func (e *LimitBreachedError) Error() string {
	return "risk limit breached: " + e.Reason
}

// CircuitBreakerTrippedError reports that a circuit breaker is (or has just
// become) tripped. The breaker stays tripped until administratively reset.
type CircuitBreakerTrippedError struct {
	Reason string
}

func (e *CircuitBreakerTrippedError) Error() string {
	return "circuit breaker tripped: " + e.Reason
}
