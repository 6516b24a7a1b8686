package events

// Event enumerates high-level topics inside the risk core.
type Event string

const (
	EventPriceTick      Event = "price_tick"
	EventOrderSubmitted Event = "order.submitted"
	EventOrderFilled    Event = "order.filled"
	EventRiskAlert      Event = "risk_alert"
	EventBreakerTripped Event = "breaker.tripped"
)
