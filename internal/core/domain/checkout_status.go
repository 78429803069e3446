package domain

type CheckoutStatus string

const (
	CheckoutStatusValidating CheckoutStatus = "VALIDATING"
	CheckoutStatusPricing    CheckoutStatus = "PRICING"
	CheckoutStatusCharging   CheckoutStatus = "CHARGING"
	CheckoutStatusPersisting CheckoutStatus = "PERSISTING"
	CheckoutStatusCompleted  CheckoutStatus = "COMPLETED"
	CheckoutStatusFailed     CheckoutStatus = "FAILED"
)

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCompleted || s == CheckoutStatusFailed
}

// CanTransitionTo reports whether the pipeline may move from s to
// next. Any non-terminal status may fail; forward progress is strictly
// one stage at a time.
func (s CheckoutStatus) CanTransitionTo(next CheckoutStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == CheckoutStatusFailed {
		return true
	}
	switch s {
	case CheckoutStatusValidating:
		return next == CheckoutStatusPricing
	case CheckoutStatusPricing:
		return next == CheckoutStatusCharging
	case CheckoutStatusCharging:
		return next == CheckoutStatusPersisting
	case CheckoutStatusPersisting:
		return next == CheckoutStatusCompleted
	}
	return false
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}
