package services

import "errors"

// Error kinds surfaced by the reservation core. Controllers match them with
// errors.Is; anything else is an infrastructure failure and propagates
// untranslated so operators notice it.
var (
	// ErrInvalidParameters is the caller's fault and is never retried.
	ErrInvalidParameters = errors.New("invalid_parameters")

	// ErrInsufficientCapacity means a per-guest request did not fit on at
	// least one of its nights.
	ErrInsufficientCapacity = errors.New("insufficient_capacity")

	// ErrPropertyUnavailable means a buyout could not be granted, or the
	// requested mode has no pricing rule configured for the season.
	ErrPropertyUnavailable = errors.New("property_unavailable")

	// ErrStaleInventory is a transient race loss; callers may retry once
	// against freshly fetched availability.
	ErrStaleInventory = errors.New("stale_inventory")

	// ErrNoPricingRule means the admin rule set has no rate for a night of
	// the requested range.
	ErrNoPricingRule = errors.New("no_pricing_rule")
)

var userMessages = map[error]string{
	ErrInvalidParameters:    "The booking request is invalid. Please check your dates and guest count.",
	ErrInsufficientCapacity: "Not enough spots are left on one or more of the selected nights.",
	ErrPropertyUnavailable:  "The property is not available for the selected dates.",
	ErrStaleInventory:       "Availability changed while processing your request. Please try again.",
	ErrNoPricingRule:        "The property is not available for the selected dates.",
}

// UserMessage maps an error kind to its single user-facing message.
func UserMessage(err error) (string, bool) {
	for kind, msg := range userMessages {
		if errors.Is(err, kind) {
			return msg, true
		}
	}
	return "", false
}
