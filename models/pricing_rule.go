package models

import "time"

// Booking modes.
const (
	ModeDay    = "day"
	ModeBuyout = "buyout"
)

// Pricing types.
const (
	PricingPerGuestPerDay = "per_guest_per_day"
	PricingBuyoutFixed    = "buyout_fixed"
)

// Day classes for the day_class scope dimension.
const (
	DayClassWeekday = "weekday"
	DayClassWeekend = "weekend"
)

// PricingRule prices one mode for a property. A nil scope field means the
// rule applies to any value of that dimension; the resolver picks the rule
// with the most non-nil scope fields among the candidates that match.
//
// A mode is bookable for a season only if at least one rule matches it;
// absence of rules silently disables the mode.
type PricingRule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"column:property_id;index" json:"property_id"`

	SeasonID    *uint   `gorm:"column:season_id;index" json:"season_id,omitempty"`
	MemberLevel *string `gorm:"column:member_level;size:32" json:"member_level,omitempty"`
	DayClass    *string `gorm:"column:day_class;size:16" json:"day_class,omitempty"`

	Mode        string `gorm:"column:mode;size:16;index" json:"mode"`
	PricingType string `gorm:"column:pricing_type;size:32" json:"pricing_type"`

	// AmountCents is per guest-night for per_guest_per_day rules and per
	// night for buyout_fixed rules.
	AmountCents int64 `gorm:"column:amount_cents" json:"amount_cents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
