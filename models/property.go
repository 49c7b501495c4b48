package models

import "time"

// DefaultMaxGuestsPerNight is the shared-occupancy ceiling applied when a
// property row does not override it.
const DefaultMaxGuestsPerNight = 12

type Property struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"column:code;uniqueIndex;size:50" json:"code"`
	Name string `gorm:"column:name;size:255" json:"name"`

	MaxGuestsPerNight  int `gorm:"column:max_guests_per_night;default:12" json:"max_guests_per_night"`
	BookingHorizonDays int `gorm:"column:booking_horizon_days;default:365" json:"booking_horizon_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Capacity returns the per-night guest ceiling for the property.
func (p Property) Capacity() int {
	if p.MaxGuestsPerNight > 0 {
		return p.MaxGuestsPerNight
	}
	return DefaultMaxGuestsPerNight
}
