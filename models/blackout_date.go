package models

import "time"

// BlackoutDate closes a single night of a property to all bookings. The
// calendar is maintained by an external admin surface; this service only
// reads it.
type BlackoutDate struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"column:property_id;index" json:"property_id"`
	Date       time.Time `gorm:"column:date;type:date" json:"date"`
	Reason     string    `gorm:"column:reason;size:255" json:"reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
