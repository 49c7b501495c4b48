package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. Pending and complete bookings both occupy inventory;
// cancelled bookings do not.
const (
	StatusPending   = "pending"
	StatusComplete  = "complete"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`
	UserID        uint   `gorm:"column:user_id;index" json:"user_id"`
	PropertyID    uint   `gorm:"column:property_id;index" json:"property_id"`

	// CheckoutDate is exclusive: the checkout date itself is not an
	// occupied night.
	CheckinDate  time.Time `gorm:"column:checkin_date;type:date" json:"checkin_date"`
	CheckoutDate time.Time `gorm:"column:checkout_date;type:date" json:"checkout_date"`

	Mode        string `gorm:"column:mode;size:16" json:"mode"`
	GuestsCount int    `gorm:"column:guests_count" json:"guests_count"`
	Status      string `gorm:"column:status;size:32;index" json:"status"`
	TotalCents  int64  `gorm:"column:total_cents" json:"total_cents"`

	GuestList datatypes.JSON `gorm:"column:guest_list" json:"guest_list,omitempty"`
}

// GuestEntry is the shape stored in the GuestList JSON snapshot.
type GuestEntry struct {
	FullName string `json:"fullName"`
	Type     string `json:"type"`
}

// Occupies reports whether the booking counts against inventory.
func (b Booking) Occupies() bool {
	return b.Status != StatusCancelled
}

// CoversNight reports whether the given calendar date is one of the
// booking's occupied nights.
func (b Booking) CoversNight(night time.Time) bool {
	return !night.Before(b.CheckinDate) && night.Before(b.CheckoutDate)
}
