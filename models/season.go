package models

import "time"

// Season is an admin-managed date range for a property. Ranges never overlap
// for the same property; gaps between seasons are allowed. StartDate and
// EndDate are both inclusive calendar dates.
type Season struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"column:property_id;index" json:"property_id"`
	Label      string    `gorm:"column:label;size:100" json:"label"`
	StartDate  time.Time `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate    time.Time `gorm:"column:end_date;type:date" json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Contains reports whether the given calendar date falls inside the season.
func (s Season) Contains(date time.Time) bool {
	return !date.Before(s.StartDate) && !date.After(s.EndDate)
}
