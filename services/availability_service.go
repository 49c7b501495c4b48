package services

import (
	"context"
	"fmt"
	"time"

	"lodge-backend/utils"
)

// DayAvailability are the advisory facts for one night, meant for display.
// They can be stale the moment they are read; the locker re-derives the
// same facts authoritatively before committing anything.
type DayAvailability struct {
	Date           time.Time `json:"date"`
	SpotsAvailable int       `json:"spots_available"`
	IsBlackedOut   bool      `json:"is_blacked_out"`
	CanBookBuyout  bool      `json:"can_book_buyout"`
}

// AvailabilityService computes read-only per-night occupancy facts without
// taking any lock.
type AvailabilityService struct {
	properties PropertyRepository
	bookings   BookingRepository
	blackouts  BlackoutRepository
}

func NewAvailabilityService(properties PropertyRepository, bookings BookingRepository, blackouts BlackoutRepository) *AvailabilityService {
	return &AvailabilityService{properties: properties, bookings: bookings, blackouts: blackouts}
}

// DailyAvailability returns one entry per night of [start, end), in order.
func (s *AvailabilityService) DailyAvailability(ctx context.Context, propertyID uint, start, end time.Time) ([]DayAvailability, error) {
	start, end = utils.DateOnly(start), utils.DateOnly(end)
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidParameters)
	}

	property, err := s.properties.PropertyByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	}
	if property == nil {
		return nil, fmt.Errorf("%w: unknown property %d", ErrInvalidParameters, propertyID)
	}

	bookings, err := s.bookings.BookingsOverlapping(ctx, propertyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	blackouts, err := s.blackouts.BlackoutsInRange(ctx, propertyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load blackouts: %w", err)
	}
	blackedOut := make(map[time.Time]bool, len(blackouts))
	for _, b := range blackouts {
		blackedOut[utils.DateOnly(b.Date)] = true
	}

	capacity := property.Capacity()
	var days []DayAvailability
	for _, night := range utils.EachNight(start, end) {
		occ := occupancyForNight(bookings, night)
		spots := capacity - occ.DayGuests
		if occ.HasBuyout || spots < 0 {
			spots = 0
		}
		days = append(days, DayAvailability{
			Date:           night,
			SpotsAvailable: spots,
			IsBlackedOut:   blackedOut[night],
			CanBookBuyout:  !occ.HasAny,
		})
	}
	return days, nil
}
