package services

import (
	"time"

	"lodge-backend/models"
)

// nightOccupancy are the per-night facts derived from existing bookings.
// The advisory availability index and the authoritative locker both read
// occupancy through this one function so the two cannot drift apart.
type nightOccupancy struct {
	DayGuests int
	HasBuyout bool
	HasAny    bool
}

func occupancyForNight(bookings []models.Booking, night time.Time) nightOccupancy {
	var occ nightOccupancy
	for _, b := range bookings {
		if !b.Occupies() || !b.CoversNight(night) {
			continue
		}
		occ.HasAny = true
		switch b.Mode {
		case models.ModeBuyout:
			occ.HasBuyout = true
		default:
			occ.DayGuests += b.GuestsCount
		}
	}
	return occ
}

// admitNight decides whether a request for one night fits given the night's
// occupancy. It returns nil to admit, ErrInsufficientCapacity for a
// per-guest shortfall and ErrPropertyUnavailable for a blocked buyout or a
// blacked-out night.
func admitNight(occ nightOccupancy, blackedOut bool, mode string, guests, capacity int) error {
	if mode == models.ModeBuyout {
		if blackedOut || occ.HasAny {
			return ErrPropertyUnavailable
		}
		return nil
	}
	if blackedOut || occ.HasBuyout || occ.DayGuests+guests > capacity {
		return ErrInsufficientCapacity
	}
	return nil
}
