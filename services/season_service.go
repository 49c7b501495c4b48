package services

import (
	"context"
	"fmt"
	"time"

	"lodge-backend/models"
	"lodge-backend/utils"
)

// SeasonService resolves which admin-managed season covers a date and how
// far ahead a property accepts bookings.
type SeasonService struct {
	properties PropertyRepository
	seasons    SeasonRepository
}

func NewSeasonService(properties PropertyRepository, seasons SeasonRepository) *SeasonService {
	return &SeasonService{properties: properties, seasons: seasons}
}

// ForDate returns the season covering the date, or nil when the date falls
// in a gap between seasons.
func (s *SeasonService) ForDate(ctx context.Context, propertyID uint, date time.Time) (*models.Season, error) {
	date = utils.DateOnly(date)
	seasons, err := s.seasons.SeasonsOverlapping(ctx, propertyID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("load seasons: %w", err)
	}
	for i := range seasons {
		if seasons[i].Contains(date) {
			return &seasons[i], nil
		}
	}
	return nil, nil
}

// SeasonInfo describes the effective season around a reference date.
type SeasonInfo struct {
	Season *models.Season `json:"season,omitempty"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
}

// CurrentSeasonInfo returns the season in effect today together with its
// date range. When today falls in a gap, Season is nil and the range is
// empty.
func (s *SeasonService) CurrentSeasonInfo(ctx context.Context, propertyID uint, today time.Time) (SeasonInfo, error) {
	season, err := s.ForDate(ctx, propertyID, today)
	if err != nil {
		return SeasonInfo{}, err
	}
	if season == nil {
		return SeasonInfo{}, nil
	}
	return SeasonInfo{Season: season, Start: season.StartDate, End: season.EndDate}, nil
}

// MaxBookingHorizon returns the furthest date a checkout may fall on for the
// property.
func (s *SeasonService) MaxBookingHorizon(ctx context.Context, propertyID uint, today time.Time) (time.Time, error) {
	property, err := s.properties.PropertyByID(ctx, propertyID)
	if err != nil {
		return time.Time{}, fmt.Errorf("load property: %w", err)
	}
	if property == nil {
		return time.Time{}, fmt.Errorf("%w: unknown property %d", ErrInvalidParameters, propertyID)
	}
	days := property.BookingHorizonDays
	if days <= 0 {
		days = 365
	}
	return utils.DateOnly(today).AddDate(0, 0, days), nil
}
