// Package storage implements the reservation core's repository and
// scoped-section contracts on gorm/MySQL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lodge-backend/models"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) PropertyByID(ctx context.Context, id uint) (*models.Property, error) {
	var p models.Property
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property %d: %w", id, err)
	}
	return &p, nil
}

func (s *Store) PropertyByCode(ctx context.Context, code string) (*models.Property, error) {
	var p models.Property
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property %q: %w", code, err)
	}
	return &p, nil
}

func (s *Store) SeasonsOverlapping(ctx context.Context, propertyID uint, from, to time.Time) ([]models.Season, error) {
	var seasons []models.Season
	err := s.db.WithContext(ctx).
		Where("property_id = ? AND start_date < ? AND end_date >= ?", propertyID, to, from).
		Order("start_date ASC").
		Find(&seasons).Error
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return seasons, nil
}

func (s *Store) RulesForMode(ctx context.Context, propertyID uint, mode, pricingType string) ([]models.PricingRule, error) {
	var rules []models.PricingRule
	err := s.db.WithContext(ctx).
		Where("property_id = ? AND mode = ? AND pricing_type = ?", propertyID, mode, pricingType).
		Order("id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("list pricing rules: %w", err)
	}
	return rules, nil
}

func (s *Store) BlackoutsInRange(ctx context.Context, propertyID uint, from, to time.Time) ([]models.BlackoutDate, error) {
	var blackouts []models.BlackoutDate
	err := s.db.WithContext(ctx).
		Where("property_id = ? AND date >= ? AND date < ?", propertyID, from, to).
		Find(&blackouts).Error
	if err != nil {
		return nil, fmt.Errorf("list blackouts: %w", err)
	}
	return blackouts, nil
}

func (s *Store) BookingsOverlapping(ctx context.Context, propertyID uint, from, to time.Time) ([]models.Booking, error) {
	return bookingsOverlapping(s.db.WithContext(ctx), propertyID, from, to)
}

func (s *Store) BookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).Where("reference_code = ?", reference).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking %q: %w", reference, err)
	}
	return &b, nil
}

func bookingsOverlapping(db *gorm.DB, propertyID uint, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.
		Where("property_id = ? AND status <> ? AND checkin_date < ? AND checkout_date > ?",
			propertyID, models.StatusCancelled, to, from).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
