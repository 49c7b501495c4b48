package services

import (
	"context"
	"fmt"
	"time"

	"lodge-backend/models"
	"lodge-backend/utils"
)

// PriceService totals a stay night by night. A range spanning two seasons
// with different rates is priced per night, never by stretching one
// season's rate over the whole range.
type PriceService struct {
	seasons *SeasonService
	rules   *PricingRuleService
}

func NewPriceService(seasons *SeasonService, rules *PricingRuleService) *PriceService {
	return &PriceService{seasons: seasons, rules: rules}
}

// CalculateBookingPrice returns the total in cents for the stay, or
// ErrNoPricingRule when any night of the range has no configured rate.
func (s *PriceService) CalculateBookingPrice(ctx context.Context, propertyID uint, checkin, checkout time.Time, mode string, guests int) (int64, error) {
	checkin, checkout = utils.DateOnly(checkin), utils.DateOnly(checkout)
	if !checkin.Before(checkout) {
		return 0, fmt.Errorf("%w: checkin must be before checkout", ErrInvalidParameters)
	}
	if mode == models.ModeDay && guests < 1 {
		return 0, fmt.Errorf("%w: guests_count must be at least 1", ErrInvalidParameters)
	}

	pricingType := models.PricingPerGuestPerDay
	if mode == models.ModeBuyout {
		pricingType = models.PricingBuyoutFixed
	}

	var total int64
	for _, night := range utils.EachNight(checkin, checkout) {
		rule, err := s.ruleForNight(ctx, propertyID, night, mode, pricingType)
		if err != nil {
			return 0, err
		}
		if rule == nil {
			return 0, fmt.Errorf("%w: no %s rate for %s", ErrNoPricingRule, mode, night.Format(utils.DateLayout))
		}
		if mode == models.ModeBuyout {
			total += rule.AmountCents
		} else {
			total += rule.AmountCents * int64(guests)
		}
	}
	return total, nil
}

// ruleForNight resolves the night's season and then the most specific rule
// for it. Nights in a season gap only match any-season rules.
func (s *PriceService) ruleForNight(ctx context.Context, propertyID uint, night time.Time, mode, pricingType string) (*models.PricingRule, error) {
	season, err := s.seasons.ForDate(ctx, propertyID, night)
	if err != nil {
		return nil, err
	}
	q := RuleQuery{
		PropertyID:  propertyID,
		Mode:        mode,
		PricingType: pricingType,
	}
	if season != nil {
		q.SeasonID = &season.ID
	}
	dayClass := utils.DayClassFor(night)
	q.DayClass = &dayClass
	return s.rules.FindMostSpecific(ctx, q)
}
