package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"lodge-backend/models"
	"lodge-backend/utils"

	"gorm.io/datatypes"
)

// InventoryService is the only writer of booking rows. Every create runs
// the same protocol: validate, acquire the property's exclusive section,
// re-check each night against freshly read occupancy, then commit or abort
// as a unit. Nothing read before the section is trusted inside it.
type InventoryService struct {
	properties PropertyRepository
	blackouts  BlackoutRepository
	seasons    *SeasonService
	rules      *PricingRuleService
	pricing    *PriceService
	store      InventoryStore

	// now is swapped in tests to pin "today".
	now func() time.Time
}

func NewInventoryService(
	properties PropertyRepository,
	blackouts BlackoutRepository,
	seasons *SeasonService,
	rules *PricingRuleService,
	pricing *PriceService,
	store InventoryStore,
) *InventoryService {
	return &InventoryService{
		properties: properties,
		blackouts:  blackouts,
		seasons:    seasons,
		rules:      rules,
		pricing:    pricing,
		store:      store,
		now:        time.Now,
	}
}

// CreatePerGuestBooking reserves shared-occupancy spots for every night of
// [checkin, checkout).
func (s *InventoryService) CreatePerGuestBooking(ctx context.Context, userID, propertyID uint, checkin, checkout time.Time, guests int, guestList []models.GuestEntry) (*models.Booking, error) {
	return s.createBooking(ctx, models.ModeDay, userID, propertyID, checkin, checkout, guests, guestList)
}

// CreateBuyoutBooking reserves the whole property exclusively for every
// night of [checkin, checkout).
func (s *InventoryService) CreateBuyoutBooking(ctx context.Context, userID, propertyID uint, checkin, checkout time.Time, guests int, guestList []models.GuestEntry) (*models.Booking, error) {
	return s.createBooking(ctx, models.ModeBuyout, userID, propertyID, checkin, checkout, guests, guestList)
}

func (s *InventoryService) createBooking(ctx context.Context, mode string, userID, propertyID uint, checkin, checkout time.Time, guests int, guestList []models.GuestEntry) (*models.Booking, error) {
	checkin, checkout = utils.DateOnly(checkin), utils.DateOnly(checkout)
	today := utils.DateOnly(s.now())

	property, err := s.properties.PropertyByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	}
	if property == nil {
		return nil, fmt.Errorf("%w: unknown property %d", ErrInvalidParameters, propertyID)
	}
	capacity := property.Capacity()

	if !checkin.Before(checkout) {
		return nil, fmt.Errorf("%w: checkin must be before checkout", ErrInvalidParameters)
	}
	if guests < 1 || guests > capacity {
		return nil, fmt.Errorf("%w: guests_count must be between 1 and %d", ErrInvalidParameters, capacity)
	}
	if checkin.Before(today) {
		return nil, fmt.Errorf("%w: checkin must not be in the past", ErrInvalidParameters)
	}
	horizon, err := s.seasons.MaxBookingHorizon(ctx, propertyID, today)
	if err != nil {
		return nil, err
	}
	if checkout.After(horizon) {
		return nil, fmt.Errorf("%w: checkout exceeds the booking horizon %s", ErrInvalidParameters, horizon.Format(utils.DateLayout))
	}

	// The mode must be configured for every night's season. Checked before
	// any lock so an unconfigured mode never contends for the section, and
	// the total is priced in the same pass.
	total, err := s.priceOrUnavailable(ctx, propertyID, checkin, checkout, mode, guests)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ReferenceCode: utils.NewReferenceCode(),
		UserID:        userID,
		PropertyID:    propertyID,
		CheckinDate:   checkin,
		CheckoutDate:  checkout,
		Mode:          mode,
		GuestsCount:   guests,
		Status:        models.StatusPending,
		TotalCents:    total,
		GuestList:     marshalGuestList(guestList),
	}

	err = s.store.WithPropertySection(ctx, propertyID, func(tx InventoryTx) error {
		// Re-derive mode bookability and the total inside the section to
		// close the race between display and submission.
		total, err := s.priceOrUnavailable(ctx, propertyID, checkin, checkout, mode, guests)
		if err != nil {
			return err
		}
		booking.TotalCents = total

		blackouts, err := s.blackouts.BlackoutsInRange(ctx, propertyID, checkin, checkout)
		if err != nil {
			return fmt.Errorf("load blackouts: %w", err)
		}
		blackedOut := make(map[time.Time]bool, len(blackouts))
		for _, b := range blackouts {
			blackedOut[utils.DateOnly(b.Date)] = true
		}

		existing, err := tx.BookingsOverlapping(propertyID, checkin, checkout)
		if err != nil {
			return fmt.Errorf("load overlapping bookings: %w", err)
		}
		for _, night := range utils.EachNight(checkin, checkout) {
			occ := occupancyForNight(existing, night)
			if err := admitNight(occ, blackedOut[night], mode, guests, capacity); err != nil {
				return fmt.Errorf("%w: night %s", err, night.Format(utils.DateLayout))
			}
		}
		return tx.InsertBooking(booking)
	})
	if err != nil {
		if errors.Is(err, ErrStaleInventory) {
			log.Printf("booking %s lost an inventory race: %v", booking.ReferenceCode, err)
		}
		return nil, err
	}
	return booking, nil
}

// priceOrUnavailable totals the stay; a missing rule means the mode is not
// configured for some night's season, which callers see as the property
// being unavailable.
func (s *InventoryService) priceOrUnavailable(ctx context.Context, propertyID uint, checkin, checkout time.Time, mode string, guests int) (int64, error) {
	total, err := s.pricing.CalculateBookingPrice(ctx, propertyID, checkin, checkout, mode, guests)
	if err != nil {
		if errors.Is(err, ErrNoPricingRule) {
			log.Printf("property %d: %s mode not configured: %v", propertyID, mode, err)
			return 0, fmt.Errorf("%w: %s mode not configured for the requested dates", ErrPropertyUnavailable, mode)
		}
		return 0, err
	}
	return total, nil
}

func marshalGuestList(guestList []models.GuestEntry) datatypes.JSON {
	if len(guestList) == 0 {
		return nil
	}
	out := make([]models.GuestEntry, 0, len(guestList))
	for _, g := range guestList {
		if g.FullName == "" {
			continue
		}
		if g.Type == "" {
			g.Type = "Adult"
		}
		out = append(out, g)
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
