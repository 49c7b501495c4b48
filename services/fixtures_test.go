package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"lodge-backend/models"
	"lodge-backend/utils"
)

// memStore is an in-process implementation of every store contract the core
// consumes. The scoped section is a per-property semaphore, so the locker's
// concurrency behaviour can be exercised with real goroutines and no
// database.
type memStore struct {
	mu         sync.Mutex
	properties []models.Property
	seasons    []models.Season
	rules      []models.PricingRule
	blackouts  []models.BlackoutDate
	bookings   []models.Booking

	nextBookingID uint
	sems          map[uint]chan struct{}
	sectionCalls  int
}

func newMemStore() *memStore {
	return &memStore{sems: map[uint]chan struct{}{}}
}

func (m *memStore) PropertyByID(ctx context.Context, id uint) (*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.properties {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) PropertyByCode(ctx context.Context, code string) (*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.properties {
		if p.Code == code {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) SeasonsOverlapping(ctx context.Context, propertyID uint, from, to time.Time) ([]models.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Season
	for _, s := range m.seasons {
		if s.PropertyID == propertyID && s.StartDate.Before(to) && !s.EndDate.Before(from) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) RulesForMode(ctx context.Context, propertyID uint, mode, pricingType string) ([]models.PricingRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.PricingRule
	for _, r := range m.rules {
		if r.PropertyID == propertyID && r.Mode == mode && r.PricingType == pricingType {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) BlackoutsInRange(ctx context.Context, propertyID uint, from, to time.Time) ([]models.BlackoutDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.BlackoutDate
	for _, b := range m.blackouts {
		if b.PropertyID == propertyID && !b.Date.Before(from) && b.Date.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) BookingsOverlapping(ctx context.Context, propertyID uint, from, to time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlappingLocked(propertyID, from, to), nil
}

func (m *memStore) BookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ReferenceCode == reference {
			cp := b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) overlappingLocked(propertyID uint, from, to time.Time) []models.Booking {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.PropertyID == propertyID && b.Status != models.StatusCancelled &&
			b.CheckinDate.Before(to) && b.CheckoutDate.After(from) {
			out = append(out, b)
		}
	}
	return out
}

type memTx struct {
	store *memStore
}

func (t *memTx) BookingsOverlapping(propertyID uint, from, to time.Time) ([]models.Booking, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return t.store.overlappingLocked(propertyID, from, to), nil
}

func (t *memTx) InsertBooking(b *models.Booking) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, existing := range t.store.bookings {
		if existing.ReferenceCode == b.ReferenceCode {
			return fmt.Errorf("%w: duplicate reference %s", ErrStaleInventory, b.ReferenceCode)
		}
	}
	t.store.nextBookingID++
	b.ID = t.store.nextBookingID
	t.store.bookings = append(t.store.bookings, *b)
	return nil
}

func (m *memStore) sem(propertyID uint) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	sem, ok := m.sems[propertyID]
	if !ok {
		sem = make(chan struct{}, 1)
		m.sems[propertyID] = sem
	}
	return sem
}

func (m *memStore) WithPropertySection(ctx context.Context, propertyID uint, fn func(tx InventoryTx) error) error {
	sem := m.sem(propertyID)
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrStaleInventory, ctx.Err())
	}
	defer func() { <-sem }()

	m.mu.Lock()
	m.sectionCalls++
	m.mu.Unlock()

	return fn(&memTx{store: m})
}

// --- fixture helpers ---

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }

func fixedNow(s string) func() time.Time {
	d, _ := utils.ParseDate(s)
	return func() time.Time { return d }
}

// lodgeFixture builds a memStore holding one property with two seasons and
// the usual rule set, plus the service stack wired on top of it.
type lodgeFixture struct {
	store     *memStore
	seasons   *SeasonService
	rules     *PricingRuleService
	pricing   *PriceService
	avail     *AvailabilityService
	inventory *InventoryService
}

const (
	fixturePropertyID = 1
	summerSeasonID    = 1
	autumnSeasonID    = 2
)

func newLodgeFixture(t *testing.T) *lodgeFixture {
	t.Helper()
	store := newMemStore()
	store.properties = []models.Property{
		{ID: fixturePropertyID, Code: "lakeside", Name: "Lakeside Lodge", MaxGuestsPerNight: 12, BookingHorizonDays: 365},
	}
	store.seasons = []models.Season{
		{ID: summerSeasonID, PropertyID: fixturePropertyID, Label: "Summer", StartDate: date(t, "2026-06-01"), EndDate: date(t, "2026-08-31")},
		{ID: autumnSeasonID, PropertyID: fixturePropertyID, Label: "Autumn", StartDate: date(t, "2026-09-01"), EndDate: date(t, "2026-11-30")},
	}
	store.rules = []models.PricingRule{
		{ID: 1, PropertyID: fixturePropertyID, Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 5000},
		{ID: 2, PropertyID: fixturePropertyID, SeasonID: uintPtr(autumnSeasonID), Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 6000},
		{ID: 3, PropertyID: fixturePropertyID, SeasonID: uintPtr(summerSeasonID), Mode: models.ModeBuyout, PricingType: models.PricingBuyoutFixed, AmountCents: 80000},
	}

	seasons := NewSeasonService(store, store)
	rules := NewPricingRuleService(store)
	pricing := NewPriceService(seasons, rules)
	avail := NewAvailabilityService(store, store, store)
	inventory := NewInventoryService(store, store, seasons, rules, pricing, store)
	inventory.now = fixedNow("2026-06-01")

	return &lodgeFixture{
		store:     store,
		seasons:   seasons,
		rules:     rules,
		pricing:   pricing,
		avail:     avail,
		inventory: inventory,
	}
}

// committedBooking appends an existing booking directly into the store.
func (f *lodgeFixture) committedBooking(t *testing.T, mode, checkin, checkout string, guests int) {
	t.Helper()
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.nextBookingID++
	f.store.bookings = append(f.store.bookings, models.Booking{
		ID:            f.store.nextBookingID,
		ReferenceCode: fmt.Sprintf("FIX-%d", f.store.nextBookingID),
		UserID:        99,
		PropertyID:    fixturePropertyID,
		CheckinDate:   mustDate(checkin),
		CheckoutDate:  mustDate(checkout),
		Mode:          mode,
		GuestsCount:   guests,
		Status:        models.StatusComplete,
	})
}

func mustDate(s string) time.Time {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
