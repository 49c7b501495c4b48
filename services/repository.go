package services

import (
	"context"
	"time"

	"lodge-backend/models"
)

// Read-only repositories over admin-managed reference data. They are
// injected so tests can substitute fixed rule sets deterministically.

type PropertyRepository interface {
	PropertyByID(ctx context.Context, id uint) (*models.Property, error)
	PropertyByCode(ctx context.Context, code string) (*models.Property, error)
}

type SeasonRepository interface {
	// SeasonsOverlapping returns the property's seasons that intersect
	// [from, to), ordered by start date.
	SeasonsOverlapping(ctx context.Context, propertyID uint, from, to time.Time) ([]models.Season, error)
}

type PricingRuleRepository interface {
	// RulesForMode returns every rule for (property, mode, pricing type);
	// scope filtering and ranking happen in the resolver.
	RulesForMode(ctx context.Context, propertyID uint, mode, pricingType string) ([]models.PricingRule, error)
}

type BlackoutRepository interface {
	// BlackoutsInRange returns blacked-out nights of the property within
	// [from, to).
	BlackoutsInRange(ctx context.Context, propertyID uint, from, to time.Time) ([]models.BlackoutDate, error)
}

type BookingRepository interface {
	// BookingsOverlapping returns non-cancelled bookings of the property
	// whose night ranges intersect [from, to).
	BookingsOverlapping(ctx context.Context, propertyID uint, from, to time.Time) ([]models.Booking, error)
	BookingByReference(ctx context.Context, reference string) (*models.Booking, error)
}

// InventoryTx is the store view inside a scoped section. Reads through it
// are authoritative for the duration of the section.
type InventoryTx interface {
	BookingsOverlapping(propertyID uint, from, to time.Time) ([]models.Booking, error)
	InsertBooking(b *models.Booking) error
}

// InventoryStore provides the exclusive section the locker runs in: while fn
// executes, no other section for the same property may run. Returning an
// error from fn aborts the section without committing anything.
//
// The contract is implementation-neutral: the gorm store backs it with a
// transaction holding a row lock on the property, tests back it with an
// in-process mutex.
type InventoryStore interface {
	WithPropertySection(ctx context.Context, propertyID uint, fn func(tx InventoryTx) error) error
}
