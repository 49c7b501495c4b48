package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lodge-backend/models"
	"lodge-backend/services"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MySQL error numbers that signal a lost race rather than a broken store.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

type inventoryTx struct {
	tx *gorm.DB
}

func (t *inventoryTx) BookingsOverlapping(propertyID uint, from, to time.Time) ([]models.Booking, error) {
	return bookingsOverlapping(t.tx, propertyID, from, to)
}

func (t *inventoryTx) InsertBooking(b *models.Booking) error {
	if err := t.tx.Create(b).Error; err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// WithPropertySection runs fn inside one transaction holding an exclusive
// row lock on the property. Two concurrent sections for the same property
// serialize on that lock, so fn's reads stay authoritative until commit.
// Lock waits are bounded by the request context and the server's innodb
// lock timeout; a timed-out or conflicting attempt surfaces as
// services.ErrStaleInventory instead of blocking indefinitely.
func (s *Store) WithPropertySection(ctx context.Context, propertyID uint, fn func(tx services.InventoryTx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Property
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, propertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: unknown property %d", services.ErrInvalidParameters, propertyID)
			}
			return fmt.Errorf("lock property %d: %w", propertyID, err)
		}
		return fn(&inventoryTx{tx: tx})
	})
	return classifySectionErr(err)
}

// classifySectionErr maps driver-level race losses to ErrStaleInventory and
// leaves business kinds and genuine infrastructure failures untouched.
func classifySectionErr(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{
		services.ErrInvalidParameters,
		services.ErrInsufficientCapacity,
		services.ErrPropertyUnavailable,
		services.ErrStaleInventory,
		services.ErrNoPricingRule,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDuplicateEntry, mysqlErrLockWaitTimeout, mysqlErrDeadlock:
			return fmt.Errorf("%w: %v", services.ErrStaleInventory, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", services.ErrStaleInventory, err)
	}
	return err
}
