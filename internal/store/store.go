package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/internal/model"
)

// Domain errors surfaced by the store. Handlers map them to HTTP codes.
var (
	ErrNegativeLevel     = errors.New("store: stock level must not be negative")
	ErrOverCapacity      = errors.New("store: stock level exceeds capacity")
	ErrAlreadyCheckedIn  = errors.New("store: employee already checked in today")
	ErrNotCheckedIn      = errors.New("store: employee has not checked in today")
	ErrAlreadyCheckedOut = errors.New("store: employee already checked out today")
)

// Store defines the persistence operations with behavior beyond plain
// CRUD. Simple find/create/delete paths go through DB() directly.
type Store interface {
	DB() *gorm.DB

	// NextID atomically allocates the next sequential id for an entity type.
	NextID(ctx context.Context, entity string) (int, error)

	// SyncCounter raises an entity's counter to at least floor.
	SyncCounter(ctx context.Context, entity string, floor int) error

	// SetStockLevel replaces the level of the (item, station) stock row,
	// creating it if absent, and appends a history snapshot.
	SetStockLevel(ctx context.Context, item string, stationID int, level float64, capacity *float64) (*model.Stock, error)

	// ScheduleDelivery persists the delivery, bumps the matching stock
	// level by its amount and appends a history snapshot.
	ScheduleDelivery(ctx context.Context, d *model.Delivery) (*model.Stock, error)

	// CheckIn and CheckOut drive the per-day attendance state machine.
	CheckIn(ctx context.Context, employeeID int, employeeName string, at time.Time) (*model.Attendance, error)
	CheckOut(ctx context.Context, employeeID int, at time.Time) (*model.Attendance, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for plain CRUD queries.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}
