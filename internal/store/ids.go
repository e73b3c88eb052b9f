package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mahmoudbymassen/station-managment/internal/model"
)

// Entity names used as counter keys.
const (
	EntityStation  = "station"
	EntityEmployee = "employee"
	EntityTank     = "tank"
	EntityPump     = "pump"
	EntitySupplier = "supplier"
	EntityProduct  = "product"
)

// NextID allocates sequential ids through a per-entity counter row,
// bumped with an atomic upsert. Concurrent creates get distinct ids;
// an insert failing after allocation leaves a gap, which is allowed.
func (s *gormStore) NextID(ctx context.Context, entity string) (int, error) {
	var value int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"value": gorm.Expr("value + 1")}),
		}).Create(&model.Counter{Name: entity, Value: 1}).Error; err != nil {
			return fmt.Errorf("failed to bump counter %q: %w", entity, err)
		}

		var counter model.Counter
		if err := tx.First(&counter, "name = ?", entity).Error; err != nil {
			return fmt.Errorf("failed to read counter %q: %w", entity, err)
		}
		value = counter.Value
		return nil
	})
	return value, err
}

// SyncCounter raises an entity's counter to at least floor. Used when a
// client supplies its own sequential id (stations, products) so later
// allocations do not collide with it.
func (s *gormStore) SyncCounter(ctx context.Context, entity string, floor int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Counter{Name: entity, Value: floor}).Error; err != nil {
			return fmt.Errorf("failed to seed counter %q: %w", entity, err)
		}
		if err := tx.Model(&model.Counter{}).
			Where("name = ? AND value < ?", entity, floor).
			Update("value", floor).Error; err != nil {
			return fmt.Errorf("failed to sync counter %q: %w", entity, err)
		}
		return nil
	})
}
