package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mahmoudbymassen/station-managment/internal/model"
)

// SetStockLevel replaces the current level of the (item, station) row.
// A missing row is created with the type-default capacity unless one is
// supplied. The upsert and the history append run in one transaction.
func (s *gormStore) SetStockLevel(ctx context.Context, item string, stationID int, level float64, capacity *float64) (*model.Stock, error) {
	if level < 0 {
		return nil, ErrNegativeLevel
	}

	var result model.Stock
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findStock(tx, item, stationID)
		if err != nil {
			return err
		}

		cap := model.DefaultCapacity(item)
		if capacity != nil {
			cap = *capacity
		} else if existing != nil {
			cap = existing.Capacity
		}
		if level > cap {
			return ErrOverCapacity
		}

		updated, err := upsertStock(tx, item, stationID, level, cap)
		if err != nil {
			return err
		}
		result = *updated

		return appendHistory(tx, stationID)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ScheduleDelivery saves the delivery record and bumps the matching
// stock level by the delivered amount, seeding an absent row with the
// type-default capacity.
func (s *gormStore) ScheduleDelivery(ctx context.Context, d *model.Delivery) (*model.Stock, error) {
	if d.Amount < 0 {
		return nil, ErrNegativeLevel
	}

	var result model.Stock
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return fmt.Errorf("failed to save delivery: %w", err)
		}

		existing, err := findStock(tx, d.Item, d.StationID)
		if err != nil {
			return err
		}

		level := d.Amount
		cap := model.DefaultCapacity(d.Item)
		if existing != nil {
			level += existing.Level
			cap = existing.Capacity
		}
		if level > cap {
			return ErrOverCapacity
		}

		updated, err := upsertStock(tx, d.Item, d.StationID, level, cap)
		if err != nil {
			return err
		}
		result = *updated

		return appendHistory(tx, d.StationID)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func findStock(tx *gorm.DB, item string, stationID int) (*model.Stock, error) {
	var stock model.Stock
	err := tx.Where("item = ? AND station_id = ?", item, stationID).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock (%s, %d): %w", item, stationID, err)
	}
	return &stock, nil
}

func upsertStock(tx *gorm.DB, item string, stationID int, level, capacity float64) (*model.Stock, error) {
	stock := model.Stock{Item: item, StationID: stationID, Level: level, Capacity: capacity}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item"}, {Name: "station_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"level", "capacity", "updated_at"}),
	}).Create(&stock).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert stock (%s, %d): %w", item, stationID, err)
	}

	var saved model.Stock
	if err := tx.Where("item = ? AND station_id = ?", item, stationID).First(&saved).Error; err != nil {
		return nil, fmt.Errorf("failed to reload stock (%s, %d): %w", item, stationID, err)
	}
	return &saved, nil
}

// appendHistory snapshots both item levels for the station. A sibling
// row that does not exist yet reads as level 0.
func appendHistory(tx *gorm.DB, stationID int) error {
	fuel, err := findStock(tx, model.ItemFuel, stationID)
	if err != nil {
		return err
	}
	lubricant, err := findStock(tx, model.ItemLubricant, stationID)
	if err != nil {
		return err
	}

	entry := model.StockHistory{StationID: stationID}
	if fuel != nil {
		entry.FuelLevel = fuel.Level
	}
	if lubricant != nil {
		entry.LubricantLevel = lubricant.Level
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append stock history for station %d: %w", stationID, err)
	}
	return nil
}
