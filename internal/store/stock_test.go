package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudbymassen/station-managment/internal/model"
)

func TestSetStockLevelCreatesRowWithDefaultCapacity(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	stock, err := s.SetStockLevel(ctx, model.ItemFuel, 1, 300, nil)
	require.NoError(t, err)
	assert.Equal(t, 300.0, stock.Level)
	assert.Equal(t, 10000.0, stock.Capacity)

	stock, err = s.SetStockLevel(ctx, model.ItemLubricant, 1, 50, nil)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, stock.Capacity)
}

func TestSetStockLevelKeepsExistingCapacity(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	cap := 800.0
	_, err := s.SetStockLevel(ctx, model.ItemFuel, 1, 100, &cap)
	require.NoError(t, err)

	stock, err := s.SetStockLevel(ctx, model.ItemFuel, 1, 200, nil)
	require.NoError(t, err)
	assert.Equal(t, 800.0, stock.Capacity, "capacity survives updates without one")

	_, err = s.SetStockLevel(ctx, model.ItemFuel, 1, 900, nil)
	assert.ErrorIs(t, err, ErrOverCapacity)
}

func TestSetStockLevelRejectsNegative(t *testing.T) {
	s := NewGormStore(newTestDB(t))

	_, err := s.SetStockLevel(context.Background(), model.ItemFuel, 1, -1, nil)
	assert.ErrorIs(t, err, ErrNegativeLevel)
}

func TestSetStockLevelIsScopedPerStation(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	_, err := s.SetStockLevel(ctx, model.ItemFuel, 1, 100, nil)
	require.NoError(t, err)
	_, err = s.SetStockLevel(ctx, model.ItemFuel, 2, 700, nil)
	require.NoError(t, err)

	var stocks []model.Stock
	require.NoError(t, s.DB().Order("station_id").Find(&stocks).Error)
	require.Len(t, stocks, 2)
	assert.Equal(t, 100.0, stocks[0].Level)
	assert.Equal(t, 700.0, stocks[1].Level)
}

func TestDeliveryBumpsStockAndHistory(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	_, err := s.SetStockLevel(ctx, model.ItemFuel, 1, 300, nil)
	require.NoError(t, err)

	delivery := model.Delivery{
		Item:          model.ItemFuel,
		Amount:        200,
		Supplier:      "Afriquia",
		ScheduledDate: time.Now().Add(24 * time.Hour),
		StationID:     1,
	}
	stock, err := s.ScheduleDelivery(ctx, &delivery)
	require.NoError(t, err)
	assert.Equal(t, 500.0, stock.Level)
	assert.NotZero(t, delivery.ID)

	// One snapshot per mutation, latest carrying the combined level.
	var history []model.StockHistory
	require.NoError(t, s.DB().Where("station_id = ?", 1).Order("id").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, 300.0, history[0].FuelLevel)
	assert.Equal(t, 500.0, history[1].FuelLevel)
	assert.Equal(t, 0.0, history[1].LubricantLevel, "absent sibling item reads as zero")
}

func TestDeliverySeedsAbsentStockRow(t *testing.T) {
	s := NewGormStore(newTestDB(t))

	delivery := model.Delivery{
		Item:          model.ItemLubricant,
		Amount:        120,
		Supplier:      "Total",
		ScheduledDate: time.Now(),
		StationID:     3,
	}
	stock, err := s.ScheduleDelivery(context.Background(), &delivery)
	require.NoError(t, err)
	assert.Equal(t, 120.0, stock.Level)
	assert.Equal(t, 5000.0, stock.Capacity)
}

func TestDeliveryRejectsOverfill(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	cap := 500.0
	_, err := s.SetStockLevel(ctx, model.ItemFuel, 1, 400, &cap)
	require.NoError(t, err)

	delivery := model.Delivery{
		Item:          model.ItemFuel,
		Amount:        200,
		Supplier:      "Shell",
		ScheduledDate: time.Now(),
		StationID:     1,
	}
	_, err = s.ScheduleDelivery(ctx, &delivery)
	assert.ErrorIs(t, err, ErrOverCapacity)

	// The rejected delivery must not be persisted either.
	var count int64
	require.NoError(t, s.DB().Model(&model.Delivery{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
