package model

import "time"

// Stock items.
const (
	ItemFuel      = "Fuel"
	ItemLubricant = "Lubricant"
)

// ValidStockItem reports whether item is Fuel or Lubricant.
func ValidStockItem(item string) bool {
	return item == ItemFuel || item == ItemLubricant
}

// DefaultCapacity returns the capacity seeded when a stock row is created
// without an explicit capacity.
func DefaultCapacity(item string) float64 {
	if item == ItemLubricant {
		return 5000
	}
	return 10000
}

// Stock holds the current level for one (item, station) pair. The
// composite unique index is the upsert key.
type Stock struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Item      string    `gorm:"size:16;not null;uniqueIndex:idx_stock_item_station" json:"item"`
	Level     float64   `gorm:"not null" json:"level"`
	Capacity  float64   `gorm:"not null" json:"capacity"`
	StationID int       `gorm:"not null;uniqueIndex:idx_stock_item_station" json:"stationId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Delivery is a scheduled inbound delivery; saving one immediately bumps
// the matching stock level.
type Delivery struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Item          string    `gorm:"size:16;not null" json:"item"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Supplier      string    `gorm:"size:100;not null" json:"supplier"`
	ScheduledDate time.Time `gorm:"not null" json:"scheduledDate"`
	Confirmed     bool      `gorm:"not null;default:false" json:"confirmed"`
	StationID     int       `gorm:"index;not null" json:"stationId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// StockHistory is an append-only snapshot of both item levels for a
// station, written on every stock mutation. Consumption and losses are
// recorded but no path derives them yet.
type StockHistory struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	FuelLevel      float64   `gorm:"not null" json:"fuelLevel"`
	LubricantLevel float64   `gorm:"not null" json:"lubricantLevel"`
	Consumption    float64   `gorm:"not null" json:"consumption"`
	Losses         float64   `gorm:"not null" json:"losses"`
	StationID      int       `gorm:"index;not null" json:"stationId"`
	CreatedAt      time.Time `json:"createdAt"`
}
