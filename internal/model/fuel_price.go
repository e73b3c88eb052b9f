package model

import "time"

// FuelPrice is the posted price for one day of the week, upserted by day.
type FuelPrice struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Day       string    `gorm:"size:16;uniqueIndex;not null" json:"day"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
