package model

import "time"

// Service is a non-fuel revenue entry (car wash, oil change, ...).
type Service struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Revenue   float64   `gorm:"not null" json:"revenue"`
	Date      time.Time `gorm:"not null" json:"date"`
	StationID int       `gorm:"index;not null" json:"stationId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service types.
const (
	ServiceCarWash     = "Car Wash"
	ServiceOilChange   = "Oil Change"
	ServiceTireService = "Tire Service"
	ServiceStoreSales  = "Store Sales"
)

// ValidServiceType reports whether t is a recognized service type.
func ValidServiceType(t string) bool {
	switch t {
	case ServiceCarWash, ServiceOilChange, ServiceTireService, ServiceStoreSales:
		return true
	}
	return false
}
