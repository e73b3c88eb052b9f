package model

import "time"

// Tank represents a fuel tank installed at a station.
type Tank struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	TankID       int       `gorm:"uniqueIndex;not null" json:"IdCiterne"`
	StationID    int64     `gorm:"index;not null" json:"Station"`
	Capacity     float64   `gorm:"not null" json:"Capacite"`
	InstalledAt  time.Time `gorm:"not null" json:"DateInstallation"`
	FuelType     string    `gorm:"size:50;not null" json:"TypeCarburant"`
	Status       string    `gorm:"size:50;not null" json:"Statut"`
	CurrentLevel float64   `gorm:"not null;default:0" json:"CurrentLevel"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Associations
	Station Station `gorm:"foreignKey:StationID;constraint:OnDelete:CASCADE" json:"-"`
}

// Tank statuses.
const (
	TankOperational  = "Operational"
	TankMaintenance  = "Maintenance"
	TankOutOfService = "Out of Service"
)

// ValidTankStatus reports whether s is a recognized tank status.
func ValidTankStatus(s string) bool {
	return s == TankOperational || s == TankMaintenance || s == TankOutOfService
}
