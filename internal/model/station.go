package model

import "time"

// Station represents a fuel station site.
//
// StationID is the domain-visible sequential identifier; sales, services,
// stock and deliveries reference a station by it. Employees and tanks
// reference the database primary key instead.
type Station struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	StationID    int       `gorm:"uniqueIndex;not null" json:"IdStation"`
	Name         string    `gorm:"size:128;not null" json:"NomStation"`
	Address      string    `gorm:"size:255;not null" json:"AdresseStation"`
	City         string    `gorm:"size:100;not null" json:"VilleStation"`
	InServiceAt  time.Time `gorm:"not null" json:"DateMiseEnService"`
	Latitude     float64   `gorm:"not null" json:"Latitude"`
	Longitude    float64   `gorm:"not null" json:"Longitude"`
	Phone        string    `gorm:"size:20" json:"Telephone"`
	Email        string    `gorm:"size:100" json:"Email"`
	OpeningHours string    `gorm:"size:128" json:"HorairesOuverture"`
	Status       string    `gorm:"size:50;not null;default:Active" json:"Statut"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Station statuses.
const (
	StationActive      = "Active"
	StationInactive    = "Inactive"
	StationMaintenance = "Maintenance"
)

// ValidStationStatus reports whether s is a recognized station status.
func ValidStationStatus(s string) bool {
	return s == StationActive || s == StationInactive || s == StationMaintenance
}
