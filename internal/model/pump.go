package model

import "time"

// Pump dispenses fuel from one tank, referenced by the tank's sequential
// id rather than its primary key.
type Pump struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	PumpID    int       `gorm:"uniqueIndex;not null" json:"IdPompe"`
	Number    string    `gorm:"size:50;not null" json:"Numero"`
	Status    string    `gorm:"size:50;not null" json:"Statut"`
	FlowRate  float64   `gorm:"not null" json:"Debit"`
	TankID    int       `gorm:"index;not null" json:"IdCiterne"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Pump statuses.
const (
	PumpActive      = "Active"
	PumpInactive    = "Inactive"
	PumpMaintenance = "Maintenance"
)

// ValidPumpStatus reports whether s is a recognized pump status.
func ValidPumpStatus(s string) bool {
	return s == PumpActive || s == PumpInactive || s == PumpMaintenance
}
