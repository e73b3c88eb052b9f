package model

import "time"

// Employee belongs to exactly one station, referenced by primary key.
type Employee struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	EmployeeID   int       `gorm:"uniqueIndex;not null" json:"IdEmploye"`
	CIN          string    `gorm:"size:50;not null" json:"CINEmploye"`
	LastName     string    `gorm:"size:100;not null" json:"NomEmploye"`
	FirstName    string    `gorm:"size:100;not null" json:"PrenomEmploye"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"EmailEmploye"`
	Phone        string    `gorm:"size:20" json:"TeleEmploye"`
	Gender       string    `gorm:"size:1;not null" json:"GenreEmploye"`
	BirthDate    time.Time `gorm:"not null" json:"DateNaissanceEmploye"`
	Address      string    `gorm:"size:255;not null" json:"AdresseEmploye"`
	Nationality  string    `gorm:"size:50;not null" json:"NationaliteEmploye"`
	Status       string    `gorm:"size:50;not null;default:Active" json:"StatutEmploye"`
	CNSS         string    `gorm:"size:50" json:"CNSS"`
	ContractType string    `gorm:"size:50;not null" json:"TypeContrat"`
	StationID    int64     `gorm:"index;not null" json:"stationId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Associations
	Station Station `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Employee statuses.
const (
	EmployeeActive   = "Active"
	EmployeeInactive = "Inactive"
	EmployeeOnLeave  = "On Leave"
)

// ValidEmployeeStatus reports whether s is a recognized employee status.
func ValidEmployeeStatus(s string) bool {
	return s == EmployeeActive || s == EmployeeInactive || s == EmployeeOnLeave
}

// ValidGender reports whether g is one of M or F.
func ValidGender(g string) bool {
	return g == "M" || g == "F"
}
