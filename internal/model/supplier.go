package model

import "time"

// Supplier is a fuel or lubricant vendor. Not tied to any station.
type Supplier struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	SupplierID int       `gorm:"uniqueIndex;not null" json:"IdFournisseur"`
	Name       string    `gorm:"size:100;not null" json:"NomFournisseur"`
	Address    string    `gorm:"size:255;not null" json:"AdresseFournisseur"`
	Phone      string    `gorm:"size:20;not null" json:"TelephoneFournisseur"`
	Email      string    `gorm:"size:100;not null" json:"EmailFournisseur"`
	City       string    `gorm:"size:100;not null" json:"VilleFournisseur"`
	Contact    string    `gorm:"size:100;not null" json:"ContactFournisseur"`
	Status     string    `gorm:"size:50;not null;default:Active" json:"Statut"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ValidSupplierStatus reports whether s is a recognized supplier status.
func ValidSupplierStatus(s string) bool {
	return s == "Active" || s == "Inactive"
}
