package model

import "time"

// Product is a sellable item (fuel grade, lubricant, shop article).
type Product struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ProductID int       `gorm:"uniqueIndex;not null" json:"IdProduit"`
	Name      string    `gorm:"size:100;not null" json:"NomProduit"`
	Type      string    `gorm:"size:50;not null" json:"Type"`
	AddedAt   time.Time `gorm:"not null" json:"Date_ajout"`
	Unit      string    `gorm:"size:50;not null" json:"Unite"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
