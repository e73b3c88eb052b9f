package model

import "time"

// User is a back-office account. Managers carry the primary key of the
// station they run; admins have no station.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	StationID *int64    `gorm:"index" json:"stationId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	Station *Station `json:"station,omitempty"`
}
