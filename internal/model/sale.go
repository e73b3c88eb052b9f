package model

import "time"

// Sale is a revenue entry for a given weekday, referencing product and
// station by their sequential ids.
type Sale struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Day       string    `gorm:"size:16;not null" json:"day"`
	Amount    float64   `gorm:"not null" json:"sales"`
	ProductID int       `gorm:"not null" json:"product"`
	StationID int       `gorm:"index;not null" json:"station"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var weekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// ValidWeekday reports whether day names a day of the week.
func ValidWeekday(day string) bool {
	return weekdays[day]
}
