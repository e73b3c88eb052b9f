package model

import "time"

// Attendance is one record per employee per calendar day. CreatedAt
// anchors the record to its day; CheckIn and CheckOut are nil until the
// matching transition happens.
type Attendance struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	EmployeeID   int        `gorm:"index;not null" json:"employeeId"`
	EmployeeName string     `gorm:"size:200;not null" json:"employeeName"`
	CheckIn      *time.Time `json:"checkIn"`
	CheckOut     *time.Time `json:"checkOut"`
	Status       string     `gorm:"size:16;not null;default:Absent" json:"status"`
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Attendance statuses.
const (
	AttendancePresent = "Present"
	AttendanceOnLeave = "On Leave"
	AttendanceAbsent  = "Absent"
)
