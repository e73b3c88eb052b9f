package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/internal/model"
)

// dayWindow returns [midnight, next midnight) around at, in at's location.
// The caller supplies the timestamp, so transitions are deterministic.
func dayWindow(at time.Time) (time.Time, time.Time) {
	start := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return start, start.AddDate(0, 0, 1)
}

func findAttendance(tx *gorm.DB, employeeID int, at time.Time) (*model.Attendance, error) {
	start, end := dayWindow(at)
	var record model.Attendance
	err := tx.Where("employee_id = ? AND created_at >= ? AND created_at < ?", employeeID, start, end).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance for employee %d: %w", employeeID, err)
	}
	return &record, nil
}

// CheckIn records a check-in for the employee on at's calendar day. A
// new day always starts a fresh record.
func (s *gormStore) CheckIn(ctx context.Context, employeeID int, employeeName string, at time.Time) (*model.Attendance, error) {
	var result model.Attendance
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := findAttendance(tx, employeeID, at)
		if err != nil {
			return err
		}

		if record != nil {
			if record.CheckIn != nil {
				return ErrAlreadyCheckedIn
			}
			record.CheckIn = &at
			record.Status = model.AttendancePresent
			if err := tx.Save(record).Error; err != nil {
				return fmt.Errorf("failed to update attendance: %w", err)
			}
			result = *record
			return nil
		}

		fresh := model.Attendance{
			EmployeeID:   employeeID,
			EmployeeName: employeeName,
			CheckIn:      &at,
			Status:       model.AttendancePresent,
			CreatedAt:    at, // anchors the record to its day
		}
		if err := tx.Create(&fresh).Error; err != nil {
			return fmt.Errorf("failed to create attendance: %w", err)
		}
		result = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckOut records a check-out for the employee on at's calendar day.
func (s *gormStore) CheckOut(ctx context.Context, employeeID int, at time.Time) (*model.Attendance, error) {
	var result model.Attendance
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := findAttendance(tx, employeeID, at)
		if err != nil {
			return err
		}
		if record == nil || record.CheckIn == nil {
			return ErrNotCheckedIn
		}
		if record.CheckOut != nil {
			return ErrAlreadyCheckedOut
		}

		record.CheckOut = &at
		if err := tx.Save(record).Error; err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		result = *record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
