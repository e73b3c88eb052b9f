package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudbymassen/station-managment/internal/model"
)

func TestAttendanceStateMachine(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()
	morning := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	evening := morning.Add(9 * time.Hour)

	record, err := s.CheckIn(ctx, 12, "Amine Berrada", morning)
	require.NoError(t, err)
	require.NotNil(t, record.CheckIn)
	assert.Equal(t, model.AttendancePresent, record.Status)
	assert.Nil(t, record.CheckOut)

	_, err = s.CheckIn(ctx, 12, "Amine Berrada", morning.Add(time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	record, err = s.CheckOut(ctx, 12, evening)
	require.NoError(t, err)
	require.NotNil(t, record.CheckOut)
	assert.Equal(t, evening, record.CheckOut.UTC())

	_, err = s.CheckOut(ctx, 12, evening.Add(time.Minute))
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	s := NewGormStore(newTestDB(t))

	_, err := s.CheckOut(context.Background(), 5, time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNotCheckedIn)
}

func TestNewDayStartsFreshRecord(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()
	day1 := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	_, err := s.CheckIn(ctx, 12, "Amine Berrada", day1)
	require.NoError(t, err)
	_, err = s.CheckOut(ctx, 12, day1.Add(8*time.Hour))
	require.NoError(t, err)

	// The next morning is a separate record; yesterday's check-out
	// does not block it.
	record, err := s.CheckIn(ctx, 12, "Amine Berrada", day2)
	require.NoError(t, err)
	assert.Nil(t, record.CheckOut)

	var count int64
	require.NoError(t, s.DB().Model(&model.Attendance{}).Where("employee_id = ?", 12).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestCheckOutTargetsItsOwnDay(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()
	day1 := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	_, err := s.CheckIn(ctx, 12, "Amine Berrada", day1)
	require.NoError(t, err)

	// Checking out on the next day finds no open record for that day.
	_, err = s.CheckOut(ctx, 12, day2)
	assert.ErrorIs(t, err, ErrNotCheckedIn)
}
