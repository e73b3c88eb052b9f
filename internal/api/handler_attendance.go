package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/internal/model"
	"github.com/mahmoudbymassen/station-managment/internal/scope"
	"github.com/mahmoudbymassen/station-managment/internal/store"
)

// ListAttendance returns the attendance records for one calendar day
// (today when ?date= is absent). Managers only see records for employees
// of their own station.
func (h *Handler) ListAttendance(c *gin.Context) {
	ident := mustIdentity(c)

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	q := h.store.DB().Where("created_at >= ? AND created_at < ?", start, end)
	if pk, restricted := scope.ListPK(ident); restricted {
		q = q.Where("employee_id IN (?)",
			h.store.DB().Model(&model.Employee{}).Select("employee_id").Where("station_id = ?", pk))
	}

	var records []model.Attendance
	if err := q.Order("created_at").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching attendance", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

type checkInRequest struct {
	EmployeeID  int        `json:"employeeId"`
	CheckInTime *time.Time `json:"checkInTime"`
}

type checkOutRequest struct {
	EmployeeID   int        `json:"employeeId"`
	CheckOutTime *time.Time `json:"checkOutTime"`
}

// findAttendanceEmployee loads the employee behind a check-in/out request
// and enforces the manager's station boundary.
func (h *Handler) findAttendanceEmployee(c *gin.Context, employeeID int) (*model.Employee, bool) {
	ident := mustIdentity(c)

	var emp model.Employee
	if err := h.store.DB().Where("employee_id = ?", employeeID).First(&emp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return nil, false
	}

	if err := scope.CheckCreatePK(ident, emp.StationID); err != nil {
		abortScope(c, err, "Can only record attendance for your station")
		return nil, false
	}
	return &emp, true
}

// CheckIn opens the employee's attendance record for the day of the
// supplied time (now when absent).
func (h *Handler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EmployeeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid check-in data"})
		return
	}

	emp, ok := h.findAttendanceEmployee(c, req.EmployeeID)
	if !ok {
		return
	}

	at := time.Now()
	if req.CheckInTime != nil {
		at = *req.CheckInTime
	}

	record, err := h.store.CheckIn(c.Request.Context(), emp.EmployeeID, emp.FirstName+" "+emp.LastName, at)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyCheckedIn) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Employee already checked in today"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error checking in", "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// CheckOut closes the employee's attendance record for the day of the
// supplied time.
func (h *Handler) CheckOut(c *gin.Context) {
	var req checkOutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EmployeeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid check-out data"})
		return
	}

	emp, ok := h.findAttendanceEmployee(c, req.EmployeeID)
	if !ok {
		return
	}

	at := time.Now()
	if req.CheckOutTime != nil {
		at = *req.CheckOutTime
	}

	record, err := h.store.CheckOut(c.Request.Context(), emp.EmployeeID, at)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotCheckedIn):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Employee has not checked in today"})
		case errors.Is(err, store.ErrAlreadyCheckedOut):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Employee already checked out today"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error checking out", "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteAttendance removes one attendance record.
func (h *Handler) DeleteAttendance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid attendance ID"})
		return
	}

	var record model.Attendance
	if err := h.store.DB().First(&record, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Attendance record not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return
	}

	if _, ok := h.findAttendanceEmployee(c, record.EmployeeID); !ok {
		return
	}

	if err := h.store.DB().Delete(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance record deleted"})
}
