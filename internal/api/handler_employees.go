package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/internal/model"
	"github.com/mahmoudbymassen/station-managment/internal/scope"
	"github.com/mahmoudbymassen/station-managment/internal/store"
)

// ListEmployees returns employees, restricted to the manager's station.
func (h *Handler) ListEmployees(c *gin.Context) {
	ident := mustIdentity(c)

	q := h.store.DB()
	if pk, restricted := scope.ListPK(ident); restricted {
		q = q.Where("station_id = ?", pk)
	}

	var employees []model.Employee
	if err := q.Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, employees)
}

func validateEmployee(e *model.Employee) string {
	switch {
	case e.CIN == "" || e.LastName == "" || e.FirstName == "" || e.Email == "":
		return "Required fields are missing"
	case !model.ValidGender(e.Gender):
		return "Gender must be M or F"
	case e.BirthDate.IsZero() || e.Address == "" || e.Nationality == "" || e.ContractType == "":
		return "Required fields are missing"
	case e.Status != "" && !model.ValidEmployeeStatus(e.Status):
		return "Invalid employee status"
	}
	return ""
}

// CreateEmployee adds an employee to a station. Managers may only add
// to their own station.
func (h *Handler) CreateEmployee(c *gin.Context) {
	ident := mustIdentity(c)

	var employee model.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee data", "error": err.Error()})
		return
	}

	if err := scope.CheckCreatePK(ident, employee.StationID); err != nil {
		abortScope(c, err, "Can only add employees to your station")
		return
	}
	if msg := validateEmployee(&employee); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}
	if employee.Status == "" {
		employee.Status = model.EmployeeActive
	}

	db := h.store.DB()
	var station model.Station
	if err := db.First(&station, employee.StationID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid station ID"})
		return
	}

	id, err := h.store.NextID(c.Request.Context(), store.EntityEmployee)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	employee.ID = 0
	employee.EmployeeID = id

	if err := db.Create(&employee).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error adding employee", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (h *Handler) findEmployee(c *gin.Context) (*model.Employee, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee ID"})
		return nil, false
	}

	var employee model.Employee
	if err := h.store.DB().Where("employee_id = ?", id).First(&employee).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return nil, false
	}
	return &employee, true
}

// UpdateEmployee replaces an employee's fields, located by sequential id.
func (h *Handler) UpdateEmployee(c *gin.Context) {
	ident := mustIdentity(c)

	employee, ok := h.findEmployee(c)
	if !ok {
		return
	}

	var payload model.Employee
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee data", "error": err.Error()})
		return
	}

	if err := scope.CheckMutatePK(ident, employee.StationID, payload.StationID); err != nil {
		abortScope(c, err, "Can only edit employees in your station")
		return
	}
	if msg := validateEmployee(&payload); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	employee.CIN = payload.CIN
	employee.LastName = payload.LastName
	employee.FirstName = payload.FirstName
	employee.Email = payload.Email
	employee.Phone = payload.Phone
	employee.Gender = payload.Gender
	employee.BirthDate = payload.BirthDate
	employee.Address = payload.Address
	employee.Nationality = payload.Nationality
	employee.CNSS = payload.CNSS
	employee.ContractType = payload.ContractType
	if payload.Status != "" {
		employee.Status = payload.Status
	}
	if ident.IsAdmin() && payload.StationID != 0 {
		employee.StationID = payload.StationID
	}

	if err := h.store.DB().Save(employee).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating employee", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee removes an employee, located by sequential id.
func (h *Handler) DeleteEmployee(c *gin.Context) {
	ident := mustIdentity(c)

	employee, ok := h.findEmployee(c)
	if !ok {
		return
	}

	if err := scope.CheckMutatePK(ident, employee.StationID, 0); err != nil {
		abortScope(c, err, "Can only delete employees in your station")
		return
	}

	if err := h.store.DB().Delete(employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}
