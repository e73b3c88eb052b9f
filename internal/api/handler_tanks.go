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

// ListTanks returns tanks, restricted to the manager's station.
func (h *Handler) ListTanks(c *gin.Context) {
	ident := mustIdentity(c)

	q := h.store.DB()
	if pk, restricted := scope.ListPK(ident); restricted {
		q = q.Where("station_id = ?", pk)
	}

	var tanks []model.Tank
	if err := q.Find(&tanks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching tanks", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tanks)
}

func validateTank(t *model.Tank) string {
	switch {
	case t.StationID == 0 || t.FuelType == "" || t.InstalledAt.IsZero():
		return "Required fields are missing"
	case t.Capacity < 0:
		return "Capacity must not be negative"
	case !model.ValidTankStatus(t.Status):
		return "Invalid tank status"
	case t.CurrentLevel < 0:
		return "Current level must not be negative"
	case t.CurrentLevel > t.Capacity:
		return "Current level exceeds capacity"
	}
	return ""
}

// CreateTank adds a tank to a station. Admin only.
func (h *Handler) CreateTank(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "")
		return
	}

	var tank model.Tank
	if err := c.ShouldBindJSON(&tank); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid tank data", "error": err.Error()})
		return
	}
	if msg := validateTank(&tank); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	db := h.store.DB()
	var station model.Station
	if err := db.First(&station, tank.StationID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid station ID"})
		return
	}

	id, err := h.store.NextID(c.Request.Context(), store.EntityTank)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	tank.ID = 0
	tank.TankID = id

	if err := db.Create(&tank).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating tank", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, tank)
}

func (h *Handler) findTank(c *gin.Context) (*model.Tank, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid tank ID"})
		return nil, false
	}

	var tank model.Tank
	if err := h.store.DB().Where("tank_id = ?", id).First(&tank).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Tank not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return nil, false
	}
	return &tank, true
}

// UpdateTank replaces a tank's fields, located by sequential id.
// Managers may not move a tank between stations, even to their own.
func (h *Handler) UpdateTank(c *gin.Context) {
	ident := mustIdentity(c)

	tank, ok := h.findTank(c)
	if !ok {
		return
	}

	var payload model.Tank
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid tank data", "error": err.Error()})
		return
	}

	if err := scope.CheckMutatePK(ident, tank.StationID, payload.StationID); err != nil {
		abortScope(c, err, "Can only edit tanks in your station")
		return
	}

	if ident.IsAdmin() && payload.StationID != 0 {
		tank.StationID = payload.StationID
	}
	payload.StationID = tank.StationID
	if msg := validateTank(&payload); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	tank.Capacity = payload.Capacity
	tank.InstalledAt = payload.InstalledAt
	tank.FuelType = payload.FuelType
	tank.Status = payload.Status
	tank.CurrentLevel = payload.CurrentLevel

	if err := h.store.DB().Save(tank).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating tank", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tank)
}

// DeleteTank removes a tank, located by sequential id.
func (h *Handler) DeleteTank(c *gin.Context) {
	ident := mustIdentity(c)

	tank, ok := h.findTank(c)
	if !ok {
		return
	}

	if err := scope.CheckMutatePK(ident, tank.StationID, 0); err != nil {
		abortScope(c, err, "Can only delete tanks in your station")
		return
	}

	if err := h.store.DB().Delete(tank).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
