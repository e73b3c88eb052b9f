package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/internal/model"
	"github.com/mahmoudbymassen/station-managment/internal/scope"
	"github.com/mahmoudbymassen/station-managment/internal/store"
)

// pumpResponse flattens a pump with the fuel type of its tank.
type pumpResponse struct {
	model.Pump
	FuelType string `json:"TypeCarburant"`
}

// ListPumps returns pumps with the owning tank's fuel type denormalized
// into each entry. A pump whose tank no longer exists is silently
// dropped. Managers see pumps of their own station's tanks only.
func (h *Handler) ListPumps(c *gin.Context) {
	ident := mustIdentity(c)
	db := h.store.DB()

	var tanks []model.Tank
	q := db
	if pk, restricted := scope.ListPK(ident); restricted {
		q = q.Where("station_id = ?", pk)
	}
	if err := q.Find(&tanks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching pumps", "error": err.Error()})
		return
	}

	tankTypes := make(map[int]string, len(tanks))
	tankIDs := make([]int, 0, len(tanks))
	for _, t := range tanks {
		tankTypes[t.TankID] = t.FuelType
		tankIDs = append(tankIDs, t.TankID)
	}

	var pumps []model.Pump
	pq := db
	if !ident.IsAdmin() {
		if len(tankIDs) == 0 {
			c.JSON(http.StatusOK, []pumpResponse{})
			return
		}
		pq = pq.Where("tank_id IN ?", tankIDs)
	}
	if err := pq.Find(&pumps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching pumps", "error": err.Error()})
		return
	}

	response := make([]pumpResponse, 0, len(pumps))
	for _, pump := range pumps {
		fuelType, ok := tankTypes[pump.TankID]
		if !ok {
			log.Printf("pump %d references non-existent tank %d", pump.PumpID, pump.TankID)
			continue
		}
		response = append(response, pumpResponse{Pump: pump, FuelType: fuelType})
	}
	c.JSON(http.StatusOK, response)
}

func validatePump(p *model.Pump) string {
	switch {
	case p.Number == "" || p.TankID == 0:
		return "Required fields are missing"
	case !model.ValidPumpStatus(p.Status):
		return "Invalid pump status"
	case p.FlowRate < 0:
		return "Flow rate must not be negative"
	}
	return ""
}

// CreatePump adds a pump linked to an existing tank. Admin only.
func (h *Handler) CreatePump(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "")
		return
	}

	var pump model.Pump
	if err := c.ShouldBindJSON(&pump); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid pump data", "error": err.Error()})
		return
	}
	if msg := validatePump(&pump); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	db := h.store.DB()
	var tank model.Tank
	if err := db.Where("tank_id = ?", pump.TankID).First(&tank).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid tank ID: Tank not found"})
		return
	}

	id, err := h.store.NextID(c.Request.Context(), store.EntityPump)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	pump.ID = 0
	pump.PumpID = id

	if err := db.Create(&pump).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating pump", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pumpResponse{Pump: pump, FuelType: tank.FuelType})
}

func (h *Handler) findPump(c *gin.Context) (*model.Pump, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid pump ID"})
		return nil, false
	}

	var pump model.Pump
	if err := h.store.DB().Where("pump_id = ?", id).First(&pump).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Pump not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return nil, false
	}
	return &pump, true
}

// UpdatePump replaces a pump's fields. The manager check uses the owning
// tank's station; relinking to another tank requires that tank to exist
// and, for managers, to sit in their own station.
func (h *Handler) UpdatePump(c *gin.Context) {
	ident := mustIdentity(c)

	pump, ok := h.findPump(c)
	if !ok {
		return
	}

	var payload model.Pump
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid pump data", "error": err.Error()})
		return
	}
	if msg := validatePump(&payload); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	db := h.store.DB()
	var currentTank model.Tank
	if err := db.Where("tank_id = ?", pump.TankID).First(&currentTank).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Associated tank not found"})
		return
	}
	if err := scope.CheckMutatePK(ident, currentTank.StationID, 0); err != nil {
		abortScope(c, err, "Can only edit pumps in your station")
		return
	}

	tank := currentTank
	if payload.TankID != pump.TankID {
		var newTank model.Tank
		if err := db.Where("tank_id = ?", payload.TankID).First(&newTank).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid tank ID: Tank not found"})
			return
		}
		if !ident.IsAdmin() && newTank.StationID != ident.StationID {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied: Can only link to tanks in your station"})
			return
		}
		tank = newTank
	}

	pump.Number = payload.Number
	pump.Status = payload.Status
	pump.FlowRate = payload.FlowRate
	pump.TankID = payload.TankID

	if err := db.Save(pump).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating pump", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pumpResponse{Pump: *pump, FuelType: tank.FuelType})
}

// DeletePump removes a pump, located by sequential id.
func (h *Handler) DeletePump(c *gin.Context) {
	ident := mustIdentity(c)

	pump, ok := h.findPump(c)
	if !ok {
		return
	}

	db := h.store.DB()
	var tank model.Tank
	if err := db.Where("tank_id = ?", pump.TankID).First(&tank).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Associated tank not found"})
		return
	}
	if err := scope.CheckMutatePK(ident, tank.StationID, 0); err != nil {
		abortScope(c, err, "Can only delete pumps in your station")
		return
	}

	if err := db.Delete(pump).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
