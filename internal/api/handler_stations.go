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

// ListStations returns all stations; managers see only their own.
func (h *Handler) ListStations(c *gin.Context) {
	ident := mustIdentity(c)

	q := h.store.DB()
	if pk, restricted := scope.ListPK(ident); restricted {
		q = q.Where("id = ?", pk)
	}

	var stations []model.Station
	if err := q.Find(&stations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching stations", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stations)
}

func validateStation(s *model.Station) string {
	switch {
	case s.Name == "" || s.Address == "" || s.City == "":
		return "Required fields are missing"
	case s.InServiceAt.IsZero():
		return "Required fields are missing"
	case s.Latitude == 0 || s.Longitude == 0:
		return "Required fields are missing"
	case s.Status != "" && !model.ValidStationStatus(s.Status):
		return "Invalid station status"
	}
	return ""
}

// CreateStation adds a station. Admin only. A client-supplied sequential
// id is honored after a duplicate check; otherwise one is allocated.
func (h *Handler) CreateStation(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "Only admins can add stations")
		return
	}

	var station model.Station
	if err := c.ShouldBindJSON(&station); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid station data", "error": err.Error()})
		return
	}
	if msg := validateStation(&station); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}
	if station.Status == "" {
		station.Status = model.StationActive
	}

	ctx := c.Request.Context()
	if station.StationID > 0 {
		var count int64
		if err := h.store.DB().Model(&model.Station{}).
			Where("station_id = ?", station.StationID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Station ID already exists"})
			return
		}
		if err := h.store.SyncCounter(ctx, store.EntityStation, station.StationID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
	} else {
		id, err := h.store.NextID(ctx, store.EntityStation)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		station.StationID = id
	}

	station.ID = 0
	if err := h.store.DB().Create(&station).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error adding station", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, station)
}

// UpdateStation replaces a station's fields. Admin only; located by
// opaque id.
func (h *Handler) UpdateStation(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "Only admins can edit stations")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid station ID"})
		return
	}

	var payload model.Station
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid station data", "error": err.Error()})
		return
	}
	if msg := validateStation(&payload); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	db := h.store.DB()
	var station model.Station
	if err := db.First(&station, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Station not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return
	}

	station.Name = payload.Name
	station.Address = payload.Address
	station.City = payload.City
	station.InServiceAt = payload.InServiceAt
	station.Latitude = payload.Latitude
	station.Longitude = payload.Longitude
	station.Phone = payload.Phone
	station.Email = payload.Email
	station.OpeningHours = payload.OpeningHours
	if payload.Status != "" {
		station.Status = payload.Status
	}

	if err := db.Save(&station).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating station", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, station)
}

// DeleteStation removes a station by opaque id. Admin only.
func (h *Handler) DeleteStation(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "Only admins can delete stations")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid station ID"})
		return
	}

	db := h.store.DB()
	var station model.Station
	if err := db.First(&station, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Station not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return
	}

	if err := db.Delete(&station).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error deleting station", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Station deleted successfully"})
}
