package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/internal/model"
)

// ListServices returns service records newest first, restricted to the
// manager's station.
func (h *Handler) ListServices(c *gin.Context) {
	ident := mustIdentity(c)

	q := h.store.DB()
	seq, restricted, err := h.scope.ListSeq(c.Request.Context(), ident)
	if err != nil {
		abortScope(c, err, "")
		return
	}
	if restricted {
		q = q.Where("station_id = ?", seq)
	}

	var services []model.Service
	if err := q.Order("date DESC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching services", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

// CreateService records a service revenue entry. The station reference
// is checked for existence before the write.
func (h *Handler) CreateService(c *gin.Context) {
	ident := mustIdentity(c)

	var service model.Service
	if err := c.ShouldBindJSON(&service); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid service data", "error": err.Error()})
		return
	}
	if !model.ValidServiceType(service.Type) || service.Revenue < 0 || service.Date.IsZero() || service.StationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid service data"})
		return
	}

	ctx := c.Request.Context()
	if err := h.scope.CheckCreateSeq(ctx, ident, service.StationID); err != nil {
		abortScope(c, err, "Can only add services for your station")
		return
	}

	db := h.store.DB()
	var count int64
	if err := db.Model(&model.Station{}).Where("station_id = ?", service.StationID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid station ID"})
		return
	}

	service.ID = 0
	if err := db.Create(&service).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error adding service", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, service)
}

// serviceSummaryRow is one aggregated revenue bucket.
type serviceSummaryRow struct {
	Type    string  `json:"type"`
	Revenue float64 `json:"revenue"`
}

// ServiceSummary aggregates revenue by service type, restricted to the
// manager's station.
func (h *Handler) ServiceSummary(c *gin.Context) {
	ident := mustIdentity(c)

	q := h.store.DB().Model(&model.Service{})
	seq, restricted, err := h.scope.ListSeq(c.Request.Context(), ident)
	if err != nil {
		abortScope(c, err, "")
		return
	}
	if restricted {
		q = q.Where("station_id = ?", seq)
	}

	var summary []serviceSummaryRow
	if err := q.Select("type, SUM(revenue) as revenue").Group("type").Scan(&summary).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching service summary", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) findService(c *gin.Context) (*model.Service, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid service ID"})
		return nil, false
	}

	var service model.Service
	if err := h.store.DB().First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Service not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return nil, false
	}
	return &service, true
}

// UpdateService replaces a service entry's type, revenue and date. The
// station reference cannot change through this operation.
func (h *Handler) UpdateService(c *gin.Context) {
	ident := mustIdentity(c)

	service, ok := h.findService(c)
	if !ok {
		return
	}

	var payload model.Service
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid service data", "error": err.Error()})
		return
	}
	if !model.ValidServiceType(payload.Type) || payload.Revenue < 0 || payload.Date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid service data"})
		return
	}

	if err := h.scope.CheckMutateSeq(c.Request.Context(), ident, service.StationID, payload.StationID); err != nil {
		abortScope(c, err, "Can only edit services for your station")
		return
	}

	service.Type = payload.Type
	service.Revenue = payload.Revenue
	service.Date = payload.Date
	if ident.IsAdmin() && payload.StationID > 0 {
		service.StationID = payload.StationID
	}

	if err := h.store.DB().Save(service).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating service", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service entry.
func (h *Handler) DeleteService(c *gin.Context) {
	ident := mustIdentity(c)

	service, ok := h.findService(c)
	if !ok {
		return
	}

	if err := h.scope.CheckMutateSeq(c.Request.Context(), ident, service.StationID, 0); err != nil {
		abortScope(c, err, "Can only delete services for your station")
		return
	}

	if err := h.store.DB().Delete(service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
