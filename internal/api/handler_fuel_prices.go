package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"github.com/mahmoudbymassen/station-managment/internal/model"
	"github.com/mahmoudbymassen/station-managment/internal/scope"
)

// ListFuelPrices returns the posted per-day prices. This route is public
// and sits behind the response cache.
func (h *Handler) ListFuelPrices(c *gin.Context) {
	var prices []model.FuelPrice
	if err := h.store.DB().Order("id").Find(&prices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching fuel prices", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prices)
}

type fuelPriceRequest struct {
	Day   string  `json:"day"`
	Price float64 `json:"price"`
}

// SetFuelPrice upserts the price for one day of the week. Admin only.
func (h *Handler) SetFuelPrice(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "")
		return
	}

	var req fuelPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid fuel price data", "error": err.Error()})
		return
	}
	if !model.ValidWeekday(req.Day) || req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid fuel price data"})
		return
	}

	price := model.FuelPrice{Day: req.Day, Price: req.Price}
	err := h.store.DB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(&price).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving fuel price", "error": err.Error()})
		return
	}

	if err := h.store.DB().Where("day = ?", req.Day).First(&price).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving fuel price", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, price)
}
