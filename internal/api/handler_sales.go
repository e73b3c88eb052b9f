package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/internal/model"
)

// ListSales returns sales newest first, restricted to the manager's
// station. Admins may narrow with ?station=<sequential id>.
func (h *Handler) ListSales(c *gin.Context) {
	ident := mustIdentity(c)

	q := h.store.DB()
	seq, restricted, err := h.scope.ListSeq(c.Request.Context(), ident)
	if err != nil {
		abortScope(c, err, "")
		return
	}
	if restricted {
		q = q.Where("station_id = ?", seq)
	} else if s := c.Query("station"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil {
			q = q.Where("station_id = ?", parsed)
		}
	}

	var sales []model.Sale
	if err := q.Order("created_at DESC").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching sales", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sales)
}

type saleRequest struct {
	Day       string  `json:"day"`
	Amount    float64 `json:"sales"`
	ProductID int     `json:"productId"`
	StationID int     `json:"stationId"`
}

// CreateSale records a revenue entry. Product and station references are
// checked for existence before the write.
func (h *Handler) CreateSale(c *gin.Context) {
	ident := mustIdentity(c)

	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid sale data", "error": err.Error()})
		return
	}

	if !model.ValidWeekday(req.Day) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Day is required and must be a valid day of the week"})
		return
	}
	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Sales must be a non-negative number"})
		return
	}
	if req.ProductID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid Product ID is required"})
		return
	}
	if req.StationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid Station ID is required"})
		return
	}

	ctx := c.Request.Context()
	if err := h.scope.CheckCreateSeq(ctx, ident, req.StationID); err != nil {
		abortScope(c, err, "Can only add sales for your station")
		return
	}

	db := h.store.DB()
	var count int64
	if err := db.Model(&model.Station{}).Where("station_id = ?", req.StationID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid station ID"})
		return
	}
	if err := db.Model(&model.Product{}).Where("product_id = ?", req.ProductID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	sale := model.Sale{
		Day:       req.Day,
		Amount:    req.Amount,
		ProductID: req.ProductID,
		StationID: req.StationID,
	}
	if err := db.Create(&sale).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error saving sales", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *Handler) findSale(c *gin.Context) (*model.Sale, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid sale ID"})
		return nil, false
	}

	var sale model.Sale
	if err := h.store.DB().First(&sale, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Sale not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return nil, false
	}
	return &sale, true
}

// UpdateSale replaces a sale's day and amount. The station reference
// cannot change through this operation.
func (h *Handler) UpdateSale(c *gin.Context) {
	ident := mustIdentity(c)

	sale, ok := h.findSale(c)
	if !ok {
		return
	}

	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid sale data", "error": err.Error()})
		return
	}
	if !model.ValidWeekday(req.Day) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Day is required and must be a valid day of the week"})
		return
	}
	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Sales must be a non-negative number"})
		return
	}

	if err := h.scope.CheckMutateSeq(c.Request.Context(), ident, sale.StationID, req.StationID); err != nil {
		abortScope(c, err, "Can only edit sales for your station")
		return
	}

	sale.Day = req.Day
	sale.Amount = req.Amount
	if req.ProductID > 0 {
		sale.ProductID = req.ProductID
	}
	if ident.IsAdmin() && req.StationID > 0 {
		sale.StationID = req.StationID
	}

	if err := h.store.DB().Save(sale).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating sale", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sale)
}

// DeleteSale removes a revenue entry.
func (h *Handler) DeleteSale(c *gin.Context) {
	ident := mustIdentity(c)

	sale, ok := h.findSale(c)
	if !ok {
		return
	}

	if err := h.scope.CheckMutateSeq(c.Request.Context(), ident, sale.StationID, 0); err != nil {
		abortScope(c, err, "Can only delete sales for your station")
		return
	}

	if err := h.store.DB().Delete(sale).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
