package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mahmoudbymassen/station-managment/internal/model"
	"github.com/mahmoudbymassen/station-managment/internal/store"
)

// ListStock returns the current stock rows, restricted to the manager's
// station.
func (h *Handler) ListStock(c *gin.Context) {
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

	var stocks []model.Stock
	if err := q.Order("station_id, item").Find(&stocks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching stock", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stocks)
}

type stockRequest struct {
	Item      string   `json:"item"`
	Level     *float64 `json:"level"`
	Capacity  *float64 `json:"capacity"`
	StationID int      `json:"stationId"`
}

// UpdateStock replaces the level of the (item, station) stock row,
// creating the row with a default capacity when it does not exist yet.
func (h *Handler) UpdateStock(c *gin.Context) {
	ident := mustIdentity(c)

	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid stock data", "error": err.Error()})
		return
	}
	if !model.ValidStockItem(req.Item) || req.Level == nil || req.StationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid stock data"})
		return
	}

	ctx := c.Request.Context()
	if err := h.scope.CheckCreateSeq(ctx, ident, req.StationID); err != nil {
		abortScope(c, err, "Can only update stock for your station")
		return
	}

	stock, err := h.store.SetStockLevel(ctx, req.Item, req.StationID, *req.Level, req.Capacity)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNegativeLevel):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Stock level cannot be negative"})
		case errors.Is(err, store.ErrOverCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Stock level exceeds capacity"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating stock", "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, stock)
}

// ListDeliveries returns deliveries newest scheduled first, restricted to
// the manager's station.
func (h *Handler) ListDeliveries(c *gin.Context) {
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

	var deliveries []model.Delivery
	if err := q.Order("scheduled_date DESC").Find(&deliveries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching deliveries", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

type deliveryRequest struct {
	Item          string    `json:"item"`
	Amount        float64   `json:"amount"`
	Supplier      string    `json:"supplier"`
	ScheduledDate time.Time `json:"scheduledDate"`
	StationID     int       `json:"stationId"`
}

// ScheduleDelivery records a delivery and applies its amount to the
// matching stock level in the same transaction.
func (h *Handler) ScheduleDelivery(c *gin.Context) {
	ident := mustIdentity(c)

	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid delivery data", "error": err.Error()})
		return
	}
	if !model.ValidStockItem(req.Item) || req.Amount <= 0 || req.Supplier == "" || req.ScheduledDate.IsZero() || req.StationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid delivery data"})
		return
	}

	ctx := c.Request.Context()
	if err := h.scope.CheckCreateSeq(ctx, ident, req.StationID); err != nil {
		abortScope(c, err, "Can only schedule deliveries for your station")
		return
	}

	delivery := model.Delivery{
		Item:          req.Item,
		Amount:        req.Amount,
		Supplier:      req.Supplier,
		ScheduledDate: req.ScheduledDate,
		StationID:     req.StationID,
	}
	stock, err := h.store.ScheduleDelivery(ctx, &delivery)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNegativeLevel):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Delivery amount cannot be negative"})
		case errors.Is(err, store.ErrOverCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Delivery would exceed tank capacity"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error scheduling delivery", "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"delivery": delivery, "stock": stock})
}

// ListStockHistory returns the append-only level snapshots newest first,
// restricted to the manager's station.
func (h *Handler) ListStockHistory(c *gin.Context) {
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

	var history []model.StockHistory
	if err := q.Order("created_at DESC").Limit(200).Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching stock history", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}
