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

// ListSuppliers returns all suppliers. Suppliers are global, so no
// station scoping applies.
func (h *Handler) ListSuppliers(c *gin.Context) {
	mustIdentity(c)

	var suppliers []model.Supplier
	if err := h.store.DB().Find(&suppliers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching suppliers", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func validateSupplier(s *model.Supplier) string {
	switch {
	case s.Name == "" || s.Address == "" || s.Phone == "" || s.Email == "" || s.City == "" || s.Contact == "":
		return "Required fields are missing"
	case s.Status != "" && !model.ValidSupplierStatus(s.Status):
		return "Invalid supplier status"
	}
	return ""
}

// CreateSupplier adds a supplier. Admin only.
func (h *Handler) CreateSupplier(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "")
		return
	}

	var supplier model.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid supplier data", "error": err.Error()})
		return
	}
	if msg := validateSupplier(&supplier); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}
	if supplier.Status == "" {
		supplier.Status = "Active"
	}

	id, err := h.store.NextID(c.Request.Context(), store.EntitySupplier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	supplier.ID = 0
	supplier.SupplierID = id

	if err := h.store.DB().Create(&supplier).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating supplier", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *Handler) findSupplier(c *gin.Context) (*model.Supplier, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid supplier ID"})
		return nil, false
	}

	var supplier model.Supplier
	if err := h.store.DB().Where("supplier_id = ?", id).First(&supplier).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Supplier not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return nil, false
	}
	return &supplier, true
}

// UpdateSupplier replaces a supplier's fields. Admin only.
func (h *Handler) UpdateSupplier(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "")
		return
	}

	supplier, ok := h.findSupplier(c)
	if !ok {
		return
	}

	var payload model.Supplier
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid supplier data", "error": err.Error()})
		return
	}
	if msg := validateSupplier(&payload); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	supplier.Name = payload.Name
	supplier.Address = payload.Address
	supplier.Phone = payload.Phone
	supplier.Email = payload.Email
	supplier.City = payload.City
	supplier.Contact = payload.Contact
	if payload.Status != "" {
		supplier.Status = payload.Status
	}

	if err := h.store.DB().Save(supplier).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating supplier", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier removes a supplier. Admin only.
func (h *Handler) DeleteSupplier(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "")
		return
	}

	supplier, ok := h.findSupplier(c)
	if !ok {
		return
	}

	if err := h.store.DB().Delete(supplier).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}
