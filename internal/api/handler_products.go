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

// ListProducts returns all products. Products are global.
func (h *Handler) ListProducts(c *gin.Context) {
	mustIdentity(c)

	var products []model.Product
	if err := h.store.DB().Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching products", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func validateProduct(p *model.Product) string {
	switch {
	case p.Name == "":
		return "Product Name is required"
	case p.Type == "":
		return "Type is required"
	case p.AddedAt.IsZero():
		return "Date Added is required"
	case p.Unit == "":
		return "Unit is required"
	}
	return ""
}

// CreateProduct adds a product. Admin only. A client-supplied sequential
// id is honored after a duplicate check; otherwise one is allocated.
func (h *Handler) CreateProduct(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "")
		return
	}

	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product data", "error": err.Error()})
		return
	}
	if msg := validateProduct(&product); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	ctx := c.Request.Context()
	if product.ProductID > 0 {
		var count int64
		if err := h.store.DB().Model(&model.Product{}).
			Where("product_id = ?", product.ProductID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Product ID already exists"})
			return
		}
		if err := h.store.SyncCounter(ctx, store.EntityProduct, product.ProductID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
	} else {
		id, err := h.store.NextID(ctx, store.EntityProduct)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		product.ProductID = id
	}

	product.ID = 0
	if err := h.store.DB().Create(&product).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating product", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) findProduct(c *gin.Context) (*model.Product, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return nil, false
	}

	var product model.Product
	if err := h.store.DB().Where("product_id = ?", id).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return nil, false
	}
	return &product, true
}

// UpdateProduct replaces a product's fields. Admin only.
func (h *Handler) UpdateProduct(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "")
		return
	}

	product, ok := h.findProduct(c)
	if !ok {
		return
	}

	var payload model.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product data", "error": err.Error()})
		return
	}
	if msg := validateProduct(&payload); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	product.Name = payload.Name
	product.Type = payload.Type
	product.AddedAt = payload.AddedAt
	product.Unit = payload.Unit

	if err := h.store.DB().Save(product).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating product", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product. Admin only.
func (h *Handler) DeleteProduct(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "")
		return
	}

	product, ok := h.findProduct(c)
	if !ok {
		return
	}

	if err := h.store.DB().Delete(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
