package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jimitchavdadev/ecommerce-platform/internal/cache"
	"github.com/jimitchavdadev/ecommerce-platform/internal/models"
)

type ProductHandler struct {
	db    *gorm.DB
	cache *cache.ProductCache
	log   *zap.SugaredLogger
}

func NewProductHandler(db *gorm.DB, productCache *cache.ProductCache, log *zap.SugaredLogger) *ProductHandler {
	return &ProductHandler{db: db, cache: productCache, log: log}
}

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"required,gte=0"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Images      []string `json:"images"`
	Category    string   `json:"category" binding:"required"`
}

// UpdateProductRequest is a partial update; only non-nil fields are applied.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	Stock       *int      `json:"stock" binding:"omitempty,gte=0"`
	Images      *[]string `json:"images"`
	Category    *string   `json:"category"`
}

func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if products, ok := h.cache.GetList(ctx); ok {
		c.JSON(http.StatusOK, products)
		return
	}

	var products []models.Product
	if err := h.db.WithContext(ctx).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.cache.SetList(ctx, products)
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.db.WithContext(c.Request.Context()).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("product not found: %s", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	if !requireAdmin(c, ident, models.RoleAdmin) {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
		Category:    req.Category,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.cache.Invalidate(c.Request.Context())
	h.log.Infow("product created", "product_id", product.ID, "name", product.Name)
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	if !requireAdmin(c, ident, models.RoleAdmin) {
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()

	var product models.Product
	if err := h.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("product not found: %s", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Category != nil {
		product.Category = *req.Category
	}

	if err := h.db.WithContext(ctx).Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	if !requireAdmin(c, ident, models.RoleAdmin) {
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()

	res := h.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("product not found: %s", id)})
		return
	}

	h.cache.Invalidate(ctx)
	h.log.Infow("product deleted", "product_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
