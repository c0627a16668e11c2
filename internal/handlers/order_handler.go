package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jimitchavdadev/ecommerce-platform/internal/models"
	"github.com/jimitchavdadev/ecommerce-platform/internal/orders"
)

type OrderHandler struct {
	svc *orders.Service
	log *zap.SugaredLogger
}

func NewOrderHandler(svc *orders.Service, log *zap.SugaredLogger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]orders.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orders.ItemRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.svc.Create(c.Request.Context(), ident.ID, items, req.ShippingAddress)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	h.log.Infow("order created", "order_id", order.ID, "user_id", ident.ID, "total", order.Total)
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}

	list, err := h.svc.ListByUser(c.Request.Context(), ident.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	if !requireAdmin(c, ident, models.RoleAdmin) {
		return
	}

	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) Summary(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	if !requireAdmin(c, ident, models.RoleAdmin) {
		return
	}

	sum, err := h.svc.Summarize(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, sum)
}
