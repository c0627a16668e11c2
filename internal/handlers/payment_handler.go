package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jimitchavdadev/ecommerce-platform/internal/models"
	"github.com/jimitchavdadev/ecommerce-platform/internal/notifier"
	"github.com/jimitchavdadev/ecommerce-platform/internal/orders"
	"github.com/jimitchavdadev/ecommerce-platform/internal/payments"
)

type PaymentHandler struct {
	db       *gorm.DB
	svc      *orders.Service
	gateway  payments.Gateway
	verifier payments.Verifier
	notify   *notifier.Notifier
	log      *zap.SugaredLogger
}

func NewPaymentHandler(db *gorm.DB, svc *orders.Service, gateway payments.Gateway, verifier payments.Verifier, notify *notifier.Notifier, log *zap.SugaredLogger) *PaymentHandler {
	return &PaymentHandler{db: db, svc: svc, gateway: gateway, verifier: verifier, notify: notify, log: log}
}

type CreateIntentRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Receipt string  `json:"receipt" binding:"required"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	InternalOrderID   string `json:"internal_order_id" binding:"required"`
}

// CreateIntent opens a payment order at the gateway for the caller's own
// order. A gateway failure is an upstream error; the internal order stays
// PENDING, nothing was charged.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.svc.Get(c.Request.Context(), req.Receipt)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	if order.UserID != ident.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "order belongs to another user"})
		return
	}

	intent, err := h.gateway.CreateIntent(c.Request.Context(), req.Amount, req.Receipt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not create payment order"})
		return
	}

	c.JSON(http.StatusCreated, intent)
}

// Verify authenticates the gateway callback. A matching signature finalizes
// the order as PAID (decrementing stock); a mismatch cancels it and fails the
// request. Repeating the call for an already-PAID order acknowledges again
// without touching stock.
func (h *PaymentHandler) Verify(c *gin.Context) {
	if _, ok := mustIdentity(c); !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	if !h.verifier.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		h.log.Warnw("payment signature mismatch", "order_id", req.InternalOrderID, "gateway_order_id", req.RazorpayOrderID)

		if _, err := h.svc.MarkCanceled(ctx, req.InternalOrderID); err != nil && !errors.Is(err, orders.ErrInvalidTransition) {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment verification failed"})
		return
	}

	order, transitioned, err := h.svc.MarkPaid(ctx, req.InternalOrderID)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	if transitioned {
		h.sendConfirmation(order)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "order_id": order.ID})
}

// sendConfirmation is fired once per PENDING -> PAID transition, off the
// request path. Failures are logged, never surfaced to the payer.
func (h *PaymentHandler) sendConfirmation(order *models.Order) {
	if h.notify == nil {
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", order.UserID).Error; err != nil {
		h.log.Warnw("confirmation skipped, user lookup failed", "order_id", order.ID, "err", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := h.notify.SendPaymentEmail(ctx, user.Email, user.Name, order.ID, order.Total); err != nil {
			h.log.Warnw("confirmation email failed", "order_id", order.ID, "err", err)
		}
	}()

	if user.Phone != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := h.notify.SendPaymentSMS(ctx, user.Phone, order.ID, order.Total); err != nil {
				h.log.Warnw("confirmation SMS failed", "order_id", order.ID, "err", err)
			}
		}()
	}
}
