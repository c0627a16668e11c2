package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jimitchavdadev/ecommerce-platform/internal/events"
	"github.com/jimitchavdadev/ecommerce-platform/internal/models"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
)

// ItemRequest is one requested (product, quantity) line of a cart.
type ItemRequest struct {
	ProductID string
	Quantity  int
}

// Service owns order creation and the PENDING -> PAID / PENDING -> CANCELED
// state machine. Stock is never touched at creation time; the decrement is
// deferred to the PAID transition so abandoned checkouts cannot leak
// inventory.
type Service struct {
	db  *gorm.DB
	pub events.Publisher
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, pub events.Publisher, log *zap.SugaredLogger) *Service {
	return &Service{db: db, pub: pub, log: log}
}

// Create validates the cart against the live catalog, freezes per-item prices
// and persists the order with its items as one transaction. On any validation
// failure nothing is written.
func (s *Service) Create(ctx context.Context, userID string, items []ItemRequest, shippingAddress string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	order := models.Order{
		UserID:          userID,
		ShippingAddress: shippingAddress,
		Status:          models.StatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Quantities are accumulated per product so a cart that repeats a
		// product cannot slip past the stock check line by line.
		required := make(map[string]int, len(items))

		for _, item := range items {
			if item.Quantity <= 0 {
				return fmt.Errorf("%w: quantity must be positive", ErrEmptyOrder)
			}

			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
				}
				return err
			}

			required[product.ID] += item.Quantity
			if required[product.ID] > product.Stock {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
			order.Total += product.Price * float64(item.Quantity)
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &order, "created")
	return &order, nil
}

// MarkPaid drives the order to PAID and decrements stock for every item, all
// inside one transaction. The decrement is conditional (stock >= quantity
// checked by the database, not the application), so concurrent finalizations
// racing for the same product cannot push stock negative. If any item cannot
// be satisfied the whole transition rolls back and the order stays PENDING
// for manual reconciliation.
//
// Calling MarkPaid on an already-PAID order is a no-op success: repeated
// verification callbacks must not decrement stock twice. The returned bool
// reports whether this call performed the transition.
func (s *Service) MarkPaid(ctx context.Context, orderID string) (*models.Order, bool, error) {
	var order models.Order
	transitioned := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
			}
			return err
		}

		switch order.Status {
		case models.StatusPaid:
			return nil
		case models.StatusCanceled:
			return fmt.Errorf("%w: order %s is CANCELED", ErrInvalidTransition, orderID)
		}

		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for product %s", ErrInsufficientStock, item.ProductID)
			}
		}

		if err := tx.Model(&order).UpdateColumn("status", models.StatusPaid).Error; err != nil {
			return err
		}
		order.Status = models.StatusPaid
		transitioned = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if transitioned {
		s.publish(ctx, &order, "paid")
	}
	return &order, transitioned, nil
}

// MarkCanceled drives the order to CANCELED without touching stock. Canceling
// an already-CANCELED order is a no-op; a PAID order can never be canceled.
func (s *Service) MarkCanceled(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	transitioned := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
			}
			return err
		}

		switch order.Status {
		case models.StatusCanceled:
			return nil
		case models.StatusPaid:
			return fmt.Errorf("%w: order %s is PAID", ErrInvalidTransition, orderID)
		}

		if err := tx.Model(&order).UpdateColumn("status", models.StatusCanceled).Error; err != nil {
			return err
		}
		order.Status = models.StatusCanceled
		transitioned = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if transitioned {
		s.publish(ctx, &order, "canceled")
	}
	return &order, nil
}

// ListByUser returns the caller's own orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll returns every order with its owner, for operators.
func (s *Service) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Get loads a single order for ownership checks before opening an intent.
func (s *Service) Get(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, err
	}
	return &order, nil
}

func (s *Service) publish(ctx context.Context, order *models.Order, status string) {
	evt := events.OrderEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  status,
		Total:   order.Total,
		At:      time.Now(),
	}
	if err := s.pub.PublishOrderEvent(ctx, evt); err != nil {
		// Events are best effort; the transaction already committed.
		s.log.Warnw("order event publish failed", "order_id", order.ID, "err", err)
	}
}
