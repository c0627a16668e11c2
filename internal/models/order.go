package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status values. PENDING is the initial state; PAID and CANCELED are
// terminal, no transition ever leaves them.
const (
	StatusPending  = "PENDING"
	StatusPaid     = "PAID"
	StatusCanceled = "CANCELED"
)

type Order struct {
	ID              string      `gorm:"primaryKey" json:"id"`
	UserID          string      `gorm:"index;not null" json:"user_id"`
	User            *User       `json:"user,omitempty"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	ShippingAddress string      `gorm:"not null" json:"shipping_address"`
	Total           float64     `gorm:"not null" json:"total"`
	Status          string      `gorm:"not null;default:PENDING" json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem freezes the unit price at order-creation time, so the order total
// never moves when the catalog price does.
type OrderItem struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"index;not null" json:"order_id"`
	ProductID string  `gorm:"index;not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
