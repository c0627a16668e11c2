package orders

import (
	"context"

	"github.com/jimitchavdadev/ecommerce-platform/internal/models"
)

const lowStockThreshold = 5

// Summary is the operator dashboard aggregate.
type Summary struct {
	TotalOrders    int64   `json:"total_orders"`
	PendingOrders  int64   `json:"pending_orders"`
	PaidOrders     int64   `json:"paid_orders"`
	CanceledOrders int64   `json:"canceled_orders"`
	GrossRevenue   float64 `json:"gross_revenue"`
	LowStockCount  int64   `json:"low_stock_count"`
}

// Summarize aggregates order counts by status, revenue over PAID orders and
// the number of products running low on stock.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	var sum Summary
	gdb := s.db.WithContext(ctx)

	if err := gdb.Model(&models.Order{}).Count(&sum.TotalOrders).Error; err != nil {
		return nil, err
	}

	byStatus := map[string]*int64{
		models.StatusPending:  &sum.PendingOrders,
		models.StatusPaid:     &sum.PaidOrders,
		models.StatusCanceled: &sum.CanceledOrders,
	}
	for status, dst := range byStatus {
		if err := gdb.Model(&models.Order{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}

	err := gdb.Model(&models.Order{}).
		Where("status = ?", models.StatusPaid).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum.GrossRevenue).Error
	if err != nil {
		return nil, err
	}

	err = gdb.Model(&models.Product{}).
		Where("stock < ?", lowStockThreshold).
		Count(&sum.LowStockCount).Error
	if err != nil {
		return nil, err
	}

	return &sum, nil
}
