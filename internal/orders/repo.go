package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neokart/neokart-backend/pkg/db/models"
	"github.com/neokart/neokart-backend/pkg/enums"
)

// Repository encapsulates order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an order repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the order and its line snapshots in one go.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// ListByUser returns the user's orders, newest first, with their line
// snapshots preloaded.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByOrderID loads one order by its public reference, scoped to the
// owner so a guessed reference never leaks someone else's order.
func (r *Repository) FindByOrderID(ctx context.Context, userID uuid.UUID, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		Preload("Address").
		Preload("Items").
		Preload("Items.Product").
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// AccountTotals holds the aggregate figures for the account summary.
type AccountTotals struct {
	TotalOrders    int64
	TotalSpent     decimal.Decimal
	DeliveredCount int64
	PendingCount   int64
}

// Totals computes the account aggregates in a single scan.
func (r *Repository) Totals(ctx context.Context, userID uuid.UUID) (AccountTotals, error) {
	var row struct {
		TotalOrders    int64
		TotalSpent     decimal.Decimal
		DeliveredCount int64
		PendingCount   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select(
			"COUNT(*) AS total_orders, "+
				"COALESCE(SUM(total_amount), 0) AS total_spent, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS delivered_count, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending_count",
			enums.OrderStatusDelivered, enums.OrderStatusPending,
		).
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return AccountTotals{}, err
	}
	return AccountTotals{
		TotalOrders:    row.TotalOrders,
		TotalSpent:     row.TotalSpent,
		DeliveredCount: row.DeliveredCount,
		PendingCount:   row.PendingCount,
	}, nil
}

// Recent returns the user's most recent orders with items preloaded.
func (r *Repository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
