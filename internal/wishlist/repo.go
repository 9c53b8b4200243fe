package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neokart/neokart-backend/pkg/db/models"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add saves a product onto the user's wishlist. A product already on
// the list is a no-op, matching the unique (user_id, product_id) key.
func (r *Repository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	sql := `INSERT INTO wishlist_items (id, user_id, product_id, created_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (user_id, product_id) DO NOTHING`
	if r.db.Dialector.Name() == "postgres" {
		sql = `INSERT INTO wishlist_items (id, user_id, product_id, created_at)
VALUES (?, ?, ?, now())
ON CONFLICT (user_id, product_id) DO NOTHING`
	}

	return r.db.WithContext(ctx).
		Exec(sql, uuid.New(), userID, productID).
		Error
}

// Remove drops a product from the wishlist. Removing an absent product
// is silent.
func (r *Repository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error
}

// ListByUser returns the wishlist entries newest first with products
// preloaded.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Contains reports whether the product is on the user's wishlist.
func (r *Repository) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}
