package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neokart/neokart-backend/pkg/db/models"
)

// nilVariantID stands in for NULL variant ids inside the unique
// expression index so plain-product lines conflict with each other.
const nilVariantID = "00000000-0000-0000-0000-000000000000"

// Repository encapsulates cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// UpsertAdd inserts the cart line or bumps its quantity by one in a
// single statement, so concurrent adds never lose increments. The
// conflict target must match the unique expression index on
// (user_id, product_id, COALESCE(variant_id, nil-uuid)).
func (r *Repository) UpsertAdd(ctx context.Context, userID, productID uuid.UUID, variantID *uuid.UUID) error {
	sql := `INSERT INTO cart_items (id, user_id, product_id, variant_id, quantity, created_at, updated_at)
VALUES (?, ?, ?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (user_id, product_id, COALESCE(variant_id, '` + nilVariantID + `'))
DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = CURRENT_TIMESTAMP`
	if r.db.Dialector.Name() == "postgres" {
		sql = `INSERT INTO cart_items (id, user_id, product_id, variant_id, quantity, created_at, updated_at)
VALUES (?, ?, ?, ?, 1, now(), now())
ON CONFLICT (user_id, product_id, COALESCE(variant_id, '` + nilVariantID + `'::uuid))
DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = now()`
	}

	return r.db.WithContext(ctx).
		Exec(sql, uuid.New(), userID, productID, variantID).
		Error
}

// SetQuantity overwrites a line's quantity; the ownership filter keeps
// users inside their own carts. Returns rows affected.
func (r *Repository) SetQuantity(ctx context.Context, userID, lineID uuid.UUID, qty int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Updates(map[string]any{"quantity": qty})
	return res.RowsAffected, res.Error
}

// DeleteLine removes one owned cart line. Returns rows affected.
func (r *Repository) DeleteLine(ctx context.Context, userID, lineID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// ListLines returns the user's cart with product and variant rows,
// oldest line first.
func (r *Repository) ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var lines []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Variant").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, err
}

// Clear deletes the whole cart and reports how many lines went away.
// Checkout compares the count against its snapshot to detect a
// concurrent checkout of the same cart.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
