package address

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neokart/neokart-backend/pkg/db/models"
)

// Input carries the delivery fields captured on the checkout form.
type Input struct {
	FullName    string
	Phone       string
	Email       string
	Pincode     string
	AddressLine string
	FlatHouseNo *string
	Landmark    *string
}

// Repository encapsulates address persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an address repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// SetDefault clears any prior default for the user and inserts the new
// address as the single default. Meant to run inside the checkout
// transaction via WithTx so both writes land together.
func (r *Repository) SetDefault(ctx context.Context, userID uuid.UUID, input Input) (*models.Address, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error; err != nil {
		return nil, err
	}

	addr := &models.Address{
		ID:          uuid.New(),
		UserID:      userID,
		FullName:    input.FullName,
		Phone:       input.Phone,
		Email:       input.Email,
		Pincode:     input.Pincode,
		AddressLine: input.AddressLine,
		FlatHouseNo: input.FlatHouseNo,
		Landmark:    input.Landmark,
		IsDefault:   true,
	}
	if err := r.db.WithContext(ctx).Create(addr).Error; err != nil {
		return nil, err
	}
	return addr, nil
}

// FindDefault loads the user's current default address.
func (r *Repository) FindDefault(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	var addr models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&addr).Error
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// ListByUser returns the address book, default first, then newest.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var addrs []models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("created_at DESC").
		Find(&addrs).Error
	return addrs, err
}
