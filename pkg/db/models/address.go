package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is a saved delivery destination. At most one per user is
// flagged default.
type Address struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:addresses_user_id_idx"`
	FullName    string    `gorm:"column:full_name;not null"`
	Phone       string    `gorm:"column:phone;not null"`
	Email       string    `gorm:"column:email;not null"`
	Pincode     string    `gorm:"column:pincode;not null"`
	AddressLine string    `gorm:"column:address_line;not null"`
	FlatHouseNo *string   `gorm:"column:flat_house_no"`
	Landmark    *string   `gorm:"column:landmark"`
	IsDefault   bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
