package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents the canonical catalog listing.
type Product struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID       uuid.UUID        `gorm:"column:category_id;type:uuid;not null;index:products_category_id_idx"`
	Name             string           `gorm:"column:name;not null"`
	Slug             string           `gorm:"column:slug;not null;uniqueIndex"`
	ShortDescription *string          `gorm:"column:short_description"`
	Description      *string          `gorm:"column:description"`
	Price            decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	OldPrice         *decimal.Decimal `gorm:"column:old_price;type:numeric(10,2)"`
	Stock            int              `gorm:"column:stock;not null;default:0"`
	ImageURL         *string          `gorm:"column:image_url"`
	Rating           float64          `gorm:"column:rating;type:numeric(3,2);not null;default:0"`
	IsHotDeal        bool             `gorm:"column:is_hot_deal;not null;default:false"`
	IsTopDeal        bool             `gorm:"column:is_top_deal;not null;default:false"`
	Category         *Category        `gorm:"foreignKey:CategoryID"`
	Images           []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants         []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
