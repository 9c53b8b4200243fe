package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/neokart/neokart-backend/pkg/db/models"
	"github.com/neokart/neokart-backend/pkg/pagination"
)

// CategoryDTO is the browse-surface projection of a category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
	Icon *string   `json:"icon,omitempty"`
}

// ProductCard is the listing projection used by shelves, search
// results, compare trays, and recently-viewed rows.
type ProductCard struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	ShortDescription *string         `json:"short_description,omitempty"`
	Price            decimal.Decimal `json:"price"`
	OldPrice         *decimal.Decimal `json:"old_price,omitempty"`
	Stock            int             `json:"stock"`
	ImageURL         *string         `json:"image_url,omitempty"`
	Rating           float64         `json:"rating"`
	IsHotDeal        bool            `json:"is_hot_deal"`
	IsTopDeal        bool            `json:"is_top_deal"`
	CreatedAt        time.Time       `json:"created_at"`
}

// VariantDTO is one purchasable option on the detail page.
type VariantDTO struct {
	ID          uuid.UUID       `json:"id"`
	VariantType string          `json:"variant_type"`
	Value       string          `json:"value"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// ProductDetailDTO is the full detail-page payload.
type ProductDetailDTO struct {
	ProductCard
	Description *string       `json:"description,omitempty"`
	Category    CategoryDTO   `json:"category"`
	Images      []string      `json:"images"`
	Variants    []VariantDTO  `json:"variants"`
	Recommended []ProductCard `json:"recommended"`
}

// ProductPageDTO is a paginated listing response.
type ProductPageDTO struct {
	Items      []ProductCard       `json:"items"`
	Pagination pagination.PageInfo `json:"pagination"`
}

// HomeDTO feeds the storefront landing payload.
type HomeDTO struct {
	Categories []CategoryDTO `json:"categories"`
	HotDeals   []ProductCard `json:"hot_deals"`
	TopDeals   []ProductCard `json:"top_deals"`
	Latest     []ProductCard `json:"latest"`
}

// ListFilter narrows the catalog listing.
type ListFilter struct {
	Query        string
	CategorySlug string
}

func toCategoryDTO(c models.Category) CategoryDTO {
	return CategoryDTO{
		ID:   c.ID,
		Name: c.Name,
		Slug: c.Slug,
		Icon: c.Icon,
	}
}

// CardFromProduct converts a product row to its card view.
func CardFromProduct(p models.Product) ProductCard {
	return ProductCard{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		OldPrice:         p.OldPrice,
		Stock:            p.Stock,
		ImageURL:         p.ImageURL,
		Rating:           p.Rating,
		IsHotDeal:        p.IsHotDeal,
		IsTopDeal:        p.IsTopDeal,
		CreatedAt:        p.CreatedAt,
	}
}

func toCards(products []models.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, CardFromProduct(p))
	}
	return cards
}
