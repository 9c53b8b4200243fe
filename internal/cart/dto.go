package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/neokart/neokart-backend/internal/pricing"
	"github.com/neokart/neokart-backend/pkg/db/models"
)

// LineDTO is one rendered cart row.
type LineDTO struct {
	LineID       uuid.UUID       `json:"line_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	VariantID    *uuid.UUID      `json:"variant_id,omitempty"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	ImageURL     *string         `json:"image_url,omitempty"`
	VariantLabel string          `json:"variant_label,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// ViewDTO is the full cart page payload: rows plus the running bill.
type ViewDTO struct {
	Lines            []LineDTO         `json:"lines"`
	Breakdown        pricing.Breakdown `json:"breakdown"`
	EstimatedArrival string            `json:"estimated_arrival"`
}

func toLineDTO(item models.CartItem) LineDTO {
	dto := LineDTO{
		LineID:    item.ID,
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		dto.Name = item.Product.Name
		dto.Slug = item.Product.Slug
		dto.ImageURL = item.Product.ImageURL
		dto.UnitPrice = item.Product.Price
	}
	if item.Variant != nil {
		dto.VariantLabel = item.Variant.VariantType + ": " + item.Variant.Value
		dto.UnitPrice = item.Variant.Price
	}
	dto.Subtotal = dto.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
	return dto
}

// LinesFromItems converts persisted cart rows into rendered lines.
func LinesFromItems(items []models.CartItem) []LineDTO {
	out := make([]LineDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toLineDTO(item))
	}
	return out
}

// PricingLines converts cart rows into engine input.
func PricingLines(lines []LineDTO) []pricing.Line {
	out := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, pricing.Line{
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return out
}
