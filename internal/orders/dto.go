package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/neokart/neokart-backend/internal/address"
	"github.com/neokart/neokart-backend/pkg/db/models"
	"github.com/neokart/neokart-backend/pkg/enums"
)

// ItemDTO is one purchased line. Product fields come from the catalog
// at read time; a product deleted since purchase leaves only the
// snapshot price and quantity.
type ItemDTO struct {
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	ImageURL  *string         `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderDTO is the list/summary view of an order.
type OrderDTO struct {
	OrderID     string            `json:"order_id"`
	Status      enums.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	ItemCount   int               `json:"item_count"`
	Items       []ItemDTO         `json:"items"`
	CreatedAt   time.Time         `json:"created_at"`
}

// DetailDTO adds the delivery address to the order view.
type DetailDTO struct {
	OrderDTO
	Address *address.DTO `json:"address,omitempty"`
}

// SummaryDTO is the account dashboard payload.
type SummaryDTO struct {
	TotalOrders    int64           `json:"total_orders"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	DeliveredCount int64           `json:"delivered_count"`
	PendingCount   int64           `json:"pending_count"`
	LastOrderAt    *time.Time      `json:"last_order_at,omitempty"`
	RecentOrders   []OrderDTO      `json:"recent_orders"`
}

func toItemDTO(item models.OrderItem) ItemDTO {
	dto := ItemDTO{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Subtotal:  item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2),
	}
	if item.Product != nil {
		dto.Name = item.Product.Name
		dto.Slug = item.Product.Slug
		dto.ImageURL = item.Product.ImageURL
	}
	return dto
}

func toOrderDTO(order models.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(order.Items))
	count := 0
	for _, item := range order.Items {
		items = append(items, toItemDTO(item))
		count += item.Quantity
	}
	return OrderDTO{
		OrderID:     order.OrderID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		ItemCount:   count,
		Items:       items,
		CreatedAt:   order.CreatedAt,
	}
}

func toOrderDTOs(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toOrderDTO(row))
	}
	return out
}
