package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neokart/neokart-backend/internal/address"
	"github.com/neokart/neokart-backend/internal/cart"
	"github.com/neokart/neokart-backend/internal/catalog"
	"github.com/neokart/neokart-backend/internal/orders"
	"github.com/neokart/neokart-backend/internal/pricing"
	"github.com/neokart/neokart-backend/pkg/db"
	"github.com/neokart/neokart-backend/pkg/db/models"
	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
)

// orderIDRetries bounds how many times a colliding public reference is
// regenerated before the checkout gives up.
const orderIDRetries = 3

// PrefillDTO is the checkout page payload: the bill to confirm plus
// the saved default address, when one exists.
type PrefillDTO struct {
	Lines            []cart.LineDTO    `json:"lines"`
	Breakdown        pricing.Breakdown `json:"breakdown"`
	EstimatedArrival string            `json:"estimated_arrival"`
	Address          *address.DTO      `json:"address,omitempty"`
}

// ConfirmationDTO is returned once the order is placed.
type ConfirmationDTO struct {
	OrderID          string          `json:"order_id"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
	EstimatedArrival string          `json:"estimated_arrival"`
	Address          address.DTO     `json:"address"`
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	DB          *db.Client
	CartRepo    *cart.Repository
	CatalogRepo *catalog.Repository
	AddressRepo *address.Repository
	OrderRepo   *orders.Repository
	Now         func() time.Time
}

// Service runs the checkout pipeline.
type Service interface {
	Prefill(ctx context.Context, userID uuid.UUID) (*PrefillDTO, error)
	Execute(ctx context.Context, userID uuid.UUID, input address.Input) (*ConfirmationDTO, error)
}

type service struct {
	db          *db.Client
	cartRepo    *cart.Repository
	catalogRepo *catalog.Repository
	addressRepo *address.Repository
	orderRepo   *orders.Repository
	now         func() time.Time
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	if params.AddressRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address repo is required")
	}
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:          params.DB,
		cartRepo:    params.CartRepo,
		catalogRepo: params.CatalogRepo,
		addressRepo: params.AddressRepo,
		orderRepo:   params.OrderRepo,
		now:         now,
	}, nil
}

// Prefill assembles the checkout page: the cart bill and the saved
// default address for the form.
func (s *service) Prefill(ctx context.Context, userID uuid.UUID) (*PrefillDTO, error) {
	items, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	lines := cart.LinesFromItems(items)
	prefill := &PrefillDTO{
		Lines:            lines,
		Breakdown:        pricing.ComputeCheckout(cart.PricingLines(lines)),
		EstimatedArrival: pricing.DeliveryWindow(s.now()),
	}

	saved, err := s.addressRepo.FindDefault(ctx, userID)
	switch {
	case err == nil:
		dto := address.ToDTO(*saved)
		prefill.Address = &dto
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first checkout, nothing saved yet
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default address")
	}

	return prefill, nil
}

// Execute places the order: it saves the address as the new default,
// snapshots the cart into order lines, walks down product stock and
// empties the cart, all inside one transaction. A cart that changed
// underneath the confirmation aborts with a conflict.
func (s *service) Execute(ctx context.Context, userID uuid.UUID, input address.Input) (*ConfirmationDTO, error) {
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	lines := cart.LinesFromItems(items)
	breakdown := pricing.ComputeCheckout(cart.PricingLines(lines))

	var confirmation *ConfirmationDTO
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		addrRepo := s.addressRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		catalogRepo := s.catalogRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		addr, err := addrRepo.SetDefault(ctx, userID, input)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving address")
		}

		order, err := s.insertOrder(ctx, orderRepo, userID, addr.ID, breakdown.GrandTotal, items)
		if err != nil {
			return err
		}

		for _, item := range items {
			if err := catalogRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating stock")
			}
		}

		cleared, err := cartRepo.Clear(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
		}
		if cleared != int64(len(items)) {
			return pkgerrors.New(pkgerrors.CodeConflict, "cart changed during checkout")
		}

		confirmation = &ConfirmationDTO{
			OrderID:          order.OrderID,
			GrandTotal:       order.TotalAmount,
			EstimatedArrival: pricing.DeliveryWindow(s.now()),
			Address:          address.ToDTO(*addr),
		}
		return nil
	})
	if txErr != nil {
		if typed := pkgerrors.As(txErr); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "placing order")
	}

	return confirmation, nil
}

// insertOrder creates the order row with a fresh public reference,
// retrying on the rare reference collision. Line snapshots record the
// product's base price, variant lines included.
func (s *service) insertOrder(ctx context.Context, repo *orders.Repository, userID, addressID uuid.UUID, total decimal.Decimal, items []models.CartItem) (*models.Order, error) {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		productID := item.ProductID
		snapshot := models.OrderItem{
			ID:        uuid.New(),
			ProductID: &productID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			snapshot.Price = item.Product.Price
		}
		orderItems = append(orderItems, snapshot)
	}

	var lastErr error
	for attempt := 0; attempt < orderIDRetries; attempt++ {
		ref, err := newOrderID()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating order id")
		}

		order := &models.Order{
			ID:          uuid.New(),
			OrderID:     ref,
			UserID:      userID,
			AddressID:   &addressID,
			TotalAmount: total,
			Items:       cloneItems(orderItems),
		}
		if err := repo.Create(ctx, order); err != nil {
			if pkgerrors.IsUniqueViolation(err) {
				lastErr = err
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order")
		}
		return order, nil
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "exhausted order id attempts")
}

// cloneItems gives each attempt its own slice so a retried insert does
// not reuse IDs already sent to the database.
func cloneItems(items []models.OrderItem) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].ID = uuid.New()
	}
	return out
}

func validateAddressInput(input address.Input) error {
	required := []struct {
		field string
		value string
	}{
		{"full_name", input.FullName},
		{"phone", input.Phone},
		{"email", input.Email},
		{"pincode", input.Pincode},
		{"address_line", input.AddressLine},
	}

	var missing []string
	for _, item := range required {
		if strings.TrimSpace(item.value) == "" {
			missing = append(missing, item.field)
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is incomplete").
			WithDetails(map[string]any{"missing": missing})
	}
	return nil
}
