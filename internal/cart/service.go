package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neokart/neokart-backend/internal/catalog"
	"github.com/neokart/neokart-backend/internal/pricing"
	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
)

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    *Repository
	CatalogRepo *catalog.Repository
	Now         func() time.Time
}

// Service exposes business rules for cart management.
type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID, variantID *uuid.UUID) error
	SetQuantity(ctx context.Context, userID, lineID uuid.UUID, qty int) error
	Remove(ctx context.Context, userID, lineID uuid.UUID) error
	Snapshot(ctx context.Context, userID uuid.UUID) ([]LineDTO, error)
	View(ctx context.Context, userID uuid.UUID, couponCode string) (ViewDTO, error)
}

type service struct {
	cartRepo    *Repository
	catalogRepo *catalog.Repository
	now         func() time.Time
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		cartRepo:    params.CartRepo,
		catalogRepo: params.CatalogRepo,
		now:         now,
	}, nil
}

// Add puts one unit of a product (or variant) into the cart. Repeated
// adds bump the same line's quantity atomically.
func (s *service) Add(ctx context.Context, userID, productID uuid.UUID, variantID *uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if _, err := s.catalogRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if variantID != nil {
		variant, err := s.catalogRepo.FindVariant(ctx, *variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "variant not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
		}
		if variant.ProductID != productID {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant does not belong to product")
		}
	}

	if err := s.cartRepo.UpsertAdd(ctx, userID, productID, variantID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart line")
	}
	return nil
}

// SetQuantity overwrites a line's quantity; zero or less removes the
// line entirely.
func (s *service) SetQuantity(ctx context.Context, userID, lineID uuid.UUID, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, userID, lineID)
	}

	affected, err := s.cartRepo.SetQuantity(ctx, userID, lineID, qty)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return nil
}

// Remove deletes one owned cart line.
func (s *service) Remove(ctx context.Context, userID, lineID uuid.UUID) error {
	affected, err := s.cartRepo.DeleteLine(ctx, userID, lineID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return nil
}

// Snapshot renders the cart rows with unit prices resolved: the
// variant price when the line has one, else the product price.
func (s *service) Snapshot(ctx context.Context, userID uuid.UUID) ([]LineDTO, error) {
	lines, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return LinesFromItems(lines), nil
}

// View returns the cart page payload: rows, the full pricing
// breakdown under the supplied coupon, and the delivery estimate.
func (s *service) View(ctx context.Context, userID uuid.UUID, couponCode string) (ViewDTO, error) {
	lines, err := s.Snapshot(ctx, userID)
	if err != nil {
		return ViewDTO{}, err
	}

	breakdown, err := pricing.Compute(PricingLines(lines), couponCode)
	if err != nil {
		return ViewDTO{}, err
	}

	return ViewDTO{
		Lines:            lines,
		Breakdown:        breakdown,
		EstimatedArrival: pricing.DeliveryWindow(s.now()),
	}, nil
}
