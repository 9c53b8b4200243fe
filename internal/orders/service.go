package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neokart/neokart-backend/internal/address"
	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
)

const recentOrdersLimit = 5

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes order history reads.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	Detail(ctx context.Context, userID uuid.UUID, orderID string) (*DetailDTO, error)
	Summary(ctx context.Context, userID uuid.UUID) (*SummaryDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds an order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// List returns the user's orders, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return toOrderDTOs(rows), nil
}

// Detail loads one order by its public reference.
func (s *service) Detail(ctx context.Context, userID uuid.UUID, orderID string) (*DetailDTO, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	order, err := s.repo.FindByOrderID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}

	detail := &DetailDTO{OrderDTO: toOrderDTO(*order)}
	if order.Address != nil {
		dto := address.ToDTO(*order.Address)
		detail.Address = &dto
	}
	return detail, nil
}

// Summary assembles the account dashboard: aggregate figures plus the
// five most recent orders.
func (s *service) Summary(ctx context.Context, userID uuid.UUID) (*SummaryDTO, error) {
	totals, err := s.repo.Totals(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "computing order totals")
	}

	recent, err := s.repo.Recent(ctx, userID, recentOrdersLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading recent orders")
	}

	summary := &SummaryDTO{
		TotalOrders:    totals.TotalOrders,
		TotalSpent:     totals.TotalSpent,
		DeliveredCount: totals.DeliveredCount,
		PendingCount:   totals.PendingCount,
		RecentOrders:   toOrderDTOs(recent),
	}
	if len(recent) > 0 {
		at := recent[0].CreatedAt
		summary.LastOrderAt = &at
	}
	return summary, nil
}
