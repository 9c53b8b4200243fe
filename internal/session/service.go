package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/neokart/neokart-backend/internal/pricing"
	"github.com/neokart/neokart-backend/pkg/enums"
	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
)

// ServiceParams groups dependencies for the session service.
type ServiceParams struct {
	Manager *Manager
}

// Service exposes the visitor-scoped operations: browsing trail,
// compare tray, theme, and the pending coupon.
type Service interface {
	TouchRecentlyViewed(ctx context.Context, visitorID string, productID uuid.UUID) error
	RecentlyViewed(ctx context.Context, visitorID string) ([]uuid.UUID, error)
	AddCompare(ctx context.Context, visitorID string, productID uuid.UUID) (added bool, err error)
	RemoveCompare(ctx context.Context, visitorID string, productID uuid.UUID) (removed bool, err error)
	CompareIDs(ctx context.Context, visitorID string) ([]uuid.UUID, error)
	SetTheme(ctx context.Context, visitorID string, theme string) (enums.Theme, error)
	ApplyCoupon(ctx context.Context, visitorID string, code string) error
	CouponCode(ctx context.Context, visitorID string) (string, error)
	Theme(ctx context.Context, visitorID string) (enums.Theme, error)
}

type service struct {
	manager *Manager
}

// NewService builds a session service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Manager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	return &service{manager: params.Manager}, nil
}

func (s *service) TouchRecentlyViewed(ctx context.Context, visitorID string, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	_, err := s.manager.Update(ctx, visitorID, func(state *State) error {
		state.RecentlyViewed = PushRecent(state.RecentlyViewed, productID)
		return nil
	})
	return err
}

func (s *service) RecentlyViewed(ctx context.Context, visitorID string) ([]uuid.UUID, error) {
	state, err := s.manager.Load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	return state.RecentlyViewed, nil
}

func (s *service) AddCompare(ctx context.Context, visitorID string, productID uuid.UUID) (bool, error) {
	if productID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	added := false
	_, err := s.manager.Update(ctx, visitorID, func(state *State) error {
		state.Compare, added = AddCompare(state.Compare, productID)
		return nil
	})
	return added, err
}

func (s *service) RemoveCompare(ctx context.Context, visitorID string, productID uuid.UUID) (bool, error) {
	removed := false
	_, err := s.manager.Update(ctx, visitorID, func(state *State) error {
		state.Compare, removed = RemoveCompare(state.Compare, productID)
		return nil
	})
	return removed, err
}

func (s *service) CompareIDs(ctx context.Context, visitorID string) ([]uuid.UUID, error) {
	state, err := s.manager.Load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	return state.Compare, nil
}

func (s *service) SetTheme(ctx context.Context, visitorID string, theme string) (enums.Theme, error) {
	parsed, parseErr := enums.ParseTheme(theme)
	if parseErr != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "theme must be one of light, dark, gradient").
			WithDetails(map[string]any{"theme": theme})
	}
	_, err := s.manager.Update(ctx, visitorID, func(state *State) error {
		state.Theme = parsed
		return nil
	})
	return parsed, err
}

func (s *service) Theme(ctx context.Context, visitorID string) (enums.Theme, error) {
	state, err := s.manager.Load(ctx, visitorID)
	if err != nil {
		return "", err
	}
	if state.Theme == "" {
		return enums.ThemeLight, nil
	}
	return state.Theme, nil
}

// ApplyCoupon validates and stores the coupon for the next cart view.
// An empty code clears any stored coupon. An unrecognized code also
// clears whatever was stored before the error is reported, so a failed
// attempt never leaves a stale discount behind.
func (s *service) ApplyCoupon(ctx context.Context, visitorID string, code string) error {
	normalized := pricing.NormalizeCoupon(code)
	if err := pricing.ValidateCoupon(normalized); err != nil {
		if _, clearErr := s.manager.Update(ctx, visitorID, func(state *State) error {
			state.CouponCode = ""
			return nil
		}); clearErr != nil {
			return clearErr
		}
		return err
	}
	_, err := s.manager.Update(ctx, visitorID, func(state *State) error {
		state.CouponCode = normalized
		return nil
	})
	return err
}

func (s *service) CouponCode(ctx context.Context, visitorID string) (string, error) {
	state, err := s.manager.Load(ctx, visitorID)
	if err != nil {
		return "", err
	}
	return state.CouponCode, nil
}
