package address

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neokart/neokart-backend/pkg/db/models"
	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
)

// DTO is the address book projection.
type DTO struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Pincode     string    `json:"pincode"`
	AddressLine string    `json:"address_line"`
	FlatHouseNo *string   `json:"flat_house_no,omitempty"`
	Landmark    *string   `json:"landmark,omitempty"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDTO converts a persisted address row.
func ToDTO(a models.Address) DTO {
	return DTO{
		ID:          a.ID,
		FullName:    a.FullName,
		Phone:       a.Phone,
		Email:       a.Email,
		Pincode:     a.Pincode,
		AddressLine: a.AddressLine,
		FlatHouseNo: a.FlatHouseNo,
		Landmark:    a.Landmark,
		IsDefault:   a.IsDefault,
		CreatedAt:   a.CreatedAt,
	}
}

// ServiceParams groups dependencies for the address service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes the read side of the address book. Writes happen
// through the checkout transaction, not here.
type Service interface {
	Default(ctx context.Context, userID uuid.UUID) (*DTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]DTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds an address service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// Default returns the user's default address, or nil when none is
// saved yet: a fresh account pre-fills an empty checkout form.
func (s *service) Default(ctx context.Context, userID uuid.UUID) (*DTO, error) {
	addr, err := s.repo.FindDefault(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default address")
	}
	dto := ToDTO(*addr)
	return &dto, nil
}

// List returns the full address book, default first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]DTO, error) {
	addrs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	out := make([]DTO, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, ToDTO(a))
	}
	return out, nil
}
