package reviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neokart/neokart-backend/internal/catalog"
	"github.com/neokart/neokart-backend/pkg/db/models"
	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
)

// DTO is the public view of a review.
type DTO struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// StatsDTO is the aggregate rating attached to a product detail.
type StatsDTO struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ServiceParams groups dependencies for the review service.
type ServiceParams struct {
	Repo        *Repository
	CatalogRepo *catalog.Repository
}

// Service exposes product review writes and reads.
type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID, rating int, comment *string) (*DTO, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]DTO, error)
	StatsForProduct(ctx context.Context, productID uuid.UUID) (StatsDTO, error)
}

type service struct {
	repo        *Repository
	catalogRepo *catalog.Repository
}

// NewService builds a review service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review repo is required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: params.Repo, catalogRepo: params.CatalogRepo}, nil
}

// Add records one review per user per product.
func (s *service) Add(ctx context.Context, userID, productID uuid.UUID, rating int, comment *string) (*DTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if rating < 1 || rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if comment != nil {
		trimmed := strings.TrimSpace(*comment)
		if trimmed == "" {
			comment = nil
		} else {
			comment = &trimmed
		}
	}

	if _, err := s.catalogRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	review := &models.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already reviewed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving review")
	}

	dto := toDTO(*review)
	return &dto, nil
}

// ListForProduct returns a product's reviews, newest first.
func (s *service) ListForProduct(ctx context.Context, productID uuid.UUID) ([]DTO, error) {
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing reviews")
	}

	out := make([]DTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

// StatsForProduct returns the average rating and review count.
func (s *service) StatsForProduct(ctx context.Context, productID uuid.UUID) (StatsDTO, error) {
	stats, err := s.repo.StatsForProduct(ctx, productID)
	if err != nil {
		return StatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "computing rating stats")
	}
	return StatsDTO{Average: stats.Average, Count: stats.Count}, nil
}

func toDTO(review models.Review) DTO {
	dto := DTO{
		ID:        review.ID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.User != nil {
		dto.AuthorName = review.User.FullName
	}
	return dto
}
