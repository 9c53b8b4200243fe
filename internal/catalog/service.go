package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
	"github.com/neokart/neokart-backend/pkg/pagination"
)

const (
	dealShelfSize       = 8
	latestShelfSize     = 12
	recommendedShelfSize = 4
)

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes the read-side catalog surface.
type Service interface {
	Home(ctx context.Context) (HomeDTO, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) (ProductPageDTO, error)
	Detail(ctx context.Context, slug string) (ProductDetailDTO, error)
	Categories(ctx context.Context) ([]CategoryDTO, error)
	ResolveCards(ctx context.Context, ids []uuid.UUID) ([]ProductCard, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// Home assembles the landing payload: categories plus three shelves.
func (s *service) Home(ctx context.Context) (HomeDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return HomeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load categories")
	}

	hot, err := s.repo.HotDeals(ctx, dealShelfSize)
	if err != nil {
		return HomeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load hot deals")
	}
	top, err := s.repo.TopDeals(ctx, dealShelfSize)
	if err != nil {
		return HomeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load top deals")
	}
	latest, err := s.repo.Latest(ctx, latestShelfSize)
	if err != nil {
		return HomeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load latest products")
	}

	dto := HomeDTO{
		Categories: make([]CategoryDTO, 0, len(categories)),
		HotDeals:   toCards(hot),
		TopDeals:   toCards(top),
		Latest:     toCards(latest),
	}
	for _, c := range categories {
		dto.Categories = append(dto.Categories, toCategoryDTO(c))
	}
	return dto, nil
}

// List returns a page of products matching the search/category filter.
func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) (ProductPageDTO, error) {
	products, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return ProductPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return ProductPageDTO{
		Items:      toCards(products),
		Pagination: pagination.Info(page, total),
	}, nil
}

// Detail loads the full product page payload by slug.
func (s *service) Detail(ctx context.Context, slug string) (ProductDetailDTO, error) {
	if slug == "" {
		return ProductDetailDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}

	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	recommended, err := s.repo.Recommended(ctx, product.CategoryID, product.ID, recommendedShelfSize)
	if err != nil {
		return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recommended products")
	}

	detail := ProductDetailDTO{
		ProductCard: CardFromProduct(*product),
		Description: product.Description,
		Images:      make([]string, 0, len(product.Images)),
		Variants:    make([]VariantDTO, 0, len(product.Variants)),
		Recommended: toCards(recommended),
	}
	if product.Category != nil {
		detail.Category = toCategoryDTO(*product.Category)
	}
	for _, img := range product.Images {
		detail.Images = append(detail.Images, img.URL)
	}
	for _, v := range product.Variants {
		detail.Variants = append(detail.Variants, VariantDTO{
			ID:          v.ID,
			VariantType: v.VariantType,
			Value:       v.Value,
			Price:       v.Price,
			Stock:       v.Stock,
		})
	}
	return detail, nil
}

// Categories returns the browse menu.
func (s *service) Categories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load categories")
	}
	out := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryDTO(c))
	}
	return out, nil
}

// ResolveCards rebuilds product cards in the order of the stored id
// list; ids without a live product simply drop out.
func (s *service) ResolveCards(ctx context.Context, ids []uuid.UUID) ([]ProductCard, error) {
	products, err := s.repo.ResolveInOrder(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve products")
	}
	return toCards(products), nil
}
