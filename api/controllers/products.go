package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/neokart/neokart-backend/api/middleware"
	"github.com/neokart/neokart-backend/api/responses"
	"github.com/neokart/neokart-backend/api/validators"
	"github.com/neokart/neokart-backend/internal/catalog"
	"github.com/neokart/neokart-backend/internal/reviews"
	internalsession "github.com/neokart/neokart-backend/internal/session"
	"github.com/neokart/neokart-backend/pkg/logger"
	"github.com/neokart/neokart-backend/pkg/pagination"
)

// Home returns the landing page shelves.
func Home(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		home, err := svc.Home(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, home)
	}
}

// ProductList returns the paginated, searchable product grid.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 100000)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		perPage, err := validators.ParseQueryInt(r, "per_page", pagination.DefaultPerPage, 1, pagination.MaxPerPage)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filter := catalog.ListFilter{
			Query:        strings.TrimSpace(r.URL.Query().Get("q")),
			CategorySlug: strings.TrimSpace(r.URL.Query().Get("category")),
		}

		result, err := svc.List(ctx, filter, pagination.Params{Page: page, PerPage: perPage})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type productDetailResponse struct {
	catalog.ProductDetailDTO
	Reviews     []reviews.DTO    `json:"reviews"`
	RatingStats reviews.StatsDTO `json:"rating_stats"`
}

// ProductDetail returns one product page and records the visit on the
// browser session's recently-viewed trail.
func ProductDetail(svc catalog.Service, reviewSvc reviews.Service, sessionSvc internalsession.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		slug := chi.URLParam(r, "slug")
		detail, err := svc.Detail(ctx, slug)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp := productDetailResponse{ProductDetailDTO: detail}

		if reviewSvc != nil {
			if list, err := reviewSvc.ListForProduct(ctx, detail.ID); err == nil {
				resp.Reviews = list
			}
			if stats, err := reviewSvc.StatsForProduct(ctx, detail.ID); err == nil {
				resp.RatingStats = stats
			}
		}

		if sessionSvc != nil {
			if visitorID := middleware.VisitorIDFromContext(ctx); visitorID != "" {
				if err := sessionSvc.TouchRecentlyViewed(ctx, visitorID, detail.ID); err != nil && logg != nil {
					logg.Warn(ctx, "recording recently viewed failed")
				}
			}
		}

		responses.WriteSuccess(w, resp)
	}
}

// Categories returns the category list for navigation.
func Categories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := svc.Categories(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
