package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neokart/neokart-backend/api/middleware"
	"github.com/neokart/neokart-backend/api/responses"
	"github.com/neokart/neokart-backend/api/validators"
	"github.com/neokart/neokart-backend/internal/catalog"
	internalsession "github.com/neokart/neokart-backend/internal/session"
	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
	"github.com/neokart/neokart-backend/pkg/logger"
)

type themePayload struct {
	Theme string `json:"theme" validate:"required"`
}

type couponPayload struct {
	Code string `json:"code"`
}

func visitorIDOrError(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	visitorID := middleware.VisitorIDFromContext(r.Context())
	if visitorID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "browser session missing"))
		return "", false
	}
	return visitorID, true
}

// ThemeGet returns the visitor's selected theme.
func ThemeGet(svc internalsession.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		visitorID, ok := visitorIDOrError(w, r, logg)
		if !ok {
			return
		}

		theme, err := svc.Theme(ctx, visitorID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"theme": string(theme)})
	}
}

// ThemeSet stores the visitor's theme choice.
func ThemeSet(svc internalsession.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		visitorID, ok := visitorIDOrError(w, r, logg)
		if !ok {
			return
		}

		var payload themePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		theme, err := svc.SetTheme(ctx, visitorID, payload.Theme)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"theme": string(theme)})
	}
}

// CouponApply validates and stores the coupon on the browser session;
// an empty code clears it.
func CouponApply(svc internalsession.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		visitorID, ok := visitorIDOrError(w, r, logg)
		if !ok {
			return
		}

		var payload couponPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.ApplyCoupon(ctx, visitorID, payload.Code); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "applied"})
	}
}

// RecentlyViewed resolves the browsing trail into product cards,
// preserving most-recent-first order.
func RecentlyViewed(svc internalsession.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		visitorID, ok := visitorIDOrError(w, r, logg)
		if !ok {
			return
		}

		ids, err := svc.RecentlyViewed(ctx, visitorID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cards, err := catalogSvc.ResolveCards(ctx, ids)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, cards)
	}
}

// RecentlyViewedTouch records a product on the browsing trail,
// moving it to the front when already present.
func RecentlyViewedTouch(svc internalsession.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		visitorID, ok := visitorIDOrError(w, r, logg)
		if !ok {
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.TouchRecentlyViewed(ctx, visitorID, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "recorded"})
	}
}

// CompareList resolves the compare tray into product cards.
func CompareList(svc internalsession.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		visitorID, ok := visitorIDOrError(w, r, logg)
		if !ok {
			return
		}

		ids, err := svc.CompareIDs(ctx, visitorID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cards, err := catalogSvc.ResolveCards(ctx, ids)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, cards)
	}
}

// CompareAdd puts a product on the compare tray, evicting the oldest
// entry when the tray is full.
func CompareAdd(svc internalsession.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		visitorID, ok := visitorIDOrError(w, r, logg)
		if !ok {
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		added, err := svc.AddCompare(ctx, visitorID, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"added": added})
	}
}

// CompareRemove drops a product from the compare tray.
func CompareRemove(svc internalsession.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		visitorID, ok := visitorIDOrError(w, r, logg)
		if !ok {
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		removed, err := svc.RemoveCompare(ctx, visitorID, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"removed": removed})
	}
}
