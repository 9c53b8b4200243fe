package controllers

import (
	"net/http"

	"github.com/neokart/neokart-backend/api/middleware"
	"github.com/neokart/neokart-backend/api/responses"
	"github.com/neokart/neokart-backend/internal/address"
	"github.com/neokart/neokart-backend/pkg/logger"
)

// AddressList returns the user's saved addresses, default first.
func AddressList(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := middleware.UserIDFromContext(ctx)

		list, err := svc.List(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
