package controllers

import (
	"net/http"

	"github.com/neokart/neokart-backend/api/middleware"
	"github.com/neokart/neokart-backend/api/responses"
	"github.com/neokart/neokart-backend/api/validators"
	"github.com/neokart/neokart-backend/internal/address"
	"github.com/neokart/neokart-backend/internal/checkout"
	"github.com/neokart/neokart-backend/pkg/logger"
)

type checkoutPayload struct {
	FullName    string  `json:"full_name" validate:"required,min=2,max=120"`
	Phone       string  `json:"phone" validate:"required,min=7,max=20"`
	Email       string  `json:"email" validate:"required,email"`
	Pincode     string  `json:"pincode" validate:"required,min=4,max=10"`
	AddressLine string  `json:"address_line" validate:"required,min=4,max=250"`
	FlatHouseNo *string `json:"flat_house_no,omitempty" validate:"omitempty,max=100"`
	Landmark    *string `json:"landmark,omitempty" validate:"omitempty,max=150"`
}

// CheckoutShow returns the checkout page payload: the bill and the
// saved default address.
func CheckoutShow(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := middleware.UserIDFromContext(ctx)

		prefill, err := svc.Prefill(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, prefill)
	}
}

// CheckoutSubmit places the order.
func CheckoutSubmit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := middleware.UserIDFromContext(ctx)

		var payload checkoutPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		confirmation, err := svc.Execute(ctx, userID, address.Input{
			FullName:    payload.FullName,
			Phone:       payload.Phone,
			Email:       payload.Email,
			Pincode:     payload.Pincode,
			AddressLine: payload.AddressLine,
			FlatHouseNo: payload.FlatHouseNo,
			Landmark:    payload.Landmark,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
