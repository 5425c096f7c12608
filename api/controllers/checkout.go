package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/devmarket-mx/tienda-backend/api/responses"
	"github.com/devmarket-mx/tienda-backend/api/validators"
	checkoutsvc "github.com/devmarket-mx/tienda-backend/internal/checkout"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/devmarket-mx/tienda-backend/pkg/logger"
)

type quoteShippingRequest struct {
	AddressID uuid.UUID `json:"direccion_id" validate:"required"`
}

// ShippingQuote prices delivery of the current cart to one of the buyer's
// saved addresses.
func ShippingQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quoteShippingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.QuoteShipping(r.Context(), userID, payload.AddressID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CheckoutSubmit runs the full submission: quote, totals, order creation and
// the payment preference handoff. The response carries the redirect URL.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutsvc.SubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Submit(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}
