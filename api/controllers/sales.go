package controllers

import (
	"net/http"

	"github.com/angelmondragon/gestion-backend/api/middleware"
	"github.com/angelmondragon/gestion-backend/api/responses"
	"github.com/angelmondragon/gestion-backend/api/validators"
	"github.com/angelmondragon/gestion-backend/internal/sales"
	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	"github.com/angelmondragon/gestion-backend/pkg/types"
)

type checkoutRequest struct {
	ClientID *int64             `json:"client_id,omitempty" validate:"omitempty,gte=0"`
	Cart     []checkoutLineItem `json:"cart" validate:"dive"`
}

type checkoutLineItem struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

type checkoutResponse struct {
	types.Envelope
	Message string `json:"message"`
	SaleID  int64  `json:"sale_id"`
	Total   string `json:"total"`
}

func (r checkoutRequest) toInput(userID int64) sales.CheckoutInput {
	input := sales.CheckoutInput{
		UserID:   userID,
		ClientID: r.ClientID,
		Cart:     make([]sales.CartLine, 0, len(r.Cart)),
	}
	for _, line := range r.Cart {
		input.Cart = append(input.Cart, sales.CartLine{ProductID: line.ID, Quantity: line.Quantity})
	}
	return input
}

// Checkout records a point-of-sale sale for the authenticated user.
func Checkout(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		actor, ok := middleware.ActorFromContext(r.Context())
		if !ok || actor.UserID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), payload.toInput(actor.UserID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutResponse{
			Envelope: types.Success(),
			Message:  result.Message,
			SaleID:   result.SaleID,
			Total:    result.Total.StringFixed(2),
		})
	}
}
