package order

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/order/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/session"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/validation"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// Handler exposes the checkout endpoint.
type Handler struct {
	svc    *CheckoutService
	logger *zap.SugaredLogger
}

func NewHandler(svc *CheckoutService, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type checkoutResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   *entity.Order `json:"order"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	caller, ok := session.FromContext(r.Context())
	if !ok {
		utilities.Fail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	raw, err := utilities.DecodeJSON(r)
	if err != nil {
		h.logger.Debugw("invalid checkout payload", "err", err)
		utilities.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	o, err := h.svc.Checkout(r.Context(), &caller, raw)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			msg := verr.Issues.Join(", ")
			h.logger.Infow("checkout validation error", "message", msg)
			utilities.FailFields(w, msg, validation.Project(verr.Issues, validation.FullPath))
		case errors.Is(err, ErrNotAuthenticated):
			utilities.Fail(w, http.StatusUnauthorized, "Not authenticated")
		case errors.Is(err, ErrNoValidProducts):
			utilities.Fail(w, http.StatusBadRequest, "No valid products found for this order")
		default:
			h.logger.Errorw("checkout error", "user_id", caller.UserID, "err", err)
			utilities.Fail(w, http.StatusInternalServerError, "Server error while placing order")
		}
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, checkoutResponse{
		Success: true, Message: "Order placed successfully", Order: o,
	})
}
