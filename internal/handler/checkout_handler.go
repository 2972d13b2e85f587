package handler

import (
	"net/http"

	"bakery-kart/internal/model"
	"bakery-kart/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles quote and order submission requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Quote handles POST /api/checkout/quote. Coupon rejections are part of a
// successful quote and come back in the body with status 200.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req model.QuoteRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	quote, err := h.service.Quote(r.Context(), userID(r), &req)
	if err != nil {
		writeServiceError(w, r, err, "failed to price cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// PlaceOrder handles POST /api/orders.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req model.PlaceOrderRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), userID(r), &req)
	if err != nil {
		writeServiceError(w, r, err, "failed to create order", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}
