package handler

import (
	"net/http"

	"bakery-kart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SaveCouponRequest represents the request payload for collecting a coupon.
type SaveCouponRequest struct {
	Code string `json:"code"`
}

// CouponHandler handles promotion and saved-coupon HTTP requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// ListPromotions handles GET /api/promotions.
func (h *CouponHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListPromotions(r.Context()))
}

// ListSaved handles GET /api/coupons/saved.
func (h *CouponHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	saved, err := h.service.ListSaved(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err, "failed to list saved coupons", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// Save handles POST /api/coupons/saved. It answers 201 for a newly saved
// coupon and 200 when the user already had it.
func (h *CouponHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveCouponRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	saved, added, err := h.service.Save(r.Context(), userID(r), req.Code)
	if err != nil {
		writeServiceError(w, r, err, "failed to save coupon", h.logger)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved)
}

// Remove handles DELETE /api/coupons/saved/{code}.
func (h *CouponHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), userID(r), chi.URLParam(r, "code")); err != nil {
		writeServiceError(w, r, err, "failed to remove saved coupon", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
