package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bakery-kart/internal/middleware"
	"bakery-kart/internal/model"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a standardised error response.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("code", code).
		Int("status", status).
		Msg(message)

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: chimw.GetReqID(r.Context()),
	})
}

// statusFor maps a domain error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON,
		model.ErrCodeInvalidParameter,
		model.ErrCodeMissingField,
		model.ErrCodeInvalidQuantity,
		model.ErrCodeInvalidDistance,
		model.ErrCodeInvalidBirthday:
		return http.StatusBadRequest
	case model.ErrCodeProductNotFound,
		model.ErrCodeCartItemNotFound,
		model.ErrCodeCouponNotFound,
		model.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case model.ErrCodeBirthdayLocked:
		return http.StatusConflict
	case model.ErrCodeCouponRejected, model.ErrCodeCartEmpty:
		return http.StatusUnprocessableEntity
	case model.ErrCodeMissingIdentity, model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err as a domain error response, or as a generic
// 500 carrying fallback when err is not a *model.DomainError.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, r, statusFor(domainErr.Code), domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Str("request_id", chimw.GetReqID(r.Context())).Msg(fallback)
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:         model.ErrCodeInternalError,
		Message:       fallback,
		CorrelationID: chimw.GetReqID(r.Context()),
	})
}

// decodeJSON decodes the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// parsePage reads limit and offset query parameters.
func parsePage(r *http.Request) (limit, offset int, err error) {
	limit = 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			return 0, 0, errors.New("invalid limit parameter")
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			return 0, 0, errors.New("invalid offset parameter")
		}
	}
	return limit, offset, nil
}

// userID returns the caller identity placed in the context by
// middleware.UserIdentity.
func userID(r *http.Request) string {
	return middleware.UserID(r.Context())
}
