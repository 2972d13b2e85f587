package handler

import (
	"net/http"

	"bakery-kart/internal/model"
	"bakery-kart/internal/service"

	"github.com/rs/zerolog"
)

// profileResponse tells the client whether the birthday field is still editable.
type profileResponse struct {
	*model.Profile
	BirthdayLocked bool `json:"birthdayLocked"`
}

func newProfileResponse(p *model.Profile) profileResponse {
	return profileResponse{Profile: p, BirthdayLocked: p.BirthdayLocked()}
}

// ProfileHandler handles profile HTTP requests.
type ProfileHandler struct {
	service service.ProfileService
	logger  zerolog.Logger
}

func NewProfileHandler(service service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("handler", "profile").Logger(),
	}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Get(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve profile", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newProfileResponse(profile))
}

// SetBirthday handles PUT /api/profile/birthday.
func (h *ProfileHandler) SetBirthday(w http.ResponseWriter, r *http.Request) {
	var req model.SetBirthdayRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	profile, err := h.service.SetBirthday(r.Context(), userID(r), &req)
	if err != nil {
		writeServiceError(w, r, err, "failed to set birthday", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newProfileResponse(profile))
}
