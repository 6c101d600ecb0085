package handler

import (
	"log/slog"
	"net/http"

	"github.com/veldt-labs/quartermaster/internal/api/apierr"
	"github.com/veldt-labs/quartermaster/internal/api/request"
	"github.com/veldt-labs/quartermaster/internal/api/response"
	"github.com/veldt-labs/quartermaster/internal/services/profile"
)

// ProfileHandler serves the two legacy profile endpoints.
type ProfileHandler struct {
	profileService *profile.Service
	logger         *slog.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService *profile.Service, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile handles GET /get_profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	params, err := request.ParseGetProfile(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := h.profileService.GetProfile(r.Context(), params)
	if err != nil {
		h.logger.Error("get_profile failed",
			slog.Int64("hash", params.Hash),
			slog.String("realm", params.Realm),
			slog.Any("error", err))
		apierr.WriteError(w, err)
		return
	}

	response.GetProfile(w, result)
}

// SetProfile handles POST /set_profile
func (h *ProfileHandler) SetProfile(w http.ResponseWriter, r *http.Request) {
	params, err := request.ParseSetProfile(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.profileService.SetProfile(r.Context(), params); err != nil {
		h.logger.Error("set_profile failed",
			slog.String("realm", params.Realm),
			slog.Int("entries", len(params.Entries)),
			slog.Any("error", err))
		apierr.WriteError(w, err)
		return
	}

	response.Ok(w)
}
