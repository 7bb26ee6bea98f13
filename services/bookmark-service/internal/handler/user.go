package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/payload"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/usecase"
)

// UserHandler exposes profile operations for the authenticated user.
type UserHandler struct {
	users     usecase.UserUsecase
	validator *requestValidator
	logger    *zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users usecase.UserUsecase, v *requestValidator, logger *zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: v,
		logger:    logger,
	}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to get profile")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, payload.NewProfileResponse(profile))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req payload.UpdateUserRequest
	fields, err := h.validator.decodeAndValidate(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	profile, err := h.users.Update(r.Context(), userID, &usecase.UpdateUserParams{
		UserID:      req.UserID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to update profile")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, payload.NewProfileResponse(profile))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if err := h.users.Delete(r.Context(), userID); err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to delete account")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
