package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/payload"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/usecase"
)

// AuthHandler exposes registration and login over HTTP.
type AuthHandler struct {
	auth      usecase.AuthUsecase
	validator *requestValidator
	logger    *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth usecase.AuthUsecase, v *requestValidator, logger *zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		validator: v,
		logger:    logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	fields, err := h.validator.decodeAndValidate(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	tokens, err := h.auth.Register(r.Context(), usecase.RegisterParams{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to register user")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, payload.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	fields, err := h.validator.decodeAndValidate(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	tokens, err := h.auth.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to log in user")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, payload.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req payload.GoogleLoginRequest
	fields, err := h.validator.decodeAndValidate(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	tokens, err := h.auth.LoginWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to log in with google")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, payload.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req payload.RefreshRequest
	fields, err := h.validator.decodeAndValidate(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	tokens, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to refresh tokens")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, payload.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}
