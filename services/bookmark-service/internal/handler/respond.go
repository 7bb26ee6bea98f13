package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/model"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/usecase"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Fields: fields})
}

// requestValidator decodes JSON request bodies and validates them with
// translated, per-field error messages.
type requestValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newRequestValidator() *requestValidator {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = entranslations.RegisterDefaultTranslations(validate, trans)

	return &requestValidator{
		validate: validate,
		trans:    trans,
	}
}

// decodeAndValidate parses the request body into dest. It returns per-field
// messages when validation fails and a plain error when the body is not
// valid JSON.
func (v *requestValidator) decodeAndValidate(r *http.Request, dest any) (map[string]string, error) {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return nil, err
	}

	if err := v.validate.Struct(dest); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make(map[string]string, len(validationErrors))
			for _, fieldErr := range validationErrors {
				fields[fieldErr.Field()] = fieldErr.Translate(v.trans)
			}
			return fields, nil
		}
		return nil, err
	}

	return nil, nil
}

// statusForError maps domain and application errors to HTTP status codes.
// Unknown errors map to 500 and should be logged by the caller.
func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrEmptyName),
		errors.Is(err, model.ErrEmptyURL),
		errors.Is(err, model.ErrEmptyEmail),
		errors.Is(err, model.ErrEmptyPasswordHash),
		errors.Is(err, usecase.ErrNilParams):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrFolderNotFound),
		errors.Is(err, usecase.ErrBookmarkNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUserIDMismatch):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrEmailAlreadyUsed):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrGoogleSignInOff):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
