package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/payload"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/usecase"
)

// BookmarkHandler exposes folder-scoped bookmark operations over HTTP.
type BookmarkHandler struct {
	bookmarks usecase.BookmarkUsecase
	validator *requestValidator
	logger    *zerolog.Logger
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(bookmarks usecase.BookmarkUsecase, v *requestValidator, logger *zerolog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarks: bookmarks,
		validator: v,
		logger:    logger,
	}
}

func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	bookmarks, err := h.bookmarks.GetAll(r.Context(), userID, chi.URLParam(r, "folderID"), parsePagination(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list bookmarks")
		writeError(w, statusForError(err), "failed to list bookmarks")
		return
	}

	writeJSON(w, http.StatusOK, payload.NewBookmarkListResponse(bookmarks))
}

func (h *BookmarkHandler) Count(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	count, err := h.bookmarks.Count(r.Context(), userID, chi.URLParam(r, "folderID"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to count bookmarks")
		writeError(w, statusForError(err), "failed to count bookmarks")
		return
	}

	writeJSON(w, http.StatusOK, payload.CountResponse{Count: count})
}

func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	bookmark, err := h.bookmarks.GetByID(
		r.Context(),
		userID,
		chi.URLParam(r, "folderID"),
		chi.URLParam(r, "bookmarkID"),
	)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to get bookmark")
		writeError(w, statusForError(err), "failed to get bookmark")
		return
	}
	if bookmark == nil {
		writeError(w, http.StatusNotFound, "bookmark not found")
		return
	}

	writeJSON(w, http.StatusOK, payload.NewBookmarkResponse(bookmark))
}

func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req payload.CreateBookmarkRequest
	fields, err := h.validator.decodeAndValidate(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	bookmark, err := h.bookmarks.Create(r.Context(), userID, chi.URLParam(r, "folderID"), &usecase.CreateBookmarkParams{
		Name: req.Name,
		URL:  req.URL,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to create bookmark")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, payload.NewBookmarkResponse(bookmark))
}

func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req payload.UpdateBookmarkRequest
	fields, err := h.validator.decodeAndValidate(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	bookmark, err := h.bookmarks.Update(r.Context(), userID, chi.URLParam(r, "folderID"), &usecase.UpdateBookmarkParams{
		ID:         chi.URLParam(r, "bookmarkID"),
		Name:       req.Name,
		URL:        req.URL,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to update bookmark")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, payload.NewBookmarkResponse(bookmark))
}

func (h *BookmarkHandler) Visit(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	err := h.bookmarks.MarkVisited(
		r.Context(),
		userID,
		chi.URLParam(r, "folderID"),
		chi.URLParam(r, "bookmarkID"),
	)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to mark bookmark visited")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	deleted, err := h.bookmarks.Delete(
		r.Context(),
		userID,
		chi.URLParam(r, "folderID"),
		chi.URLParam(r, "bookmarkID"),
	)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to delete bookmark")
		writeError(w, statusForError(err), "failed to delete bookmark")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "bookmark not found")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
