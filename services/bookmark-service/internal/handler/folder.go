package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/payload"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/repository"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/usecase"
)

// FolderHandler exposes folder operations over HTTP.
type FolderHandler struct {
	folders   usecase.FolderUsecase
	validator *requestValidator
	logger    *zerolog.Logger
}

// NewFolderHandler creates a new FolderHandler.
func NewFolderHandler(folders usecase.FolderUsecase, v *requestValidator, logger *zerolog.Logger) *FolderHandler {
	return &FolderHandler{
		folders:   folders,
		validator: v,
		logger:    logger,
	}
}

func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	folders, err := h.folders.GetAll(r.Context(), userID, parsePagination(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list folders")
		writeError(w, statusForError(err), "failed to list folders")
		return
	}

	writeJSON(w, http.StatusOK, payload.NewFolderListResponse(folders))
}

func (h *FolderHandler) Count(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	count, err := h.folders.Count(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to count folders")
		writeError(w, statusForError(err), "failed to count folders")
		return
	}

	writeJSON(w, http.StatusOK, payload.CountResponse{Count: count})
}

func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	folder, err := h.folders.GetByID(r.Context(), userID, chi.URLParam(r, "folderID"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to get folder")
		writeError(w, statusForError(err), "failed to get folder")
		return
	}
	if folder == nil {
		writeError(w, http.StatusNotFound, "folder not found")
		return
	}

	writeJSON(w, http.StatusOK, payload.NewFolderResponse(folder))
}

func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req payload.CreateFolderRequest
	fields, err := h.validator.decodeAndValidate(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	folder, err := h.folders.Create(r.Context(), userID, &usecase.CreateFolderParams{Name: req.Name})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to create folder")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, payload.NewFolderResponse(folder))
}

func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req payload.UpdateFolderRequest
	fields, err := h.validator.decodeAndValidate(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	folder, err := h.folders.Update(r.Context(), userID, chi.URLParam(r, "folderID"), &usecase.UpdateFolderParams{
		Name:       req.Name,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to update folder")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, payload.NewFolderResponse(folder))
}

func (h *FolderHandler) Visit(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if err := h.folders.MarkVisited(r.Context(), userID, chi.URLParam(r, "folderID")); err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to mark folder visited")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	deleted, err := h.folders.Delete(r.Context(), userID, chi.URLParam(r, "folderID"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to delete folder")
		writeError(w, statusForError(err), "failed to delete folder")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "folder not found")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func parsePagination(r *http.Request) repository.Pagination {
	var page repository.Pagination

	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 {
		page.Limit = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64); err == nil && v > 0 {
		page.Offset = v
	}

	return page
}
