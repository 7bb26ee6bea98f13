package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/usecase"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth     *AuthHandler
	Folder   *FolderHandler
	Bookmark *BookmarkHandler
	User     *UserHandler
	AuthMW   *AuthMiddleware
}

// NewHandlers wires all handlers with a shared request validator.
func NewHandlers(
	authUC usecase.AuthUsecase,
	folderUC usecase.FolderUsecase,
	bookmarkUC usecase.BookmarkUsecase,
	userUC usecase.UserUsecase,
	authMW *AuthMiddleware,
	logger *zerolog.Logger,
) Handlers {
	v := newRequestValidator()

	return Handlers{
		Auth:     NewAuthHandler(authUC, v, logger),
		Folder:   NewFolderHandler(folderUC, v, logger),
		Bookmark: NewBookmarkHandler(bookmarkUC, v, logger),
		User:     NewUserHandler(userUC, v, logger),
		AuthMW:   authMW,
	}
}

// NewRouter builds the chi router with the full route tree and the standard
// middleware stack.
func NewRouter(h Handlers, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/google", h.Auth.GoogleLogin)
			r.Post("/refresh", h.Auth.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.AuthMW.Authenticate)

			r.Route("/folders", func(r chi.Router) {
				r.Get("/", h.Folder.List)
				r.Post("/", h.Folder.Create)
				r.Get("/count", h.Folder.Count)

				r.Route("/{folderID}", func(r chi.Router) {
					r.Get("/", h.Folder.Get)
					r.Patch("/", h.Folder.Update)
					r.Delete("/", h.Folder.Delete)
					r.Post("/visit", h.Folder.Visit)

					r.Route("/bookmarks", func(r chi.Router) {
						r.Get("/", h.Bookmark.List)
						r.Post("/", h.Bookmark.Create)
						r.Get("/count", h.Bookmark.Count)

						r.Route("/{bookmarkID}", func(r chi.Router) {
							r.Get("/", h.Bookmark.Get)
							r.Patch("/", h.Bookmark.Update)
							r.Delete("/", h.Bookmark.Delete)
							r.Post("/visit", h.Bookmark.Visit)
						})
					})
				})
			})

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.User.Profile)
				r.Patch("/", h.User.Update)
				r.Delete("/", h.User.Delete)
			})
		})
	})

	return r
}

// requestLogger emits one structured access log line per request.
func requestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
