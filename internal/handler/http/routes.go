package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
	})

	// backup API, one namespace per token owner
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Put("/backups", h.uploadBackup)
		r.Get("/backups/latest", h.getLatestBackup)
		r.Get("/backups/list", h.listBackups)
		r.Get("/backups/{name}", h.getBackup)
		r.Delete("/backups/{name}", h.deleteBackup)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
