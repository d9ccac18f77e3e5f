package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/version/", h.getServerVersion)
	router.Get("/metrics", h.metrics.ServeHTTP)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/session", h.checkSession)
		r.Delete("/api/session", h.signOut)

		r.Post("/api/records/", h.createRecord)
		r.Get("/api/records/", h.listRecords)
		r.Get("/api/records/{id}", h.getRecord)
		r.Put("/api/records/{id}", h.updateRecord)
		r.Delete("/api/records/{id}", h.deleteRecord)

		r.Post("/api/audit/", h.appendAudit)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
