package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/rolodex-api/internal/api"
	apiMiddleware "github.com/phrazzld/rolodex-api/internal/api/middleware"
	"github.com/phrazzld/rolodex-api/internal/platform/metrics"
)

// setupRouter configures the application router with all routes and
// middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.MetricsMiddleware(app.metrics))

	userHandler := api.NewUserHandler(app.userService)
	contactHandler := api.NewContactHandler(app.contactService)
	addressHandler := api.NewAddressHandler(app.addressService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.userStore)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", userHandler.Register)
		r.Post("/users/login", userHandler.Login)

		// Everything else requires a valid token
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/current", userHandler.GetCurrent)
			r.Patch("/users/current", userHandler.UpdateCurrent)
			r.Delete("/users/logout", userHandler.Logout)

			r.Post("/contacts", contactHandler.Create)
			r.Get("/contacts", contactHandler.Search)
			r.Get("/contacts/{contactId}", contactHandler.Get)
			r.Put("/contacts/{contactId}", contactHandler.Update)
			r.Delete("/contacts/{contactId}", contactHandler.Delete)

			r.Post("/contacts/{contactId}/addresses", addressHandler.Create)
			r.Put("/contacts/{contactId}/addresses", addressHandler.Update)
			r.Get("/contacts/{contactId}/addresses/{addressId}", addressHandler.Get)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	return r
}
