package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mannyandcelesti/rsvp-api/internal/config"
)

func RegisterRoutes(r *chi.Mux, cfg *config.Config, login *LoginHandler, wedding, babyShower *RSVPHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(ClientIPMiddleware)

	// Initialize Huma API
	humaConfig := huma.DefaultConfig("Wedding RSVP API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:   "http",
			Scheme: "bearer",
		},
	}
	api := humachi.New(r, humaConfig)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	huma.Post(api, "/api/admin/login", login.HandleLogin)

	registerEvent(api, "/api", wedding)
	registerEvent(api, "/api/baby-shower", babyShower)
}

// registerEvent wires one event's endpoints under a path prefix; the wedding
// and baby-shower surfaces are identical apart from table and deadline.
func registerEvent(api huma.API, prefix string, h *RSVPHandler) {
	adminOp := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"bearerAuth": {}}}
	}

	// Public, rate-limited
	huma.Post(api, prefix+"/rsvp", h.HandleCreate)
	huma.Post(api, prefix+"/lookup-rsvp", h.HandleLookup)
	huma.Post(api, prefix+"/update-rsvp-public", h.HandlePublicUpdate)

	// Admin, bearer token
	huma.Get(api, prefix+"/rsvps", h.HandleList, adminOp)
	huma.Post(api, prefix+"/add-rsvp", h.HandleAdminCreate, adminOp)
	huma.Post(api, prefix+"/update-rsvp", h.HandleAdminUpdate, adminOp)
	huma.Post(api, prefix+"/delete-rsvp", h.HandleAdminDelete, adminOp)
}
