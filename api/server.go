/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chosen for the same reasons the teacher chose it: lightweight, context
  based, RESTful route patterns, wide middleware ecosystem.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. httplog:    Structured request logging over slog
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for local frontends/tools

ROUTE GROUPS:
  /api/plans/*             Optimizer runs and their persisted results
  /api/holidays/*          Public holiday CRUD
  /api/company-days-off/*  Company off-day rule CRUD
  /api/scenarios/*         Demo scenarios

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "cto-planner"),
	)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/plans", func(r chi.Router) {
			r.Get("/", h.ListPlans)
			r.Post("/", h.CreatePlan)
			r.Get("/{id}", h.GetPlan)
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Post("/defaults", h.AddDefaultHolidays)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		r.Route("/company-days-off", func(r chi.Router) {
			r.Get("/", h.ListCompanyDaysOff)
			r.Post("/", h.CreateCompanyDayOff)
			r.Delete("/{id}", h.DeleteCompanyDayOff)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/{id}", h.GetScenario)
			r.Post("/{id}/run", h.RunScenario)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>CTO Planner</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>CTO Planner API</h1>
<h2>Endpoints</h2>
<ul>
<li><a href="/api/plans">/api/plans</a> - Run and fetch plans</li>
<li><a href="/api/holidays">/api/holidays</a> - Manage holidays</li>
<li><a href="/api/company-days-off">/api/company-days-off</a> - Manage company days off</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
