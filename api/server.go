/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/companies/*      Company and driver management
  /api/rates/*          Pay rate management
  /api/holidays/*       Bank holiday management
  /api/shifts/*         Shift ingestion
  /api/payroll/*        Preview, exports, run history
  /api/scenarios/*      Demo scenarios
  /api/reset            Database reset (dev only)

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Company routes
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", h.ListCompanies)
			r.Post("/", h.CreateCompany)
			r.Get("/{id}/drivers", h.ListDrivers)
			r.Post("/{id}/drivers", h.CreateDriver)
		})

		// Pay rate routes
		r.Route("/rates", func(r chi.Router) {
			r.Get("/", h.ListPayRates)
			r.Post("/", h.SavePayRate)
			r.Get("/resolve", h.ResolvePayRate)
			r.Get("/{id}", h.GetPayRate)
			r.Delete("/{id}", h.DeletePayRate)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Post("/defaults", h.AddDefaultHolidays)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Shift routes
		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.SaveShift)
			r.Get("/{id}", h.GetShift)
		})

		// Payroll routes
		r.Route("/payroll", func(r chi.Router) {
			r.Get("/preview", h.PreviewPayroll)
			r.Get("/export.csv", h.ExportCSV)
			r.Get("/export.xlsx", h.ExportXLSX)
			r.Get("/runs", h.ListPayrollRuns)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Fleet Payroll Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Fleet Payroll Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/companies">/api/companies</a> - List companies</li>
<li><a href="/api/rates?company_id=acme">/api/rates</a> - List pay rates</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List demo scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
