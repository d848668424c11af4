// Package router sets up all HTTP routes and middleware chains for the
// QuickStor server. It organizes routes into the public site, the editor
// JSON API, and the live-reload websocket endpoint.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"quickstor/internal/handlers"
	"quickstor/internal/live"
	"quickstor/internal/middleware"
	"quickstor/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, adminAI *handlers.AdminAI, auth *handlers.Auth, public *handlers.Public, hub *live.Hub) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Live-reload websocket. Preview pages connect here and refresh on
	// broadcast; the payload is a bare "reload" string.
	r.Get("/ws/live", hub.ServeHTTP)

	// Editor JSON API — CSRF-protected, session-loaded.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.LoadSession(sessionStore))

		// Auth endpoints — accessible without a session.
		r.Get("/me", auth.Me)
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		// 2FA — requires auth but NOT completed verification.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/2fa/setup", auth.TwoFASetup)
			r.Post("/2fa/verify", auth.TwoFAVerify)
		})

		// Authenticated + 2FA-verified editor area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			// Working draft + staging status.
			r.Get("/site", admin.Site)
			r.Get("/status", admin.Status)
			r.Get("/preview", admin.Preview)

			// Pages
			r.Route("/pages", func(r chi.Router) {
				r.Post("/", admin.CreatePage)
				r.Patch("/{pageID}", admin.UpdatePage)
				r.Delete("/{pageID}", admin.DeletePage)
				r.Post("/{pageID}/activate", admin.ActivatePage)
			})

			// Sections on the active page
			r.Route("/sections", func(r chi.Router) {
				r.Post("/", admin.CreateSection)
				r.Post("/reorder", admin.ReorderSections)
				r.Put("/{sectionID}", admin.UpdateSection)
				r.Delete("/{sectionID}", admin.DeleteSection)
				r.Post("/{sectionID}/select", admin.SelectSection)
			})

			// Global records
			r.Patch("/navbar", admin.UpdateNavbar)
			r.Patch("/footer", admin.UpdateFooter)

			// Theme + saved-theme library
			r.Patch("/theme", admin.UpdateTheme)
			r.Post("/theme/apply", admin.ApplyTheme)
			r.Post("/themes", admin.SaveTheme)
			r.Delete("/themes/{themeID}", admin.DeleteTheme)

			// Custom section library
			r.Post("/custom-sections", admin.CreateCustomSection)
			r.Delete("/custom-sections/{sectionID}", admin.DeleteCustomSection)

			// Staging protocol
			r.Post("/save", admin.Save)
			r.Post("/discard", admin.Discard)
			r.Post("/publish", admin.Publish)
			r.Post("/reject", admin.Reject)

			// AI section generation
			r.Route("/ai", func(r chi.Router) {
				r.Post("/generate", adminAI.Generate)
				r.Post("/edit", adminAI.Edit)
				r.Post("/extract", adminAI.Extract)
				r.Get("/providers", adminAI.Providers)
				r.Post("/provider", adminAI.SetProvider)
			})
		})
	})

	// Public routes — everything else renders from the live document.
	r.Get("/", public.Page)
	r.Get("/*", public.Page)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
