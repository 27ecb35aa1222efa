package routes

import (
	"github.com/go-chi/chi/v5"

	"flightbay/techlog/internal/api"
	"flightbay/techlog/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, handlers *api.Handlers) {

	r.Route("/api/v1", func(v1 chi.Router) {
		// global: all routes must be authenticated (API key or signed link)
		v1.Use(middleware.AuthMiddleware(deps.Repo.Keys, deps.Repo.Org, deps.Services.Signer))

		// Read surface, open to every authenticated caller
		v1.Get("/logs", handlers.ListDailyLogsHandler())
		v1.Get("/logs/fleet", handlers.FleetSummaryHandler())
		v1.Get("/logs/{id}", handlers.GetDailyLogHandler())
		v1.Get("/aircraft", handlers.ListAircraftHandler())
		v1.Get("/aircraft/{id}/inspections/status", handlers.InspectionStatusHandler())
		v1.Get("/inspections", handlers.ListInspectionsHandler())
		v1.Get("/documents", handlers.ListDocumentsHandler())
		v1.Post("/documents/{id}/link", handlers.DocumentLinkHandler())
		v1.Post("/auth/generate-dashboard-link", handlers.GenerateDashboardLinkHandler())

		// Editor group: anything that writes a record
		v1.Group(func(editor chi.Router) {
			editor.Use(middleware.IsEditorMiddleware())

			editor.Post("/logs", handlers.SubmitDailyLogHandler())
			editor.Patch("/logs/{id}", handlers.UpdateDailyLogHandler())
			editor.Delete("/logs/{id}", handlers.DeleteDailyLogHandler())

			editor.Post("/inspections", handlers.CreateInspectionHandler())
			editor.Post("/inspections/{id}/done", handlers.MarkInspectionDoneHandler())

			editor.Post("/documents", handlers.CreateDocumentHandler())

			// Admin group (editor + admin)
			editor.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())

				admin.Post("/aircraft", handlers.CreateAircraftHandler())
				admin.Delete("/documents/{id}", handlers.DeleteDocumentHandler())
				admin.Post("/admin/ledger/rebuild", handlers.RebuildLedgerHandler())
			})
		})
	})
}
