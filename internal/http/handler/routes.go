package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"doccenter/internal/service"
)

// Services are the use cases the HTTP API exposes.
type Services struct {
	Documents   service.DocumentService
	Clients     service.ClientService
	Activity    service.ActivityService
	Requests    service.RequestService
	Templates   service.TemplateService
	Preferences service.PreferenceService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. db may be nil
// when the in-memory store is used.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api/v1")

	docs := api.Group("/documents")
	docs.Get("/", ListDocuments(svc.Documents))
	docs.Post("/", UploadDocument(svc.Documents))
	docs.Get("/stats", DocumentStats(svc.Documents))
	docs.Get("/accounts", DocumentAccounts(svc.Documents))
	docs.Get("/organize", OrganizeDocuments(svc.Documents))
	docs.Post("/bulk/approve", BulkApproveDocuments(svc.Documents))
	docs.Post("/bulk/move", BulkMoveDocuments(svc.Documents))
	docs.Post("/bulk/year", ChangeDocumentsYear(svc.Documents))
	docs.Post("/bulk/delete", DeleteDocuments(svc.Documents))
	docs.Get("/:id", GetDocument(svc.Documents))
	docs.Get("/:id/download", DownloadDocument(svc.Documents))
	docs.Post("/:id/approve", ApproveDocument(svc.Documents))
	docs.Post("/:id/reject", RejectDocument(svc.Documents))
	docs.Post("/:id/move", MoveDocument(svc.Documents))
	docs.Post("/:id/rename", RenameDocument(svc.Documents))
	docs.Post("/:id/type", ChangeDocumentType(svc.Documents))
	docs.Post("/:id/note", AddDocumentNote(svc.Documents))
	docs.Get("/:id/reminders", ListReminders(svc.Documents))
	docs.Post("/:id/reminders", SendReminder(svc.Documents))
	docs.Post("/:id/reminders/:index/viewed", MarkReminderViewed(svc.Documents))

	clients := api.Group("/clients")
	clients.Get("/", ListClients(svc.Clients))
	clients.Post("/", CreateClient(svc.Clients))
	clients.Get("/:id", GetClient(svc.Clients))
	clients.Post("/:id/links", LinkClients(svc.Clients))
	clients.Delete("/:id/links/:other", UnlinkClients(svc.Clients))

	act := api.Group("/activity")
	act.Get("/", ListActivity(svc.Activity))
	act.Get("/users", ActivityUsers(svc.Activity))
	act.Get("/types", ActivityTypes())
	act.Get("/export", ExportActivity(svc.Activity))

	reqs := api.Group("/requests")
	reqs.Get("/catalog", RequestCatalog())
	reqs.Post("/preview", PreviewRequest(svc.Requests))
	reqs.Post("/", SendRequest(svc.Requests))

	tpls := api.Group("/templates")
	tpls.Get("/", ListTemplates(svc.Templates))
	tpls.Post("/", CreateTemplate(svc.Templates))
	tpls.Get("/firm-users", FirmUsers(svc.Templates))
	tpls.Get("/:id", GetTemplate(svc.Templates))

	prefs := api.Group("/preferences")
	prefs.Get("/view-mode", GetViewMode(svc.Preferences))
	prefs.Put("/view-mode", SetViewMode(svc.Preferences))
}

// HealthCheck reports unhealthy when the database does not answer a ping.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness check without dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
