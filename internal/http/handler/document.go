package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"doccenter/internal/filter"
	"doccenter/internal/http/middleware"
	"doccenter/internal/service"
)

type idsRequest struct {
	IDs []string `json:"ids"`
}

type bulkMoveRequest struct {
	IDs      []string `json:"ids"`
	ClientID string   `json:"client_id"`
}

type bulkYearRequest struct {
	IDs  []string `json:"ids"`
	Year string   `json:"year"`
}

type deleteRequest struct {
	IDs     []string `json:"ids"`
	Confirm bool     `json:"confirm"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type moveRequest struct {
	ClientID string `json:"client_id"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type typeRequest struct {
	DocumentType string `json:"document_type"`
}

type noteRequest struct {
	Note string `json:"note"`
}

// splitList parses a comma separated query value, dropping empty items.
func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func documentQuery(c *fiber.Ctx) (filter.DocumentQuery, error) {
	status, err := filter.ParseStatusFilter(c.Query("status"))
	if err != nil {
		return filter.DocumentQuery{}, err
	}
	order, err := filter.ParseSortOrder(c.Query("sort"))
	if err != nil {
		return filter.DocumentQuery{}, err
	}
	return filter.DocumentQuery{
		ClientIDs:     splitList(c.Query("client_ids")),
		IncludeLinked: c.QueryBool("include_linked", false),
		Search:        c.Query("search"),
		Status:        status,
		Year:          c.Query("year"),
		Sort:          order,
	}, nil
}

// bind parses a JSON body into v, writing the error response on failure.
func bind(c *fiber.Ctx, v any) bool {
	if err := c.BodyParser(v); err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return false
	}
	return true
}

// ListDocuments godoc
// @Summary List documents
// @Tags documents
// @Param client_ids query string false "comma separated client ids"
// @Param include_linked query bool false "include linked accounts"
// @Param search query string false "substring of name or type"
// @Param status query string false "all, received, pending or reviewing"
// @Param year query string false "tax year or all"
// @Param sort query string false "recent or name"
// @Success 200 {object} service.DocumentListResult
// @Router /api/v1/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := documentQuery(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query")
		}
		res, err := svc.List(c.UserContext(), q)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// DocumentAccounts groups the filtered documents by account for the split view.
func DocumentAccounts(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := documentQuery(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query")
		}
		res, err := svc.Accounts(c.UserContext(), q)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

func OrganizeDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := documentQuery(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query")
		}
		groups, err := svc.Organize(c.UserContext(), q)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": groups})
	}
}

// DocumentStats godoc
// @Summary Dashboard counters
// @Tags documents
// @Success 200 {object} filter.Stats
// @Router /api/v1/documents/stats [get]
func DocumentStats(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Stats(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(st)
	}
}

// UploadDocument godoc
// @Summary Upload a client document
// @Tags documents
// @Accept multipart/form-data
// @Param file formData file true "document file"
// @Param client_id formData string true "client id"
// @Param document_type formData string false "document type"
// @Param year formData string false "tax year"
// @Param document_id formData string false "requested document this upload fulfils"
// @Success 201 {object} model.DocumentView
// @Router /api/v1/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), middleware.ActorFrom(c), service.UploadInput{
			ClientID:     c.FormValue("client_id"),
			DocumentType: c.FormValue("document_type"),
			Year:         c.FormValue("year"),
			DocumentID:   c.FormValue("document_id"),
			Filename:     fh.Filename,
			ContentType:  ct,
			Size:         fh.Size,
			Reader:       f,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument returns a short-lived URL for the stored file.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.DownloadURL(c.UserContext(), middleware.ActorFrom(c), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url, "expires_in": int(service.DownloadURLExpiry.Seconds())})
	}
}

// ApproveDocument godoc
// @Summary Approve a received document
// @Tags documents
// @Param id path string true "document id"
// @Success 200 {object} model.DocumentView
// @Failure 409 {object} errorPayload
// @Router /api/v1/documents/{id}/approve [post]
func ApproveDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Approve(c.UserContext(), middleware.ActorFrom(c), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

func RejectDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req rejectRequest
		if !bind(c, &req) {
			return nil
		}
		doc, err := svc.Reject(c.UserContext(), middleware.ActorFrom(c), c.Params("id"), req.Reason)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

func MoveDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req moveRequest
		if !bind(c, &req) {
			return nil
		}
		doc, err := svc.Move(c.UserContext(), middleware.ActorFrom(c), c.Params("id"), req.ClientID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

func RenameDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req renameRequest
		if !bind(c, &req) {
			return nil
		}
		doc, err := svc.Rename(c.UserContext(), middleware.ActorFrom(c), c.Params("id"), req.Name)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

func ChangeDocumentType(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req typeRequest
		if !bind(c, &req) {
			return nil
		}
		doc, err := svc.ChangeType(c.UserContext(), middleware.ActorFrom(c), c.Params("id"), req.DocumentType)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

func AddDocumentNote(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req noteRequest
		if !bind(c, &req) {
			return nil
		}
		doc, err := svc.AddNote(c.UserContext(), middleware.ActorFrom(c), c.Params("id"), req.Note)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

func BulkApproveDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req idsRequest
		if !bind(c, &req) {
			return nil
		}
		res, err := svc.BulkApprove(c.UserContext(), middleware.ActorFrom(c), req.IDs)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

func BulkMoveDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bulkMoveRequest
		if !bind(c, &req) {
			return nil
		}
		res, err := svc.BulkMove(c.UserContext(), middleware.ActorFrom(c), req.IDs, req.ClientID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

func ChangeDocumentsYear(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bulkYearRequest
		if !bind(c, &req) {
			return nil
		}
		res, err := svc.ChangeYear(c.UserContext(), middleware.ActorFrom(c), req.IDs, req.Year)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// DeleteDocuments godoc
// @Summary Permanently delete documents
// @Description Deletion cannot be undone and must be confirmed with confirm=true.
// @Tags documents
// @Accept json
// @Success 200 {object} service.BulkResult
// @Failure 400 {object} errorPayload
// @Router /api/v1/documents/bulk/delete [post]
func DeleteDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deleteRequest
		if !bind(c, &req) {
			return nil
		}
		if !req.Confirm {
			return writeError(c, fiber.StatusBadRequest, "CONFIRMATION_REQUIRED", "deletion must be confirmed")
		}
		res, err := svc.Delete(c.UserContext(), middleware.ActorFrom(c), req.IDs)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// SendReminder godoc
// @Summary E-mail a reminder for a requested document
// @Tags documents
// @Param id path string true "document id"
// @Success 201 {object} model.ReminderHistory
// @Failure 502 {object} errorPayload "delivery failed; the attempt is recorded"
// @Router /api/v1/documents/{id}/reminders [post]
func SendReminder(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h, err := svc.SendReminder(c.UserContext(), middleware.ActorFrom(c), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(h)
	}
}

// ListReminders returns a requested document's reminder history, oldest first.
func ListReminders(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Reminders(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

func MarkReminderViewed(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid reminder index")
		}
		if err := svc.MarkReminderViewed(c.UserContext(), c.Params("id"), index); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "reminder not found")
			}
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
