package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"doccenter/internal/http/middleware"
	"doccenter/internal/service"
	"doccenter/internal/workflow"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_YEAR", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// errorMapping translates a sentinel into a response. The sentinel's own text
// is the message, so wrapped details never reach the client.
type errorMapping struct {
	err    error
	status int
	code   string
}

var serviceErrors = []errorMapping{
	{service.ErrIDRequired, fiber.StatusBadRequest, "ID_REQUIRED"},
	{service.ErrReaderNil, fiber.StatusBadRequest, "FILE_REQUIRED"},
	{service.ErrReasonRequired, fiber.StatusBadRequest, "REASON_REQUIRED"},
	{service.ErrNameRequired, fiber.StatusBadRequest, "NAME_REQUIRED"},
	{service.ErrTypeRequired, fiber.StatusBadRequest, "TYPE_REQUIRED"},
	{service.ErrNoteRequired, fiber.StatusBadRequest, "NOTE_REQUIRED"},
	{service.ErrInvalidYear, fiber.StatusBadRequest, "INVALID_YEAR"},
	{service.ErrInvalidClient, fiber.StatusBadRequest, "INVALID_CLIENT"},
	{service.ErrInvalidViewMode, fiber.StatusBadRequest, "INVALID_VIEW_MODE"},
	{service.ErrInvalidField, fiber.StatusBadRequest, "INVALID_FIELD"},
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{service.ErrClientNotFound, fiber.StatusNotFound, "CLIENT_NOT_FOUND"},
	{service.ErrTemplateNotFound, fiber.StatusNotFound, "TEMPLATE_NOT_FOUND"},
	{service.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{service.ErrUnsupportedFileType, fiber.StatusUnprocessableEntity, "UNSUPPORTED_FILE_TYPE"},
	{service.ErrNothingToExport, fiber.StatusUnprocessableEntity, "NOTHING_TO_EXPORT"},
	{service.ErrNotImplemented, fiber.StatusNotImplemented, "NOT_IMPLEMENTED"},
	{service.ErrDeliveryFailed, fiber.StatusBadGateway, "DELIVERY_FAILED"},
}

// workflowErrors are rule violations of the request and template workflows.
var workflowErrors = []error{
	workflow.ErrNoClients,
	workflow.ErrNoDocumentsSelected,
	workflow.ErrDocumentTypeRequired,
	workflow.ErrDuplicateDocument,
	workflow.ErrRequestNotFound,
	workflow.ErrUnknownPreset,
	workflow.ErrInvalidStep,
	workflow.ErrCategoryRequired,
	workflow.ErrInvalidCategory,
	workflow.ErrPDFRequired,
	workflow.ErrNameRequired,
	workflow.ErrInvalidYear,
	workflow.ErrInvalidSigningOrder,
	workflow.ErrNoRecipients,
	workflow.ErrRecipientName,
	workflow.ErrRecipientEmail,
	workflow.ErrInvalidEmail,
	workflow.ErrUnknownFirmUser,
	workflow.ErrRecipientNotFound,
	workflow.ErrRecipientIndex,
	workflow.ErrNoRecipientSelected,
	workflow.ErrNoFieldType,
	workflow.ErrFieldNotFound,
	workflow.ErrInvalidCanvas,
}

// serviceError maps an error returned by a service to the error envelope.
// Unknown errors become a 500 with a generic message.
func serviceError(c *fiber.Ctx, err error) error {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return writeError(c, m.status, m.code, m.err.Error())
		}
	}
	for _, we := range workflowErrors {
		if errors.Is(err, we) {
			return writeError(c, fiber.StatusUnprocessableEntity, "WORKFLOW_VALIDATION", we.Error())
		}
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
