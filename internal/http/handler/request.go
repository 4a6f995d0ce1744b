package handler

import (
	"github.com/gofiber/fiber/v2"

	"doccenter/internal/http/middleware"
	"doccenter/internal/service"
	"doccenter/internal/workflow"
)

// RequestCatalog lists the document types and e-mail presets offered when
// requesting documents.
func RequestCatalog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"categories":   workflow.DocumentCatalog,
			"presets":      workflow.EmailPresets,
			"default_body": workflow.DefaultEmailBody,
		})
	}
}

// PreviewRequest godoc
// @Summary Render the review step of a document request
// @Tags requests
// @Accept json
// @Param request body service.RequestInput true "request"
// @Success 200 {object} service.RequestPreview
// @Failure 422 {object} errorPayload
// @Router /api/v1/requests/preview [post]
func PreviewRequest(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RequestInput
		if !bind(c, &in) {
			return nil
		}
		res, err := svc.Preview(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// SendRequest godoc
// @Summary Create requested documents and optionally e-mail the clients
// @Tags requests
// @Accept json
// @Param request body service.RequestInput true "request"
// @Success 201 {object} service.RequestResult
// @Failure 422 {object} errorPayload
// @Router /api/v1/requests [post]
func SendRequest(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RequestInput
		if !bind(c, &in) {
			return nil
		}
		res, err := svc.Send(c.UserContext(), middleware.ActorFrom(c), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
