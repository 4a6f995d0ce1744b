package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"doccenter/internal/http/middleware"
	"doccenter/internal/service"
)

func ListTemplates(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": res, "total": len(res)})
	}
}

func GetTemplate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// FirmUsers lists the firm members that can be assigned as signers.
func FirmUsers(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": svc.FirmUsers(c.UserContext())})
	}
}

// CreateTemplate godoc
// @Summary Save a signature template
// @Description The "template" form value holds the JSON definition (category, name, roles, fields).
// @Tags templates
// @Accept multipart/form-data
// @Param file formData file true "template PDF"
// @Param template formData string true "template definition as JSON"
// @Success 201 {object} model.SignatureTemplate
// @Failure 422 {object} errorPayload
// @Router /api/v1/templates [post]
func CreateTemplate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.TemplateInput
		if err := json.Unmarshal([]byte(c.FormValue("template")), &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid template definition")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		in.FileName = fh.Filename
		in.ContentType = fh.Header.Get("Content-Type")
		in.Size = fh.Size
		in.File = f

		res, err := svc.Create(c.UserContext(), middleware.ActorFrom(c), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
