package handler

import (
	"github.com/gofiber/fiber/v2"

	"doccenter/internal/model"
	"doccenter/internal/service"
)

type viewModeBody struct {
	ViewMode model.ViewMode `json:"view_mode"`
}

func GetViewMode(svc service.PreferenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := svc.ViewMode(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(viewModeBody{ViewMode: m})
	}
}

func SetViewMode(svc service.PreferenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req viewModeBody
		if !bind(c, &req) {
			return nil
		}
		if err := svc.SetViewMode(c.UserContext(), req.ViewMode); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(req)
	}
}
