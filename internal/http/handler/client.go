package handler

import (
	"github.com/gofiber/fiber/v2"

	"doccenter/internal/filter"
	"doccenter/internal/model"
	"doccenter/internal/service"
)

type createClientRequest struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Type  model.ClientType `json:"type"`
	Email string           `json:"email"`
}

type linkRequest struct {
	ClientID string `json:"client_id"`
}

// ListClients godoc
// @Summary List clients with document counters
// @Tags clients
// @Param search query string false "substring of the client name"
// @Param type query string false "Individual or Business"
// @Param new_only query bool false "only clients with unreviewed documents"
// @Param sort query string false "recent or name"
// @Success 200 {array} model.ClientSummary
// @Router /api/v1/clients [get]
func ListClients(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := filter.ParseSortOrder(c.Query("sort"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query")
		}
		typ := model.ClientType(c.Query("type"))
		if typ == "all" {
			typ = ""
		}
		if typ != "" && !typ.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query")
		}
		res, err := svc.List(c.UserContext(), filter.ClientQuery{
			Search:  c.Query("search"),
			Type:    typ,
			NewOnly: c.QueryBool("new_only", false),
			Sort:    order,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": res, "total": len(res)})
	}
}

func GetClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

func CreateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createClientRequest
		if !bind(c, &req) {
			return nil
		}
		res, err := svc.Create(c.UserContext(), model.Client{ID: req.ID, Name: req.Name, Type: req.Type, Email: req.Email})
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// LinkClients links the path client with client_id, e.g. spouses filing separately.
func LinkClients(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req linkRequest
		if !bind(c, &req) {
			return nil
		}
		if err := svc.Link(c.UserContext(), c.Params("id"), req.ClientID); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func UnlinkClients(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Unlink(c.UserContext(), c.Params("id"), c.Params("other")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
