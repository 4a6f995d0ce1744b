package handler

import (
	"bytes"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"doccenter/internal/activity"
	"doccenter/internal/model"
	"doccenter/internal/service"
)

type activityTypeResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// activityQuery reads the log filters. days and type accept "all".
func activityQuery(c *fiber.Ctx) (activity.Query, error) {
	q := activity.Query{
		ClientIDs: splitList(c.Query("client_ids")),
		User:      c.Query("user"),
		Search:    c.Query("search"),
	}
	switch days := c.Query("days"); days {
	case "":
	case "all":
		q.Days = activity.AllTime
	default:
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return activity.Query{}, strconv.ErrSyntax
		}
		q.Days = n
	}
	if typ := c.Query("type"); typ != "" && typ != "all" {
		t, err := model.ParseActivityType(typ)
		if err != nil {
			return activity.Query{}, err
		}
		q.Type = &t
	}
	return q, nil
}

// ListActivity godoc
// @Summary Activity log, newest first
// @Tags activity
// @Param client_ids query string false "comma separated client ids"
// @Param days query string false "lookback in days, or all (default 7)"
// @Param type query string false "activity type or all"
// @Param user query string false "performer or all"
// @Param search query string false "substring search"
// @Success 200 {array} service.FeedEntry
// @Router /api/v1/activity [get]
func ListActivity(svc service.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := activityQuery(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query")
		}
		res, err := svc.Feed(c.UserContext(), q)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": res, "total": len(res)})
	}
}

func ActivityUsers(svc service.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.Users(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": users})
	}
}

// ActivityTypes lists the display mapping of every activity type.
func ActivityTypes() fiber.Handler {
	types := model.ActivityTypes()
	out := make([]activityTypeResponse, len(types))
	for i, t := range types {
		info := t.Info()
		out[i] = activityTypeResponse{Name: info.Name, Label: info.Label, Icon: info.Icon, Color: info.Color}
	}
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": out})
	}
}

// ExportActivity godoc
// @Summary Export the filtered activity log
// @Tags activity
// @Produce text/csv
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 422 {object} errorPayload "nothing to export"
// @Failure 501 {object} errorPayload "pdf export"
// @Router /api/v1/activity/export [get]
func ExportActivity(svc service.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := activityQuery(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query")
		}

		var buf bytes.Buffer
		switch c.Query("format", "csv") {
		case "csv":
			name, err := svc.ExportCSV(c.UserContext(), &buf, q)
			if err != nil {
				return serviceError(c, err)
			}
			c.Attachment(name)
			c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
			return c.Send(buf.Bytes())
		case "pdf":
			if err := svc.ExportPDF(c.UserContext(), &buf, q); err != nil {
				return serviceError(c, err)
			}
			c.Set(fiber.HeaderContentType, "application/pdf")
			return c.Send(buf.Bytes())
		default:
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORMAT", "format must be csv or pdf")
		}
	}
}
