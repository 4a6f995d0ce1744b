package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	// ActorHeader names the user performing the request. Authentication is
	// handled upstream; the header is trusted as-is.
	ActorHeader = "X-Actor"
	// ActorLocalKey stores the resolved actor in Fiber's context locals.
	ActorLocalKey = "actor"
)

// Actor resolves who performs the request, falling back to def.
func Actor(def string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := strings.TrimSpace(c.Get(ActorHeader))
		if actor == "" {
			actor = def
		}
		c.Locals(ActorLocalKey, actor)
		return c.Next()
	}
}

// ActorFrom returns the actor stored by Actor, or "" when the middleware is not installed.
func ActorFrom(c *fiber.Ctx) string {
	a, _ := c.Locals(ActorLocalKey).(string)
	return a
}
