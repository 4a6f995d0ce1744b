package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"doccenter/internal/storage"
)

// ServeStoredFile streams an object addressed by a URL from storage.Memory's
// PresignGet. Expired links are refused.
func ServeStoredFile(st storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Query("key")
		expires, err := time.Parse(time.RFC3339, c.Query("expires"))
		if key == "" || err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LINK", "invalid download link")
		}
		if time.Now().After(expires) {
			return writeError(c, fiber.StatusForbidden, "LINK_EXPIRED", "download link expired")
		}

		rc, info, err := st.Get(c.UserContext(), key)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		// The body stream is closed by fasthttp once written.
		return c.SendStream(rc, int(info.Size))
	}
}
