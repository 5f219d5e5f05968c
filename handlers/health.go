package handlers

import (
	"github.com/conectaedu/conecta-api/database"
	"github.com/conectaedu/conecta-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth reports whether the API and its database are reachable
func HandleCheckHealth(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable, "Database is unreachable")
		}
		return response.SuccessWithMessage(c, "pong", fiber.Map{"status": "ok"})
	}
}
