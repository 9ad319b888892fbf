package routes

import (
	"github.com/findmybus/findmybus/pkg/session"
	"github.com/gofiber/fiber/v2"
)

func RealtimeRouter(router fiber.Router, feedSession *session.Session) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(feedSession.Realtime())
	})
}
