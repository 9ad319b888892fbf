package routes

import (
	"github.com/findmybus/findmybus/pkg/session"
	"github.com/gofiber/fiber/v2"
)

func StaticRouter(router fiber.Router, feedSession *session.Session) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(feedSession.Static())
	})

	router.Get("/stops/:identifier", func(c *fiber.Ctx) error {
		stop, exists := feedSession.Static().Stops[c.Params("identifier")]
		if !exists {
			return notFound(c, "Could not find Stop matching Stop Identifier")
		}

		return c.JSON(stop)
	})

	router.Get("/routes/:identifier", func(c *fiber.Ctx) error {
		route, exists := feedSession.Static().Routes[c.Params("identifier")]
		if !exists {
			return notFound(c, "Could not find Route matching Route Identifier")
		}

		return c.JSON(route)
	})

	router.Get("/trips/:identifier", func(c *fiber.Ctx) error {
		trip, exists := feedSession.Static().Trips[c.Params("identifier")]
		if !exists {
			return notFound(c, "Could not find Trip matching Trip Identifier")
		}

		return c.JSON(trip)
	})
}

func notFound(c *fiber.Ctx, message string) error {
	c.SendStatus(fiber.StatusNotFound)
	return c.JSON(fiber.Map{
		"error": message,
	})
}
