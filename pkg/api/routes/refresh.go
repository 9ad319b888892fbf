package routes

import (
	"context"
	"errors"

	"github.com/findmybus/findmybus/pkg/session"
	"github.com/gofiber/fiber/v2"
)

// RefreshRouter lets a user trigger an import. Failures are reported back so
// the caller can offer to retry.
func RefreshRouter(router fiber.Router, feedSession *session.Session) {
	router.Post("/static", func(c *fiber.Ctx) error {
		return refresh(c, feedSession.RefreshStatic, func() string {
			return feedSession.Static().Timestamp
		})
	})

	router.Post("/realtime", func(c *fiber.Ctx) error {
		return refresh(c, feedSession.RefreshRealtime, func() string {
			return feedSession.Realtime().LocalTimestamp
		})
	})
}

func refresh(c *fiber.Ctx, run func(context.Context) error, timestamp func() string) error {
	err := run(c.UserContext())

	if errors.Is(err, session.ErrIngestionInProgress) {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"timestamp": timestamp(),
	})
}
