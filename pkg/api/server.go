package api

import (
	"github.com/findmybus/findmybus/pkg/api/routes"
	"github.com/findmybus/findmybus/pkg/session"
	"github.com/gofiber/fiber/v2"
)

func NewApp(feedSession *session.Session) *fiber.App {
	// Feed identifiers can hold spaces and other reserved characters
	webApp := fiber.New(fiber.Config{
		UnescapePath: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StaticRouter(group.Group("/static"), feedSession)
	routes.RealtimeRouter(group.Group("/realtime"), feedSession)
	routes.TripsRouter(group.Group("/trips"), feedSession)
	routes.RefreshRouter(group.Group("/refresh"), feedSession)

	return webApp
}

func SetupServer(listen string, feedSession *session.Session) error {
	return NewApp(feedSession).Listen(listen)
}
