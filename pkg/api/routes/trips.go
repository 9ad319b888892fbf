package routes

import (
	"errors"
	"time"

	"github.com/findmybus/findmybus/pkg/ctdf"
	"github.com/findmybus/findmybus/pkg/session"
	"github.com/gofiber/fiber/v2"
)

type resolvedStopTime struct {
	ctdf.StopTime

	Departure time.Time `json:"departure"`
}

func TripsRouter(router fiber.Router, feedSession *session.Session) {
	router.Get("/:identifier/stop_times", func(c *fiber.Ctx) error {
		stopTimes, err := feedSession.StopTimesForTrip(c.UserContext(), c.Params("identifier"))
		if errors.Is(err, session.ErrScheduleUnavailable) {
			return notFound(c, "Schedule is not available for this Trip")
		} else if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		dateQuery := c.Query("date")
		if dateQuery == "" {
			return c.JSON(stopTimes)
		}

		// Resolve the departures against a service day
		day, err := time.ParseInLocation(time.DateOnly, dateQuery, time.Local)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Date must be formatted as YYYY-MM-DD",
			})
		}

		resolved := []resolvedStopTime{}
		for _, stopTime := range stopTimes {
			departure, err := stopTime.DepartureOn(day)
			if err != nil {
				c.SendStatus(fiber.StatusUnprocessableEntity)
				return c.JSON(fiber.Map{
					"error": err.Error(),
				})
			}

			resolved = append(resolved, resolvedStopTime{
				StopTime:  stopTime,
				Departure: departure,
			})
		}

		return c.JSON(resolved)
	})
}
