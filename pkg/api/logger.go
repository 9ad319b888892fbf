package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger logs one line per request, at Warn for client errors and Error for
// server errors.
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		err := c.Next()

		msg := "HTTP Request"
		if err != nil {
			msg = err.Error()

			// Respond now so the logged status is the one the client gets
			if handlerErr := c.App().Config().ErrorHandler(c, err); handlerErr != nil {
				c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		code := c.Response().StatusCode()

		requestLogger := log.With().
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", clientIP(c)).
			Str("latency", time.Since(startTime).String()).
			Int("bytes", len(c.Response().Body())).
			Str("user-agent", c.Get(fiber.HeaderUserAgent)).
			Logger()

		requestLogger.WithLevel(statusLevel(code)).Msg(msg)

		return nil
	}
}

func statusLevel(code int) zerolog.Level {
	switch {
	case code >= fiber.StatusInternalServerError:
		return zerolog.ErrorLevel
	case code >= fiber.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// The app is usually deployed behind a reverse proxy
func clientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get(fiber.HeaderXForwardedFor); forwardedFor != "" {
		ip, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(ip)
	}

	return c.IP()
}
