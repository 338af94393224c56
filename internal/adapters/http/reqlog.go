package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/globaltrotters/backend/internal/pkg/logging"
)

// RequestIDLogMiddleware puts the request id in the user context. Anything
// logged through slog's *Context functions with that context, in handlers or
// in services, carries it as request_id.
func RequestIDLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid := requestID(c); rid != "" {
			c.SetUserContext(logging.WithRequestID(c.UserContext(), rid))
		}
		return c.Next()
	}
}
