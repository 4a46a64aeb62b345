package rest

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// userLocalsKey stores the authenticated *domain.User on the request.
type userLocalsKey struct{}

const bearerPrefix = "Bearer "

// authenticate resolves the bearer token to a provisioned user.
// Any failure ends the request with 401 before a handler runs.
func (s *Server) authenticate(c fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Error: msgUnauthorized})
	}

	user, err := s.services.Users.Authenticate(c.Context(), strings.TrimSpace(header[len(bearerPrefix):]))
	if err != nil {
		logger.L().Debug("authentication failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Error: msgUnauthorized})
	}

	c.Locals(userLocalsKey{}, user)
	return c.Next()
}

// currentUser returns the user set by authenticate.
func currentUser(c fiber.Ctx) *domain.User {
	user, _ := c.Locals(userLocalsKey{}).(*domain.User)
	return user
}

func userID(c fiber.Ctx) string {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return ""
}

// accessLog writes one structured line per request.
func accessLog() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.L().Info("request",
			zap.String("request_id", requestid.FromContext(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}
