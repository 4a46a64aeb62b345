package rest

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// Client-facing messages.
const (
	msgUnauthorized   = "Unauthorized"
	msgReauthRequired = "Google authorization expired or was revoked. Please reconnect your Google account."
	msgNotConnected   = "Google account not connected"
	msgInvalidGrant   = "Invalid or expired authorization code"
	msgStateMismatch  = "Invalid state parameter"
	msgForbidden      = "Forbidden"
	msgNotFound       = "Not found"
	msgNoAccessToken  = "No access token received from Google"
	msgSaveFailed     = "Failed to save tokens"
	msgInternal       = "Internal server error"
)

// errorBody is the failure envelope.
type errorBody struct {
	Success        bool   `json:"success"`
	Error          string `json:"error"`
	RequiresReauth bool   `json:"requiresReauth,omitempty"`
}

// classify maps a service error to a status and client message.
// Upstream messages pass through; other unexpected errors stay generic.
func classify(err error) (int, errorBody) {
	body := errorBody{Success: false}
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		status, body.Error = fiber.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, domain.ErrReauthRequired):
		status, body.Error = fiber.StatusUnauthorized, msgReauthRequired
		body.RequiresReauth = true
	case errors.Is(err, domain.ErrNotConnected):
		status, body.Error = fiber.StatusBadRequest, msgNotConnected
	case errors.Is(err, domain.ErrInvalidGrant):
		status, body.Error = fiber.StatusBadRequest, msgInvalidGrant
	case errors.Is(err, domain.ErrStateMismatch):
		status, body.Error = fiber.StatusBadRequest, msgStateMismatch
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedSource):
		status, body.Error = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, body.Error = fiber.StatusForbidden, msgForbidden
	case errors.Is(err, domain.ErrNotFound):
		status, body.Error = fiber.StatusNotFound, msgNotFound
	case errors.Is(err, domain.ErrNoAccessToken):
		body.Error = msgNoAccessToken
	case errors.Is(err, domain.ErrTokenSaveFailed):
		body.Error = msgSaveFailed
	case errors.Is(err, domain.ErrUpstream):
		body.Error = err.Error()
	default:
		body.Error = msgInternal
	}
	return status, body
}

// writeError logs err at the handler boundary and writes the failure envelope.
func writeError(c fiber.Ctx, err error) error {
	status, body := classify(err)

	log := logger.With(
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("user_id", userID(c)),
		zap.Int("status", status),
		zap.Error(err),
	)
	if status >= fiber.StatusInternalServerError {
		log.Error("request failed")
	} else {
		log.Warn("request rejected")
	}

	return c.Status(status).JSON(body)
}

// handleFiberError renders errors that escape handlers, such as unknown routes.
func (s *Server) handleFiberError(c fiber.Ctx, err error) error {
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return c.Status(ferr.Code).JSON(errorBody{Error: ferr.Message})
	}
	return writeError(c, err)
}
