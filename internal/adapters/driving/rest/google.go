package rest

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// Callback outcomes reported to the dashboard.
const (
	callbackSuccess          = "google_connected"
	callbackAuthFailed       = "google_auth_failed"
	callbackMissingParams    = "missing_parameters"
	callbackNoAccessToken    = "no_access_token"
	callbackSaveFailed       = "failed_to_save_tokens"
	callbackUnexpectedFailed = "callback_error"
)

func (s *Server) beginConsent(c fiber.Ctx) error {
	authURL, err := s.services.Consent.BeginConsent(c.Context(), userID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "authUrl": authURL})
}

func (s *Server) completeConsent(c fiber.Ctx) error {
	req, err := bindJSON[consentRequest](c)
	if err != nil {
		return writeError(c, err)
	}

	tokens, err := s.services.Consent.CompleteConsent(c.Context(), userID(c), req.Code, req.State)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"scope":      tokens.Scope,
		"expiryDate": tokens.ExpiryDate,
	})
}

func (s *Server) disconnect(c fiber.Ctx) error {
	if err := s.services.Consent.Disconnect(c.Context(), userID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) connectionStatus(c fiber.Ctx) error {
	status, err := s.services.Consent.Status(c.Context(), userID(c))
	if err != nil {
		return writeError(c, err)
	}
	body := fiber.Map{
		"success":    true,
		"connected":  status.Connected,
		"canRefresh": status.CanRefresh,
	}
	if status.Connected {
		body["scope"] = status.Scope
		body["expiryDate"] = status.ExpiryDate
	}
	return c.JSON(body)
}

// googleCallback finishes consent from the browser redirect. It never
// answers with JSON; every outcome is a redirect to the dashboard.
func (s *Server) googleCallback(c fiber.Ctx) error {
	if providerErr := c.Query("error"); providerErr != "" {
		logger.L().Warn("google consent denied", zap.String("error", providerErr))
		return s.redirectToDashboard(c, "error", callbackAuthFailed)
	}

	code, state := c.Query("code"), c.Query("state")
	if code == "" || state == "" {
		return s.redirectToDashboard(c, "error", callbackMissingParams)
	}

	owner, err := s.services.Consent.CompleteCallback(c.Context(), code, state)
	if err != nil {
		logger.L().Error("google callback failed", zap.Error(err))
		return s.redirectToDashboard(c, "error", callbackOutcome(err))
	}

	logger.L().Info("google account connected", zap.String("user_id", owner))
	return s.redirectToDashboard(c, "success", callbackSuccess)
}

func callbackOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidGrant):
		return callbackAuthFailed
	case errors.Is(err, domain.ErrNoAccessToken):
		return callbackNoAccessToken
	case errors.Is(err, domain.ErrTokenSaveFailed):
		return callbackSaveFailed
	default:
		return callbackUnexpectedFailed
	}
}

func (s *Server) redirectToDashboard(c fiber.Ctx, key, value string) error {
	target, err := url.Parse(s.config.DashboardURL)
	if err != nil {
		return writeError(c, err)
	}
	q := target.Query()
	q.Set(key, value)
	target.RawQuery = q.Encode()
	return c.Redirect().Status(fiber.StatusFound).To(target.String())
}

func (s *Server) calendarEvents(c fiber.Ctx) error {
	events, err := s.services.Integration.CalendarEvents(c.Context(), userID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "events": events, "count": len(events)})
}

func (s *Server) driveFiles(c fiber.Ctx) error {
	files, err := s.services.Integration.DriveFiles(c.Context(), userID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "files": files, "count": len(files)})
}

func (s *Server) mailLabels(c fiber.Ctx) error {
	labels, err := s.services.Integration.MailLabels(c.Context(), userID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "labels": labels, "count": len(labels)})
}
