package rest

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// consentRequest is the body of POST /api/google/auth.
type consentRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}

// bindJSON decodes and validates the request body into T.
// Decode and validation failures both wrap domain.ErrInvalidInput.
func bindJSON[T any](c fiber.Ctx) (*T, error) {
	var req T
	if err := c.Bind().Should().JSON(&req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeBindError(err))
	}
	return &req, nil
}
