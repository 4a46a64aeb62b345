package google

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return statusCode(err) == http.StatusUnauthorized
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return statusCode(err) == http.StatusTooManyRequests
}

// RetryAfter returns the Retry-After header of a 429 response in seconds, or 0.
func RetryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || secs < 0 {
		return 0
	}
	return secs
}

// WrapError converts a Google API error into the domain taxonomy.
// 401 becomes domain.ErrReauthRequired; every other failure is
// domain.ErrUpstream carrying the API's message.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsUnauthorized(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrReauthRequired)
	}

	msg := err.Error()
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		msg = gerr.Message
	}
	if IsRateLimited(err) {
		return fmt.Errorf("%w: %s: %w: %s", domain.ErrUpstream, op, domain.ErrRateLimited, msg)
	}
	return fmt.Errorf("%w: %s: %s", domain.ErrUpstream, op, msg)
}

func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.Response != nil {
		return rerr.Response.StatusCode
	}
	return 0
}
