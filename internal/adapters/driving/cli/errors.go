package cli

import "errors"

var errNotConfigured = errors.New("application not configured")
