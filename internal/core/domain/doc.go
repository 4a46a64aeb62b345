// Package domain defines the core business entities for WorkflowHub.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - User: A provider account, optionally linked to Google
//   - GoogleTokens: The OAuth token set owned by a user
//   - Workflow: A template of ordered steps, possibly imported as a draft
//   - CalendarEvent, MailLabel, DriveFile: Transient records read from Google
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
