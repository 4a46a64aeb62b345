// Package sqlite provides a SQLite-based implementation of the driven storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A single database connection backs:
//
//   - UserStore: user profiles provisioned from verified sessions
//   - TokenStore: the Google token set embedded in each user row
//   - WorkflowStore: workflow templates and imported drafts
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Token encryption
//
// When a TokenCipher is configured the google_tokens column holds an AES-GCM
// sealed blob instead of plain JSON. Plain rows written before a key was
// configured remain readable.
//
// # Data Location
//
// By default, the database is stored at ~/.workflowhub/data/workflowhub.db
package sqlite
