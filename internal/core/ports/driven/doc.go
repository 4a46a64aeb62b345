// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - UserStore: User persistence
//   - TokenStore: Google token persistence, embedded in the user record
//   - WorkflowStore: Workflow persistence
//   - OAuthProvider: Consent URL, code exchange and refresh against Google
//   - CalendarFetcher, MailFetcher, DriveFetcher: Read-only Google API access
//   - IdentityVerifier: Resolves a bearer credential to a caller identity
//   - StateSigner: Signs and verifies the consent state parameter
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
