// Package google provides shared infrastructure for the Google fetchers.
//
// This package contains common utilities used by the gmail, drive, and calendar
// fetchers including:
//   - OAuthProvider: consent URL, code exchange and refresh via golang.org/x/oauth2
//   - ServiceFactory: authenticated Google API clients built from stored tokens
//   - Error classification for Google API errors (401, 429, everything else)
//   - Per-user rate limiting to respect Google API quotas
//
// # Usage
//
// Each fetcher (gmail, drive, calendar) uses this package to create
// authenticated API clients:
//
//	factory := google.NewServiceFactory()
//	svc, err := factory.Calendar(ctx, tokens)
//
// # OAuth2 Scopes
//
// WorkflowHub requests these scopes by default:
//   - https://www.googleapis.com/auth/userinfo.email (non-sensitive)
//   - https://www.googleapis.com/auth/userinfo.profile (non-sensitive)
//   - https://www.googleapis.com/auth/gmail.readonly (restricted)
//   - https://www.googleapis.com/auth/drive.readonly (restricted)
//   - https://www.googleapis.com/auth/calendar.readonly (sensitive)
package google
