// Package services holds the WorkflowHub core: the Google token lifecycle,
// the consent flow, record fetching, draft import and workflow review.
//
// Services keep no per-user state between calls. Tokens and workflows are
// read from and written back to the driven stores on every request.
package services
