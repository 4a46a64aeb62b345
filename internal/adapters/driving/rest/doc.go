// Package rest exposes WorkflowHub over HTTP using fiber.
//
// Every route under /api requires a bearer session token. The Google
// redirect callback is public and reports its outcome by redirecting to the
// dashboard with a success or error query parameter.
//
// Responses share one envelope:
//
//	{"success": true, ...payload}
//	{"success": false, "error": "...", "requiresReauth": true}
package rest
