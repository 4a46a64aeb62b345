// Package identity implements caller verification and consent state signing
// with HMAC-signed JWTs.
//
// Adapters:
//   - JWTVerifier: driven.IdentityVerifier for bearer session tokens
//   - StateSigner: driven.StateSigner for the Google consent state parameter
package identity
