// Package auth resolves bearer tokens to user identities and gates
// admin-only routes.
//
// Tokens are opaque strings minted by the directory at user creation and
// stored alongside the user record. Authentication is an exact-match lookup
// against that column; there are no signed claims and no expiry.
//
// The middleware distinguishes two failure states:
//
//   - ErrUnauthenticated: no valid identity (missing header, malformed
//     header, or a token no user holds)
//   - ErrUnauthorized: a valid identity without the required role
//
// Handlers retrieve the resolved identity with FromContext and use its user
// id as the owner scope for every store operation. Request bodies are never
// trusted to name an owner.
package auth
