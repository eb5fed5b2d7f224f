// Package server wires the stashd HTTP API.
//
// The v1 surface has two route groups. /v1/user carries user administration
// (admin-gated creation and deletion, plus self lookup) and /v1/kv carries
// the per-user key-value operations. Both groups sit behind the auth
// middleware; the kv group rejects bad tokens with 403 while the user group
// answers 401 (422 on GET), preserving the service's historical wire
// contract.
//
// Handlers never read an owner id from request input. The owning user comes
// from the identity the middleware resolved, and every store call is scoped
// to it.
package server
