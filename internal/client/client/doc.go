// Package client contains the client-side building blocks for talking to
// the EventSync REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the signup, login and password reset flows plus the meetings listing.
//  2. A concrete REST/JSON implementation (see HTTPClient) that keeps a set
//     of default headers, attaches the bearer token, maps HTTP failures to
//     *APIError values and reports every response to registered hooks.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNoToken, ErrNoUser. Server
// rejections are returned as *APIError carrying the server's message.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
