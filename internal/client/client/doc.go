// Package client contains client-side building blocks for Lightway.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     Lightway backend: letters, facade identities and the gallery.
//  2. A concrete gRPC implementation (see GRPCClient) speaking the JSON
//     codec, which attaches the gallery session token through a unary
//     interceptor and maps gRPC status codes to client errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     CLI ledger, an SQLite database migrated with embedded goose scripts.
//
// # Error Handling
//
// Connectivity and authentication failures are reported as ErrUnavailable
// and ErrUnauthorized (match with errors.Is). Any other rejection is a
// *ServerError carrying the server's status code and message.
package client
