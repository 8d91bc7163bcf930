// Package common contains shared constants and sentinel errors used across
// Lightway components.
package common

// IdentityTokenHeaderName is the gRPC metadata key used to carry the facade
// session token on outbound requests.
const IdentityTokenHeaderName = "identity_token"

const (
	AppName = "Lightway"
	Version = "0.1.0"
)
