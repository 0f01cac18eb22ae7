// Package common contains constants, sentinel errors and helpers shared by
// the featurevote client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"
	// BearerScheme prefixes the access token in AuthorizationHeaderName.
	BearerScheme = "Bearer"
	// RequestIDHeaderName correlates a request with client log records.
	RequestIDHeaderName = "X-Request-ID"
)
