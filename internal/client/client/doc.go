// Package client talks to the featurevote REST backend.
//
// # Overview
//
// The package provides:
//  1. The Client interface: Login, Register, ListFeatures, GetFeature,
//     CreateFeature, Vote, RemoveVote and Ping.
//  2. HTTPClient, a net/http implementation that attaches the stored bearer
//     token to every request and forgets the session on any 401.
//  3. InitDatabase, which opens the local SQLite database holding the
//     session and applies the embedded migrations.
//
// # Error Handling
//
// Responses with status >= 400 become *APIError carrying the backend's
// "detail" message when there is one. errors.Is matches ErrUnauthorized
// (401) and ErrNotFound (404) against it. Transport failures wrap
// ErrUnavailable and undecodable bodies wrap ErrDecode. Nothing is retried.
//
// # Session
//
// A 401 from any endpoint clears the session store before the error is
// returned, then runs the handler set with WithUnauthorizedHandler.
package client
