// Package hub is a small client for the home-automation hub's REST and
// WebSocket APIs.
//
// It contains:
//   - [Client] with bearer auth, [Request] execution, and JSON response validation
//   - [StatusError] for non-2xx hub responses
//   - [Client.Handshake] for verifying credentials over the WebSocket API
//
// The client issues exactly one HTTP request per [Client.Do] call. It does not
// retry, cache, or coordinate concurrent requests.
package hub
