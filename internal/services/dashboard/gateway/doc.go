// Package gateway is the dashboard's single point of outbound API requests.
//
// Each remote operation has one typed method. The client attaches the
// current session credential as a bearer token, classifies every failure
// into one of the platform/errors kinds, and never caches responses.
package gateway
