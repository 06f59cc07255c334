// Package session owns the dashboard's credential lifecycle.
//
// A TokenStore sits on top of a CredentialStore (memory or SQLite) and is the
// only code allowed to decide whether a Session exists. Loading fails closed:
// anything that is not a structurally valid bearer token is treated exactly
// like no token at all, and the stale value is removed on the way out.
package session
