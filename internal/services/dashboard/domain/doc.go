// Package domain holds the client-side data model shared by the dashboard
// components: the session, the three cached resource types and their JSON
// shapes.
//
// The remote API is loose about optional fields and scalar types (ids arrive
// as numbers or strings, members as objects or bare identifiers), so the
// decoders here accept every shape the server is known to emit and fill
// declared fallbacks instead of assuming presence.
package domain
