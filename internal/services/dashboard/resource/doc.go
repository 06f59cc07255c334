// Package resource caches the three server-owned collections the dashboard
// renders: groups, tasks and invitations.
//
// Each collection is fully replaced by a refresh. Writes for one collection
// are linearised by issue order, so a slow refresh that finishes after a
// newer one is discarded.
package resource
