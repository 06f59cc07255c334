// Package coordinator sequences cache refreshes: the ordered dashboard
// bootstrap and the invalidation that follows each successful mutation.
package coordinator
