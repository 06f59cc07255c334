// Package mutation turns user intents into server calls: validate locally,
// call the API, then invalidate the collections the change made stale.
//
// Nothing here edits a cache optimistically. A failed call leaves every cache
// exactly as it was and triggers no refresh.
package mutation
