// Package app composes the dashboard core behind the surface a presentation
// layer drives: snapshots and loading flags, derived queries, one method per
// mutation, and the mount lifecycle.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/louisbranch/culater/internal/services/dashboard/coordinator"
	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/louisbranch/culater/internal/services/dashboard/gateway"
	"github.com/louisbranch/culater/internal/services/dashboard/mutation"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
	"github.com/louisbranch/culater/internal/services/dashboard/resource"
	"github.com/louisbranch/culater/internal/services/dashboard/session"
)

// Config wires a Dashboard.
type Config struct {
	Gateway gateway.Config
	// Credentials persists the session credential. Nil keeps it in memory.
	Credentials session.CredentialStore
	// StepDelay is waited between bootstrap steps.
	StepDelay time.Duration
}

// Dashboard is one signed-in dashboard view and everything it owns.
type Dashboard struct {
	tokens    *session.TokenStore
	api       *gateway.Client
	stepDelay time.Duration

	mu          sync.Mutex
	store       *resource.Store
	coordinator *coordinator.Coordinator
	mutations   *mutation.Pipeline
	nextSub     int
	subscribers map[int]func(domain.Kind)
}

// New builds a Dashboard. It performs no I/O.
func New(cfg Config) (*Dashboard, error) {
	tokens := session.NewTokenStore(cfg.Credentials)
	api, err := gateway.New(cfg.Gateway, tokens)
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}
	d := &Dashboard{
		tokens:      tokens,
		api:         api,
		stepDelay:   cfg.StepDelay,
		subscribers: make(map[int]func(domain.Kind)),
	}
	d.remount()
	return d, nil
}

// remount replaces the caches with fresh ones. Callers hold no lock.
func (d *Dashboard) remount() {
	store := resource.NewStore(d.api)
	store.Subscribe(d.notify)
	coord := coordinator.New(store, d.tokens, coordinator.Options{StepDelay: d.stepDelay})

	d.mu.Lock()
	d.store = store
	d.coordinator = coord
	d.mutations = mutation.New(d.api, coord, store)
	d.mu.Unlock()
}

func (d *Dashboard) parts() (*resource.Store, *coordinator.Coordinator, *mutation.Pipeline) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store, d.coordinator, d.mutations
}

// Bootstrap mounts the dashboard: without a session it returns
// Unauthenticated and fetches nothing, otherwise it loads groups, tasks and
// invitations in that order. A previously unmounted dashboard starts from
// empty caches.
func (d *Dashboard) Bootstrap(ctx context.Context) (coordinator.Report, error) {
	if store, _, _ := d.parts(); store.Disposed() {
		d.remount()
	}
	_, coord, _ := d.parts()
	report, err := coord.Bootstrap(ctx)
	return report, d.settle(err)
}

// Reload re-reads every collection with the requests issued concurrently.
// Without a session it returns Unauthenticated and fetches nothing.
func (d *Dashboard) Reload(ctx context.Context) error {
	if _, err := d.tokens.RequireSession(ctx); err != nil {
		return d.settle(err)
	}
	if store, _, _ := d.parts(); store.Disposed() {
		d.remount()
	}
	store, _, _ := d.parts()
	return d.settle(store.RefreshAll(ctx))
}

// Unmount stops cache writes. Requests already in flight still complete but
// their results are dropped.
func (d *Dashboard) Unmount() {
	store, _, _ := d.parts()
	store.Dispose()
}

// Refresh re-reads the given collections in canonical order.
func (d *Dashboard) Refresh(ctx context.Context, kinds ...domain.Kind) error {
	_, coord, _ := d.parts()
	return d.settle(coord.Invalidate(ctx, kinds...))
}

// signOut drops the cached collections of the previous session. The old
// store is disposed so late results cannot land in it.
func (d *Dashboard) signOut() {
	store, _, _ := d.parts()
	store.Dispose()
	d.remount()
	for _, kind := range domain.Kinds {
		d.notify(kind)
	}
}

// settle signs out when err reports that the session is gone.
func (d *Dashboard) settle(err error) error {
	if apperrors.Is(err, apperrors.KindUnauthenticated) {
		d.signOut()
	}
	return err
}

// Authenticated reports whether a usable session is stored.
func (d *Dashboard) Authenticated(ctx context.Context) bool {
	_, ok := d.tokens.Load(ctx)
	return ok
}

// Session returns the stored session.
func (d *Dashboard) Session(ctx context.Context) (domain.Session, bool) {
	return d.tokens.Load(ctx)
}

// Subscribe registers fn for cache change notifications. Subscriptions
// survive remounts.
func (d *Dashboard) Subscribe(fn func(domain.Kind)) func() {
	if fn == nil {
		return func() {}
	}
	d.mu.Lock()
	id := d.nextSub
	d.nextSub++
	d.subscribers[id] = fn
	d.mu.Unlock()
	return func() {
		d.mu.Lock()
		delete(d.subscribers, id)
		d.mu.Unlock()
	}
}

func (d *Dashboard) notify(kind domain.Kind) {
	d.mu.Lock()
	subs := make([]func(domain.Kind), 0, len(d.subscribers))
	for _, fn := range d.subscribers {
		subs = append(subs, fn)
	}
	d.mu.Unlock()
	for _, fn := range subs {
		fn(kind)
	}
}
