package resource

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"golang.org/x/sync/errgroup"
)

// Reader lists the server-side collections.
type Reader interface {
	ListGroups(ctx context.Context) ([]domain.Group, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListInvitations(ctx context.Context) ([]domain.Invitation, error)
}

// Cache is a point-in-time copy of one collection.
type Cache[T any] struct {
	Items     []T
	Loading   bool
	LastError error
}

// slot holds one collection plus the generation of its latest refresh.
type slot[T any] struct {
	cache  Cache[T]
	issued uint64
}

func (s *slot[T]) snapshot() Cache[T] {
	items := make([]T, len(s.cache.Items))
	copy(items, s.cache.Items)
	return Cache[T]{Items: items, Loading: s.cache.Loading, LastError: s.cache.LastError}
}

// Store owns the groups, tasks and invitations caches.
type Store struct {
	reader Reader

	mu          sync.Mutex
	disposed    bool
	groups      slot[domain.Group]
	tasks       slot[domain.Task]
	invitations slot[domain.Invitation]
	nextSub     int
	subscribers map[int]func(domain.Kind)
}

// NewStore builds an empty Store backed by reader.
func NewStore(reader Reader) *Store {
	return &Store{
		reader:      reader,
		groups:      slot[domain.Group]{cache: Cache[domain.Group]{Items: []domain.Group{}}},
		tasks:       slot[domain.Task]{cache: Cache[domain.Task]{Items: []domain.Task{}}},
		invitations: slot[domain.Invitation]{cache: Cache[domain.Invitation]{Items: []domain.Invitation{}}},
		subscribers: make(map[int]func(domain.Kind)),
	}
}

// Refresh reloads one collection. On failure the previous items are kept and
// the error is recorded on the cache as well as returned. A completion that
// was overtaken by a newer refresh of the same kind is dropped.
func (s *Store) Refresh(ctx context.Context, kind domain.Kind) error {
	if s == nil || s.reader == nil {
		return fmt.Errorf("resource store is not configured")
	}
	switch kind {
	case domain.KindGroups:
		return refresh(ctx, s, kind, &s.groups, s.reader.ListGroups)
	case domain.KindTasks:
		return refresh(ctx, s, kind, &s.tasks, s.reader.ListTasks)
	case domain.KindInvitations:
		return refresh(ctx, s, kind, &s.invitations, s.reader.ListInvitations)
	default:
		return fmt.Errorf("unknown resource type %q", kind)
	}
}

func refresh[T any](ctx context.Context, s *Store, kind domain.Kind, target *slot[T], fetch func(context.Context) ([]T, error)) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil
	}
	target.issued++
	generation := target.issued
	target.cache.Loading = true
	s.mu.Unlock()
	s.notify(kind)

	items, err := fetch(ctx)

	s.mu.Lock()
	if s.disposed || generation != target.issued {
		s.mu.Unlock()
		return err
	}
	target.cache.Loading = false
	if err != nil {
		target.cache.LastError = err
		log.Printf("resource: refresh %s: %v", kind, err)
	} else {
		if items == nil {
			items = []T{}
		}
		target.cache.Items = items
		target.cache.LastError = nil
	}
	s.mu.Unlock()
	s.notify(kind)
	return err
}

// RefreshAll reloads every collection concurrently and returns the first
// failure. Every refresh runs to completion regardless of the others.
func (s *Store) RefreshAll(ctx context.Context) error {
	var group errgroup.Group
	for _, kind := range domain.Kinds {
		group.Go(func() error {
			return s.Refresh(ctx, kind)
		})
	}
	return group.Wait()
}

// RemoveTask drops a task the server confirmed as deleted.
func (s *Store) RemoveTask(id int64) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	kept := make([]domain.Task, 0, len(s.tasks.cache.Items))
	for _, task := range s.tasks.cache.Items {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	s.tasks.cache.Items = kept
	s.mu.Unlock()
	s.notify(domain.KindTasks)
}

// Groups returns a copy of the groups cache.
func (s *Store) Groups() Cache[domain.Group] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groups.snapshot()
}

// Tasks returns a copy of the tasks cache.
func (s *Store) Tasks() Cache[domain.Task] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.snapshot()
}

// Invitations returns a copy of the invitations cache.
func (s *Store) Invitations() Cache[domain.Invitation] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invitations.snapshot()
}

// Loading reports whether a refresh of kind is outstanding.
func (s *Store) Loading(kind domain.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case domain.KindGroups:
		return s.groups.cache.Loading
	case domain.KindTasks:
		return s.tasks.cache.Loading
	case domain.KindInvitations:
		return s.invitations.cache.Loading
	}
	return false
}

// LastError returns the error of the latest failed refresh of kind, or nil
// after a success.
func (s *Store) LastError(kind domain.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case domain.KindGroups:
		return s.groups.cache.LastError
	case domain.KindTasks:
		return s.tasks.cache.LastError
	case domain.KindInvitations:
		return s.invitations.cache.LastError
	}
	return nil
}

// Subscribe registers fn to be called after any cache of the given kind
// changes. The returned func unregisters it.
func (s *Store) Subscribe(fn func(domain.Kind)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Dispose stops all further cache writes. Refreshes still in flight finish
// their requests but their results are dropped.
func (s *Store) Dispose() {
	s.mu.Lock()
	s.disposed = true
	clear(s.subscribers)
	s.mu.Unlock()
}

// Disposed reports whether Dispose was called.
func (s *Store) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

func (s *Store) notify(kind domain.Kind) {
	s.mu.Lock()
	subs := make([]func(domain.Kind), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(kind)
	}
}
