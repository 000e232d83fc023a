package collection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
)

// Item is implemented by every module model.
type Item interface {
	ItemID() string
}

// Normalizer may be implemented (on the pointer) by items needing cleanup after decoding.
type Normalizer interface {
	Normalize()
}

const (
	keyCreatedAt = "createdAt"
	keyUpdatedAt = "updatedAt"
)

type cacheEntry[T Item] struct {
	items []T
	stale bool
}

// Synchronizer keeps one module's per-owner list in step with the remote Store.
//
// Every mutation is: remote write, then local patch of the cached list, then a reconciling
// refetch. A failed remote write leaves the cached list untouched. A failed refetch returns
// the locally patched list and marks it stale so the next FetchAll goes back to the store.
// A context cancelled once the remote write is done drops the result and marks the list stale.
// Mutations on the same owner are serialized.
type Synchronizer[T Item] struct {
	store  Store
	name   string
	logger core.Logger
	now    func() time.Time

	mu    sync.RWMutex
	cache map[string]*cacheEntry[T]

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

type Option func(*options)

type options struct {
	logger core.Logger
	now    func() time.Time
}

func WithLogger(l core.Logger) Option { return func(o *options) { o.logger = l } }

func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

// New returns a Synchronizer for the named sub-collection.
func New[T Item](store Store, name string, opts ...Option) *Synchronizer[T] {
	o := options{logger: core.NopLogger(), now: core.NowFunc}
	for _, opt := range opts {
		opt(&o)
	}
	return &Synchronizer[T]{
		store:  store,
		name:   name,
		logger: o.logger,
		now:    o.now,
		cache:  make(map[string]*cacheEntry[T]),
		locks:  make(map[string]*sync.Mutex),
	}
}

// Now returns the Synchronizer's clock reading, used for client side timestamps.
func (s *Synchronizer[T]) Now() time.Time { return s.now() }

func (s *Synchronizer[T]) lock(owner string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[owner]
	if !ok {
		l = new(sync.Mutex)
		s.locks[owner] = l
	}
	s.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// Cached returns a copy of the cached list of owner, if any (fresh or stale).
func (s *Synchronizer[T]) Cached(owner string) ([]T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.cache[owner]
	if !ok {
		return nil, false
	}
	return clone(e.items), true
}

// Invalidate forces the next FetchAll of owner to hit the store.
func (s *Synchronizer[T]) Invalidate(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.cache[owner]; ok {
		e.stale = true
	}
}

func (s *Synchronizer[T]) set(owner string, items []T, stale bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[owner] = &cacheEntry[T]{items: clone(items), stale: stale}
}

// FetchAll returns every item of owner's sub-collection in store order.
// A fresh cached list is returned without a remote call.
func (s *Synchronizer[T]) FetchAll(ctx context.Context, owner string) ([]T, error) {
	s.mu.RLock()
	e, ok := s.cache[owner]
	if ok && !e.stale {
		items := clone(e.items)
		s.mu.RUnlock()
		return items, nil
	}
	s.mu.RUnlock()

	return s.Refresh(ctx, owner)
}

// Refresh reloads owner's list from the store, bypassing the cache.
func (s *Synchronizer[T]) Refresh(ctx context.Context, owner string) ([]T, error) {
	items, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	s.set(owner, items, false)
	return clone(items), nil
}

func (s *Synchronizer[T]) load(ctx context.Context, owner string) ([]T, error) {
	docs, err := s.store.List(ctx, owner, s.name)
	if err != nil {
		return nil, core.StoreError(err, fmt.Sprintf("listing %s", s.name))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := s.decode(doc)
		if err != nil {
			s.logger.Warn(fmt.Sprintf("skipping undecodable %s document %q", s.name, doc.ID), err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Synchronizer[T]) decode(doc Document) (T, error) {
	item, err := Decode[T](doc)
	if err != nil {
		return item, err
	}
	if n, ok := any(&item).(Normalizer); ok {
		n.Normalize()
	}
	return item, nil
}

// Add creates payload under owner. createdAt and updatedAt are set from the clock.
func (s *Synchronizer[T]) Add(ctx context.Context, owner string, payload T) ([]T, error) {
	unlock := s.lock(owner)
	defer unlock()

	fields, err := ToFields(payload)
	if err != nil {
		return nil, err
	}
	now := s.Timestamp()
	fields[keyCreatedAt] = now
	fields[keyUpdatedAt] = now

	doc, err := s.store.Create(ctx, owner, s.name, fields)
	if err != nil {
		return nil, core.StoreError(err, fmt.Sprintf("adding to %s", s.name))
	}
	if err := ctx.Err(); err != nil {
		// written but not applied: the next FetchAll reloads
		s.Invalidate(owner)
		return nil, err
	}
	created, err := s.decode(doc)
	if err != nil {
		s.Invalidate(owner)
		return nil, err
	}

	patched, _ := s.Cached(owner)
	patched = append(patched, created)
	return s.reconcile(ctx, owner, patched), nil
}

// Update merges patch into the item id of owner. updatedAt is set from the clock.
func (s *Synchronizer[T]) Update(ctx context.Context, owner, id string, patch Fields) ([]T, error) {
	unlock := s.lock(owner)
	defer unlock()

	fields := patch.WithoutReserved()
	fields[keyUpdatedAt] = s.Timestamp()

	doc, err := s.store.Patch(ctx, owner, s.name, id, fields)
	if err != nil {
		if errors.Is(err, core.ErrItemNotFound) {
			return nil, errors.Wrapf(err, "updating %s %q", s.name, id)
		}
		return nil, core.StoreError(err, fmt.Sprintf("updating %s %q", s.name, id))
	}
	if err := ctx.Err(); err != nil {
		s.Invalidate(owner)
		return nil, err
	}
	updated, err := s.decode(doc)
	if err != nil {
		s.Invalidate(owner)
		return nil, err
	}

	patched, _ := s.Cached(owner)
	found := false
	for i := range patched {
		if patched[i].ItemID() == id {
			patched[i] = updated
			found = true
			break
		}
	}
	if !found {
		patched = append(patched, updated)
	}
	return s.reconcile(ctx, owner, patched), nil
}

// Delete removes the item id of owner. A missing id is not an error.
func (s *Synchronizer[T]) Delete(ctx context.Context, owner, id string) ([]T, error) {
	unlock := s.lock(owner)
	defer unlock()

	if err := s.store.Remove(ctx, owner, s.name, id); err != nil {
		return nil, core.StoreError(err, fmt.Sprintf("deleting %s %q", s.name, id))
	}
	if err := ctx.Err(); err != nil {
		s.Invalidate(owner)
		return nil, err
	}

	cached, _ := s.Cached(owner)
	patched := make([]T, 0, len(cached))
	for _, item := range cached {
		if item.ItemID() != id {
			patched = append(patched, item)
		}
	}
	return s.reconcile(ctx, owner, patched), nil
}

// reconcile refetches owner's list after a successful write.
func (s *Synchronizer[T]) reconcile(ctx context.Context, owner string, patched []T) []T {
	items, err := s.load(ctx, owner)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("refetching %s after write failed, serving local copy", s.name), err)
		s.set(owner, patched, true)
		return patched
	}
	s.set(owner, items, false)
	return items
}

// Timestamp returns the current clock reading in the wire format.
func (s *Synchronizer[T]) Timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func clone[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// Find returns the item id of items.
func Find[T Item](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.ItemID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
