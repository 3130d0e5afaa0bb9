// Package client is the offline-first core: every entity store applies
// mutations to in-memory state synchronously, saves them to localstore, and
// mirrors them to the remote relational store in the background when a user
// is signed in. The UI never waits on the network.
package client

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/PrayerJournal/localstore"
)

// Table mirrors one entity collection into the remote store. All methods
// are scoped by the owning user id; implementations must never return or
// touch another owner's rows.
type Table[T any] interface {
	List(ctx context.Context, userID int) ([]T, error)
	Upsert(ctx context.Context, userID int, item T) error
	Delete(ctx context.Context, userID int, id string) error
}

// GuestUser is the owner id used when nobody is signed in. Guest mutations
// stay local and issue zero remote calls.
const GuestUser = 0

// Collection holds one entity list with optimistic remote sync.
//
// Every mutation runs in three steps: snapshot, apply+persist locally,
// then push to the remote asynchronously. If the push fails the snapshot
// is restored and the failure logged, one policy for every entity. Writes
// racing each other resolve last-write-wins by completion order; that
// matches the remote store's semantics and is accepted.
type Collection[T any] struct {
	mu      sync.Mutex
	name    string
	store   *localstore.Store
	table   Table[T]
	userID  int
	idOf    func(T) string
	items   []T
	pending sync.WaitGroup
}

// NewCollection loads the guest-scoped items from localstore immediately.
// table may be nil when the build has no remote configured.
func NewCollection[T any](name string, store *localstore.Store, table Table[T], idOf func(T) string) *Collection[T] {
	c := &Collection[T]{
		name:   name,
		store:  store,
		table:  table,
		userID: GuestUser,
		idOf:   idOf,
	}
	c.store.Load(c.storageKey(), &c.items)
	return c
}

// SetOwner switches the collection to a different owner. Cached rows from
// the previous owner are dropped before anything else happens, so one
// user's data can never leak into another's session. When the new owner is
// signed in, the authoritative rows are fetched owner-filtered; on fetch
// failure the locally persisted rows for that owner are used as a fallback.
func (c *Collection[T]) SetOwner(ctx context.Context, userID int) error {
	c.pending.Wait()

	c.mu.Lock()
	c.userID = userID
	c.items = nil
	c.store.Load(c.storageKey(), &c.items)
	c.mu.Unlock()

	if c.table == nil || userID == GuestUser {
		return nil
	}

	fetched, err := c.table.List(ctx, userID)
	if err != nil {
		log.Printf("%s: fetch for user %d failed, using local copy: %v", c.name, userID, err)
		return err
	}

	c.mu.Lock()
	c.items = fetched
	c.persistLocked()
	c.mu.Unlock()
	return nil
}

// Items returns a copy of the current list.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Get returns the item with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Len reports the current item count.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Add prepends the item and mirrors it to the remote.
func (c *Collection[T]) Add(item T) {
	c.mu.Lock()
	snapshot := append([]T(nil), c.items...)
	c.items = append([]T{item}, c.items...)
	c.persistLocked()
	userID := c.userID
	c.mu.Unlock()

	c.push(userID, snapshot, fmt.Sprintf("add %s", c.idOf(item)), func(ctx context.Context) error {
		return c.table.Upsert(ctx, userID, item)
	})
}

// Append adds the item at the end instead of the front.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	snapshot := append([]T(nil), c.items...)
	c.items = append(c.items, item)
	c.persistLocked()
	userID := c.userID
	c.mu.Unlock()

	c.push(userID, snapshot, fmt.Sprintf("append %s", c.idOf(item)), func(ctx context.Context) error {
		return c.table.Upsert(ctx, userID, item)
	})
}

// Update applies mutate to the item with the given id. Returns false when
// the id is unknown, in which case nothing happens at all.
func (c *Collection[T]) Update(id string, mutate func(T) T) bool {
	c.mu.Lock()
	idx := -1
	for i, item := range c.items {
		if c.idOf(item) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}

	snapshot := append([]T(nil), c.items...)
	updated := mutate(c.items[idx])
	c.items[idx] = updated
	c.persistLocked()
	userID := c.userID
	c.mu.Unlock()

	c.push(userID, snapshot, fmt.Sprintf("update %s", id), func(ctx context.Context) error {
		return c.table.Upsert(ctx, userID, updated)
	})
	return true
}

// Remove deletes the item with the given id.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	idx := -1
	for i, item := range c.items {
		if c.idOf(item) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}

	snapshot := append([]T(nil), c.items...)
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.persistLocked()
	userID := c.userID
	c.mu.Unlock()

	c.push(userID, snapshot, fmt.Sprintf("remove %s", id), func(ctx context.Context) error {
		return c.table.Delete(ctx, userID, id)
	})
	return true
}

// Flush blocks until all in-flight remote writes have settled. Used by the
// sign-out path and tests; normal mutations never wait.
func (c *Collection[T]) Flush() {
	c.pending.Wait()
}

// push mirrors one mutation to the remote store. Guest mode and
// remote-less builds skip it entirely. On failure the pre-mutation
// snapshot is restored and persisted. One revert policy for everything.
func (c *Collection[T]) push(userID int, snapshot []T, op string, write func(ctx context.Context) error) {
	if c.table == nil || userID == GuestUser {
		return
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()

		if err := write(context.Background()); err != nil {
			log.Printf("%s: remote %s failed, reverting: %v", c.name, op, err)
			c.mu.Lock()
			if c.userID == userID {
				c.items = snapshot
				c.persistLocked()
			}
			c.mu.Unlock()
		}
	}()
}

func (c *Collection[T]) persistLocked() {
	c.store.Save(c.storageKey(), c.items)
}

// storageKey namespaces the local blob per owner so cached rows from one
// account are invisible to the next.
func (c *Collection[T]) storageKey() string {
	if c.userID == GuestUser {
		return c.name
	}
	return fmt.Sprintf("%s-u%d", c.name, c.userID)
}
