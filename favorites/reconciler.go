// Package favorites implements the favorite toggle: an optimistic local
// flip, a single atomic server mutation, and rollback on failure. The server
// side keeps a user's favorites set and the listing's denormalized
// favoritesCount transactionally consistent.
package favorites

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

var (
	ErrUnauthenticated = errors.New("favorites: not authenticated")
	ErrToggleInFlight  = errors.New("favorites: toggle already in flight for this listing")
	ErrNotFound        = errors.New("favorites: user or listing not found")
)

// Store applies the toggle authoritatively. It must decide add-vs-remove from
// the membership it reads at mutation time, not from the caller's view, and
// return the confirmed favorited flag.
type Store interface {
	Toggle(ctx context.Context, userID, listingID string) (favorited bool, err error)
}

const knownStateTTL = 30 * time.Minute

// Reconciler tracks per-pair toggle state. Last-confirmed flags live in a
// TTL cache seeded from the server at session load; the in-flight gate is a
// plain map under the mutex so cache expiry can never drop a pending entry.
type Reconciler struct {
	store Store

	mu      sync.Mutex
	pending map[string]State
	known   *ttlcache.Cache[string, bool]
}

func NewReconciler(store Store) *Reconciler {
	known := ttlcache.New(
		ttlcache.WithTTL[string, bool](knownStateTTL),
	)
	go known.Start()
	return &Reconciler{
		store:   store,
		pending: make(map[string]State),
		known:   known,
	}
}

// Stop releases the expiration worker of the state cache.
func (r *Reconciler) Stop() {
	r.known.Stop()
}

func pairKey(userID, listingID string) string {
	return userID + ":" + listingID
}

// Seed installs the server-supplied favorites set for a user, establishing
// the initial state of each pair.
func (r *Reconciler) Seed(userID string, listingIDs []string) {
	for _, id := range listingIDs {
		r.known.Set(pairKey(userID, id), true, ttlcache.DefaultTTL)
	}
}

// State returns the current client-observable state of a pair.
func (r *Reconciler) State(userID, listingID string) State {
	key := pairKey(userID, listingID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.pending[key]; ok {
		return s
	}
	if item := r.known.Get(key); item != nil && item.Value() {
		return StateFavorited
	}
	return StateNotFavorited
}

// Toggle flips the favorited flag for a pair. The flip is visible through
// State before the store round-trip completes; on store failure the previous
// terminal state is restored and the error returned. The returned flag is the
// server-confirmed state, which wins over the optimistic guess.
//
// A second toggle for the same pair while one is in flight is rejected with
// ErrToggleInFlight, so a double-click can never apply the mutation twice.
func (r *Reconciler) Toggle(ctx context.Context, userID, listingID string) (bool, error) {
	if userID == "" {
		return false, ErrUnauthenticated
	}
	key := pairKey(userID, listingID)

	r.mu.Lock()
	if s, inFlight := r.pending[key]; inFlight {
		r.mu.Unlock()
		return s.Favorited(), ErrToggleInFlight
	}
	was := false
	if item := r.known.Get(key); item != nil {
		was = item.Value()
	}
	next := StatePendingAdd
	if was {
		next = StatePendingRemove
	}
	r.pending[key] = next
	r.mu.Unlock()

	// The mutation is a single atomic server operation; tearing down the
	// caller's context must not cancel it mid-flight.
	favorited, err := r.store.Toggle(context.WithoutCancel(ctx), userID, listingID)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, key)
	if err != nil {
		r.known.Set(key, was, ttlcache.DefaultTTL)
		return was, err
	}
	r.known.Set(key, favorited, ttlcache.DefaultTTL)
	return favorited, nil
}
