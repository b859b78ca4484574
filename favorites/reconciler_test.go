package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeStore mimics the server side: per-pair membership plus a per-listing
// counter, with optional error injection and an optional gate that holds the
// call open until released.
type fakeStore struct {
	mu       sync.Mutex
	members  map[string]bool
	counters map[string]int
	calls    int
	failNext error

	entered  chan struct{}
	released chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:  make(map[string]bool),
		counters: make(map[string]int),
	}
}

func (f *fakeStore) Toggle(ctx context.Context, userID, listingID string) (bool, error) {
	f.mu.Lock()
	entered, released := f.entered, f.released
	f.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
		<-released
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return false, err
	}

	key := userID + ":" + listingID
	if f.members[key] {
		delete(f.members, key)
		if f.counters[listingID] > 0 {
			f.counters[listingID]--
		}
		return false, nil
	}
	f.members[key] = true
	f.counters[listingID]++
	return true, nil
}

func (f *fakeStore) counter(listingID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[listingID]
}

func TestToggle_requiresAuthenticatedUser(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := NewReconciler(store)
	defer r.Stop()

	if _, err := r.Toggle(context.Background(), "", "listing1"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got error %v, want ErrUnauthenticated", err)
	}
	if store.calls != 0 {
		t.Errorf("store was called %d times, want 0", store.calls)
	}
}

func TestToggle_addConfirmedByServer(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := NewReconciler(store)
	defer r.Stop()

	favorited, err := r.Toggle(context.Background(), "user1", "listing1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !favorited {
		t.Error("got favorited=false, want true")
	}
	if s := r.State("user1", "listing1"); s != StateFavorited {
		t.Errorf("got state %v, want %v", s, StateFavorited)
	}
	if n := store.counter("listing1"); n != 1 {
		t.Errorf("counter = %d, want 1", n)
	}
}

func TestToggle_optimisticFlipIsVisibleBeforeConfirmation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.entered = make(chan struct{})
	store.released = make(chan struct{})
	r := NewReconciler(store)
	defer r.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := r.Toggle(context.Background(), "user1", "listing1"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	<-store.entered
	if s := r.State("user1", "listing1"); s != StatePendingAdd {
		t.Errorf("in-flight state = %v, want %v", s, StatePendingAdd)
	}
	if !r.State("user1", "listing1").Favorited() {
		t.Error("optimistic flip not visible before server confirmation")
	}
	close(store.released)
	<-done

	if s := r.State("user1", "listing1"); s != StateFavorited {
		t.Errorf("final state = %v, want %v", s, StateFavorited)
	}
}

func TestToggle_rollsBackOnStoreFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failNext = errors.New("network down")
	r := NewReconciler(store)
	defer r.Stop()

	favorited, err := r.Toggle(context.Background(), "user1", "listing1")
	if err == nil {
		t.Fatal("got nil error, want store failure")
	}
	if favorited {
		t.Error("got favorited=true after rollback, want false")
	}
	if s := r.State("user1", "listing1"); s != StateNotFavorited {
		t.Errorf("got state %v after rollback, want %v", s, StateNotFavorited)
	}
	if n := store.counter("listing1"); n != 0 {
		t.Errorf("counter = %d after failed toggle, want 0", n)
	}
}

func TestToggle_rollsBackToFavoritedOnRemoveFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := NewReconciler(store)
	defer r.Stop()

	if _, err := r.Toggle(context.Background(), "user1", "listing1"); err != nil {
		t.Fatalf("setup toggle failed: %v", err)
	}

	store.failNext = errors.New("network down")
	favorited, err := r.Toggle(context.Background(), "user1", "listing1")
	if err == nil {
		t.Fatal("got nil error, want store failure")
	}
	if !favorited {
		t.Error("got favorited=false after rollback, want true")
	}
	if s := r.State("user1", "listing1"); s != StateFavorited {
		t.Errorf("got state %v after rollback, want %v", s, StateFavorited)
	}
	if n := store.counter("listing1"); n != 1 {
		t.Errorf("counter = %d, want 1", n)
	}
}

func TestToggle_rejectsOverlappingToggleOnSamePair(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.entered = make(chan struct{})
	store.released = make(chan struct{})
	r := NewReconciler(store)
	defer r.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := r.Toggle(context.Background(), "user1", "listing1"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	<-store.entered
	if _, err := r.Toggle(context.Background(), "user1", "listing1"); !errors.Is(err, ErrToggleInFlight) {
		t.Errorf("got error %v, want ErrToggleInFlight", err)
	}
	close(store.released)
	<-done

	if store.calls != 1 {
		t.Errorf("store called %d times for a double-click, want 1", store.calls)
	}
	if n := store.counter("listing1"); n != 1 {
		t.Errorf("counter = %d after double-click, want 1", n)
	}
}

func TestToggle_independentPairsDoNotBlockEachOther(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.entered = make(chan struct{})
	store.released = make(chan struct{})
	r := NewReconciler(store)
	defer r.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := r.Toggle(context.Background(), "user1", "listing1"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	<-store.entered
	// A different listing is not gated by listing1's pending toggle; release
	// the gate for it before calling.
	store.mu.Lock()
	store.entered = nil
	store.mu.Unlock()
	if _, err := r.Toggle(context.Background(), "user1", "listing2"); err != nil {
		t.Errorf("toggle on independent pair failed: %v", err)
	}
	close(store.released)
	<-done
}

func TestToggle_serverAnswerWinsOverOptimisticGuess(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	// The server already has the pair favorited (another session added it),
	// but this reconciler was never seeded, so it guesses "add".
	store.members["user1:listing1"] = true
	store.counters["listing1"] = 1
	r := NewReconciler(store)
	defer r.Stop()

	favorited, err := r.Toggle(context.Background(), "user1", "listing1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if favorited {
		t.Error("got favorited=true, want server-confirmed false")
	}
	if s := r.State("user1", "listing1"); s != StateNotFavorited {
		t.Errorf("got state %v, want %v", s, StateNotFavorited)
	}
}

func TestToggle_counterNeverNegative(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := NewReconciler(store)
	defer r.Stop()

	for i := 0; i < 5; i++ {
		if _, err := r.Toggle(context.Background(), "user1", "listing1"); err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
		if n := store.counter("listing1"); n < 0 {
			t.Fatalf("counter went negative after toggle %d: %d", i, n)
		}
	}
	// Odd number of toggles ends favorited with the counter at one.
	if n := store.counter("listing1"); n != 1 {
		t.Errorf("counter = %d after 5 toggles, want 1", n)
	}
}

func TestSeed_establishesInitialState(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.members["user1:listing1"] = true
	store.counters["listing1"] = 1
	r := NewReconciler(store)
	defer r.Stop()

	r.Seed("user1", []string{"listing1"})

	if s := r.State("user1", "listing1"); s != StateFavorited {
		t.Fatalf("seeded state = %v, want %v", s, StateFavorited)
	}

	// A toggle from the seeded state is a remove.
	favorited, err := r.Toggle(context.Background(), "user1", "listing1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if favorited {
		t.Error("got favorited=true, want false after removing a seeded favorite")
	}
	if n := store.counter("listing1"); n != 0 {
		t.Errorf("counter = %d, want 0", n)
	}
}
