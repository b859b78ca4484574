package favorites

// State is the client-observable favorite status of one (user, listing)
// pair. Pending states are transient: they resolve to a terminal state when
// the server confirms or the optimistic flip is rolled back.
type State int

const (
	StateNotFavorited State = iota
	StateFavorited
	StatePendingAdd
	StatePendingRemove
)

// Favorited reports the visible flag, optimistic flips included.
func (s State) Favorited() bool {
	return s == StateFavorited || s == StatePendingAdd
}

// Pending reports whether a toggle is in flight for the pair.
func (s State) Pending() bool {
	return s == StatePendingAdd || s == StatePendingRemove
}

func (s State) String() string {
	switch s {
	case StateNotFavorited:
		return "not_favorited"
	case StateFavorited:
		return "favorited"
	case StatePendingAdd:
		return "pending_add"
	case StatePendingRemove:
		return "pending_remove"
	}
	return "unknown"
}
