package player

// State is where an explorer stands in its search.
type State int

const (
	Looking   State = iota // Walking the frontier depth first.
	Backtrack              // Retreating along the walked path toward the next target.
	Stuck                  // Frontier exhausted without finding the exit.
	Freedom                // Exit reached.
)

// String returns the upper-case state name.
func (s State) String() string {
	switch s {
	case Looking:
		return "LOOKING"
	case Backtrack:
		return "BACKTRACK"
	case Stuck:
		return "STUCK"
	case Freedom:
		return "FREEDOM"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further update can change the state.
func (s State) Terminal() bool {
	return s == Stuck || s == Freedom
}

// Interact is how the explorer is currently engaged with other actors.
// It is independent of State.
type Interact int

const (
	Alone Interact = iota
	Greet
	Attack
)

// String returns the upper-case interaction name.
func (i Interact) String() string {
	switch i {
	case Alone:
		return "ALONE"
	case Greet:
		return "GREET"
	case Attack:
		return "ATTACK"
	default:
		return "UNKNOWN"
	}
}
