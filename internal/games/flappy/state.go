package flappy

// State is a phase of the game's state machine.
type State int

const (
	StateUndefined State = iota
	StatePreAction       // waiting for the first tap of a round
	StateAction          // bird flying, pipes scrolling
	StateDying           // bird hit something and is falling off the field
	StateResult          // round over, result popup shown
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUndefined:
		return "undefined"
	case StatePreAction:
		return "pre_action"
	case StateAction:
		return "action"
	case StateDying:
		return "die"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}

// Event is a stimulus that may move the state machine.
type Event int

const (
	EventInit      Event = iota // game created
	EventActivate               // player tap / key press
	EventFellOut                // bird dropped below the floor
	EventCollision              // bird overlapped the live pipe pair
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventInit:
		return "init"
	case EventActivate:
		return "activate"
	case EventFellOut:
		return "fell_out"
	case EventCollision:
		return "collision"
	default:
		return "unknown"
	}
}

// transitions is the complete transition table. A (state, event) pair that
// is missing is ignored.
var transitions = map[State]map[Event]State{
	StateUndefined: {EventInit: StatePreAction},
	StatePreAction: {EventActivate: StateAction},
	StateAction: {
		EventFellOut:   StateDying,
		EventCollision: StateDying,
	},
	StateDying:  {EventFellOut: StateResult},
	StateResult: {EventActivate: StatePreAction},
}

// nextState looks up the target of event e in state s.
func nextState(s State, e Event) (State, bool) {
	to, ok := transitions[s][e]
	return to, ok
}
