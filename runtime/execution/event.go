package execution

// Event represents a named signal dispatched to event handlers
type Event interface {
	Name() string
}

// EventHandler reacts to matching events
type EventHandler interface {
	// Matches reports whether the handler is interested in the event
	Matches(event Event) bool
	// Handle handles the event; returned entities are visited right away
	Handle(event Event, ctx *Context) ([]Entity, error)
	// HandleOnce reports whether the handler is unregistered after the first handled event
	HandleOnce() bool
	Describe() string
}

// ExecutionCompleteName event name
const ExecutionCompleteName = "launch.events.ExecutionComplete"

// ExecutionComplete is emitted once a visited action completes
type ExecutionComplete struct {
	action Action
}

// Name returns event name
func (e *ExecutionComplete) Name() string {
	return ExecutionCompleteName
}

// Action returns completed action
func (e *ExecutionComplete) Action() Action {
	return e.action
}

// NewExecutionComplete creates execution complete event
func NewExecutionComplete(action Action) *ExecutionComplete {
	return &ExecutionComplete{action: action}
}
