package status

// Event is one call observed by a Recorder
type Event struct {
	State   State
	Message string
}

// Recorder keeps every accepted transition in memory. It has the same
// single-terminal semantics as Terminal and needs no terminal.
type Recorder struct {
	guard
	Events []Event
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Start(message string) {
	if r.start() {
		r.Events = append(r.Events, Event{State: StateRunning, Message: message})
	}
}

func (r *Recorder) Succeed(message string) {
	if r.finish(StateSucceeded) {
		r.Events = append(r.Events, Event{State: StateSucceeded, Message: message})
	}
}

func (r *Recorder) Fail(label string) {
	if r.finish(StateFailed) {
		r.Events = append(r.Events, Event{State: StateFailed, Message: label})
	}
}

func (r *Recorder) State() State {
	return r.current()
}

// Terminal returns the terminal event, if one happened
func (r *Recorder) Terminal() (Event, bool) {
	for _, e := range r.Events {
		if e.State.Terminal() {
			return e, true
		}
	}
	return Event{}, false
}
