package fsm

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//
//  machine := fsm.MustNewFSM(name, initialState, events, callbacks)
//  resp, err := machine.Do(event, args...)
//

// ErrTransitionNotAllowed is returned when no transition exists for the current state and event
var ErrTransitionNotAllowed = errors.New("transition not allowed")

type State string

func (s State) String() string {
	return string(s)
}

type Event string

func (e Event) String() string {
	return string(e)
}

func (e Event) IsEmpty() bool {
	return e == ""
}

// Response carries the state reached after Do and the callback result
type Response struct {
	State State
	Data  interface{}
}

type EventDesc struct {
	Name Event

	SrcState []State

	DstState State

	// Internal events cannot be emitted through Do
	IsInternal bool
}

// Callback runs before the state changes. A non-empty returned event
// redirects the transition to that event's destination.
type Callback func(event Event, args ...interface{}) (Event, interface{}, error)

type Callbacks map[Event]Callback

type trKey struct {
	source State
	event  Event
}

type transition struct {
	dstState   State
	isInternal bool
}

type FSM struct {
	name         string
	initialState State

	transitions map[trKey]transition
	callbacks   Callbacks
	finStates   map[State]bool

	stateMu      sync.RWMutex
	currentState State
}

func MustNewFSM(machineName string, initialState State, events []EventDesc, callbacks Callbacks) *FSM {
	machineName = strings.TrimSpace(machineName)
	initialState = State(strings.TrimSpace(initialState.String()))

	if machineName == "" {
		panic("machine name cannot be empty")
	}
	if initialState == "" {
		panic("initial state cannot be empty")
	}
	if len(events) == 0 {
		panic("cannot init fsm with empty events")
	}

	f := &FSM{
		name:         machineName,
		initialState: initialState,
		currentState: initialState,
		transitions:  make(map[trKey]transition),
		callbacks:    make(Callbacks),
		finStates:    make(map[State]bool),
	}

	var (
		allEvents  = make(map[Event]bool)
		allSources = make(map[State]bool)
		allStates  = map[State]bool{initialState: true}
	)

	for _, event := range events {
		name := Event(strings.TrimSpace(event.Name.String()))
		dst := State(strings.TrimSpace(event.DstState.String()))

		if name == "" {
			panic("cannot init empty event")
		}
		if dst == "" {
			panic(fmt.Sprintf("event %q has empty destination", name))
		}
		if allEvents[name] {
			panic(fmt.Sprintf("duplicate event %q", name))
		}
		allEvents[name] = true
		allStates[dst] = true

		sources := 0
		for _, src := range event.SrcState {
			src = State(strings.TrimSpace(src.String()))
			if src == "" {
				continue
			}
			f.transitions[trKey{src, name}] = transition{dstState: dst, isInternal: event.IsInternal}
			allSources[src] = true
			allStates[src] = true
			sources++
		}
		if sources == 0 {
			panic("event must have minimum one source available state")
		}
	}

	for event, callback := range callbacks {
		if !allEvents[event] {
			panic(fmt.Sprintf("callback for unknown event %q", event))
		}
		f.callbacks[event] = callback
	}

	// states that are never a source are final
	for state := range allStates {
		if !allSources[state] {
			f.finStates[state] = true
		}
	}
	if len(f.finStates) == 0 {
		panic("cannot initialize machine without final states")
	}

	return f
}

// MustCopyWithState returns a machine sharing the definition, positioned at state
func (f *FSM) MustCopyWithState(state State) *FSM {
	if !f.knows(state) {
		panic(fmt.Sprintf("unknown state %q for machine %q", state, f.name))
	}
	return &FSM{
		name:         f.name,
		initialState: f.initialState,
		transitions:  f.transitions,
		callbacks:    f.callbacks,
		finStates:    f.finStates,
		currentState: state,
	}
}

func (f *FSM) knows(state State) bool {
	if state == f.initialState || f.finStates[state] {
		return true
	}
	for key := range f.transitions {
		if key.source == state {
			return true
		}
	}
	return false
}

func (f *FSM) Do(event Event, args ...interface{}) (*Response, error) {
	tr, ok := f.transitions[trKey{f.State(), event}]
	if !ok {
		return nil, fmt.Errorf("%w: cannot execute event %q for state %q", ErrTransitionNotAllowed, event, f.State())
	}
	if tr.isInternal {
		return nil, fmt.Errorf("event %q is internal", event)
	}
	return f.do(event, args...)
}

func (f *FSM) DoInternal(event Event, args ...interface{}) (*Response, error) {
	if _, ok := f.transitions[trKey{f.State(), event}]; !ok {
		return nil, fmt.Errorf("%w: cannot execute event %q for state %q", ErrTransitionNotAllowed, event, f.State())
	}
	return f.do(event, args...)
}

func (f *FSM) do(event Event, args ...interface{}) (*Response, error) {
	resp := &Response{State: f.State()}

	outEvent := event
	if callback, ok := f.callbacks[event]; ok {
		var (
			next Event
			err  error
		)
		next, resp.Data, err = callback(event, args...)
		// state is kept on error
		if err != nil {
			return resp, err
		}
		if !next.IsEmpty() {
			outEvent = next
		}
	}

	if err := f.SetState(outEvent); err != nil {
		return resp, err
	}
	resp.State = f.State()
	return resp, nil
}

func (f *FSM) State() State {
	f.stateMu.RLock()
	defer f.stateMu.RUnlock()
	return f.currentState
}

// SetState applies the transition for event without running callbacks
func (f *FSM) SetState(event Event) error {
	f.stateMu.Lock()
	defer f.stateMu.Unlock()

	tr, ok := f.transitions[trKey{f.currentState, event}]
	if !ok {
		return fmt.Errorf("%w: cannot change state %q with event %q", ErrTransitionNotAllowed, f.currentState, event)
	}
	f.currentState = tr.dstState
	return nil
}

func (f *FSM) Name() string {
	return f.name
}

func (f *FSM) InitialState() State {
	return f.initialState
}

func (f *FSM) IsFinState(state State) bool {
	return f.finStates[state]
}

// EventsList returns the public events, sorted
func (f *FSM) EventsList() []Event {
	seen := make(map[Event]bool)
	events := make([]Event, 0)
	for key, tr := range f.transitions {
		if tr.isInternal || seen[key.event] {
			continue
		}
		seen[key.event] = true
		events = append(events, key.event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}
