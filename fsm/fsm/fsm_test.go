package fsm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testName = "fsm_test"

	stateOpen      = State("state_open")
	stateReview    = State("state_review")
	stateApproved  = State("state_approved")
	stateCancelled = State("state_cancelled")

	eventSubmit  = Event("event_submit")
	eventApprove = Event("event_approve")
	eventCancel  = Event("event_cancel")

	eventAutoCancelInternal = Event("event_auto_cancel_internal")
)

func newTestingFSM(callbacks Callbacks) *FSM {
	return MustNewFSM(
		testName,
		stateOpen,
		[]EventDesc{
			{Name: eventSubmit, SrcState: []State{stateOpen}, DstState: stateReview},
			{Name: eventApprove, SrcState: []State{stateReview}, DstState: stateApproved},
			{Name: eventCancel, SrcState: []State{stateOpen, stateReview}, DstState: stateCancelled},
			{Name: eventAutoCancelInternal, SrcState: []State{stateReview}, DstState: stateCancelled, IsInternal: true},
		},
		callbacks,
	)
}

func compareRecoverStr(t *testing.T, r interface{}, assertion string) {
	if r == nil {
		t.Errorf("expected panic %q", assertion)
		return
	}
	msg, ok := r.(string)
	if !ok {
		t.Error("not asserted recover:", r)
	}
	if !strings.Contains(msg, assertion) {
		t.Error("not asserted recover:", msg)
	}
}

func TestMustNewFSM_Empty_Name_Panic(t *testing.T) {
	defer func() {
		compareRecoverStr(t, recover(), "machine name cannot be empty")
	}()
	MustNewFSM("", "init_state", []EventDesc{}, nil)
}

func TestMustNewFSM_Empty_Events_Panic(t *testing.T) {
	defer func() {
		compareRecoverStr(t, recover(), "cannot init fsm with empty events")
	}()
	MustNewFSM("fsm", "init_state", []EventDesc{}, nil)
}

func TestMustNewFSM_Event_Empty_Source_Panic(t *testing.T) {
	defer func() {
		compareRecoverStr(t, recover(), "event must have minimum one source available state")
	}()
	MustNewFSM("fsm", "init_state", []EventDesc{
		{Name: "event", SrcState: []State{}, DstState: "done"},
	}, nil)
}

func TestMustNewFSM_Final_Not_Found_Panic(t *testing.T) {
	defer func() {
		compareRecoverStr(t, recover(), "cannot initialize machine without final states")
	}()
	MustNewFSM("fsm", "init_state", []EventDesc{
		{Name: "event1", SrcState: []State{"init_state"}, DstState: "state2"},
		{Name: "event2", SrcState: []State{"state2"}, DstState: "init_state"},
	}, nil)
}

func TestMustNewFSM_Unknown_Callback_Panic(t *testing.T) {
	defer func() {
		compareRecoverStr(t, recover(), "callback for unknown event")
	}()
	newTestingFSM(Callbacks{"event_missing": nil})
}

func TestFSM_Do(t *testing.T) {
	req := require.New(t)

	machine := newTestingFSM(Callbacks{
		eventSubmit: func(event Event, args ...interface{}) (Event, interface{}, error) {
			return event, args[0], nil
		},
	})

	resp, err := machine.Do(eventSubmit, "payload")
	req.NoError(err)
	req.Equal(stateReview, resp.State)
	req.Equal("payload", resp.Data)

	_, err = machine.Do(eventSubmit)
	req.True(errors.Is(err, ErrTransitionNotAllowed))

	_, err = machine.Do(eventAutoCancelInternal)
	req.Error(err)
	req.Equal(stateReview, machine.State())

	resp, err = machine.DoInternal(eventAutoCancelInternal)
	req.NoError(err)
	req.Equal(stateCancelled, resp.State)
	req.True(machine.IsFinState(resp.State))
}

func TestFSM_CallbackErrorKeepsState(t *testing.T) {
	req := require.New(t)
	errRejected := errors.New("rejected")

	machine := newTestingFSM(Callbacks{
		eventSubmit: func(event Event, args ...interface{}) (Event, interface{}, error) {
			return "", nil, errRejected
		},
	})

	_, err := machine.Do(eventSubmit)
	req.ErrorIs(err, errRejected)
	req.Equal(stateOpen, machine.State())
}

func TestFSM_CallbackRedirect(t *testing.T) {
	req := require.New(t)

	machine := newTestingFSM(Callbacks{
		eventApprove: func(event Event, args ...interface{}) (Event, interface{}, error) {
			return eventCancel, nil, nil
		},
	}).MustCopyWithState(stateReview)

	resp, err := machine.Do(eventApprove)
	req.NoError(err)
	req.Equal(stateCancelled, resp.State)
}

func TestFSM_Introspection(t *testing.T) {
	req := require.New(t)
	machine := newTestingFSM(nil)

	req.Equal(testName, machine.Name())
	req.Equal(stateOpen, machine.InitialState())
	req.Equal([]Event{eventApprove, eventCancel, eventSubmit}, machine.EventsList())
	req.True(machine.IsFinState(stateApproved))
	req.False(machine.IsFinState(stateReview))

	graph := Visualize(machine)
	req.True(strings.HasPrefix(graph, "digraph fsm {\n"))
	req.Contains(graph, `"state_open" -> "state_review" [ label = "event_submit" ];`)

	defer func() {
		compareRecoverStr(t, recover(), "unknown state")
	}()
	machine.MustCopyWithState("state_unknown")
}
