package signing_record_fsm

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Sorolassina/mca-api/emargement/types"
	"github.com/Sorolassina/mca-api/fsm/fsm"
)

const (
	FsmName = "signing_record_fsm"

	StateOpen = fsm.State("state_record_open")

	// Final states
	StateSigned          = fsm.State("state_record_signed")
	StateSignedValidated = fsm.State("state_record_signed_validated")

	// Events

	EventSubmitRemoteSignature   = fsm.Event("event_record_submit_remote_signature")
	EventSubmitInPersonSignature = fsm.Event("event_record_submit_in_person_signature")
)

// SigningRecordFSM drives the single open -> signed transition of one record
type SigningRecordFSM struct {
	*fsm.FSM
	record   *types.SigningRecord
	recordMu sync.Mutex
}

func New(record *types.SigningRecord) *SigningRecordFSM {
	machine := &SigningRecordFSM{record: record}

	machine.FSM = fsm.MustNewFSM(
		FsmName,
		StateOpen,
		[]fsm.EventDesc{
			{Name: EventSubmitRemoteSignature, SrcState: []fsm.State{StateOpen}, DstState: StateSigned},
			{Name: EventSubmitInPersonSignature, SrcState: []fsm.State{StateOpen}, DstState: StateSignedValidated},
		},
		fsm.Callbacks{
			EventSubmitRemoteSignature:   machine.actionSubmitRemoteSignature,
			EventSubmitInPersonSignature: machine.actionSubmitInPersonSignature,
		},
	).MustCopyWithState(StateOf(record))

	return machine
}

// StateOf derives the machine state from the persisted record
func StateOf(record *types.SigningRecord) fsm.State {
	switch {
	case !record.IsSigned():
		return StateOpen
	case record.Validated:
		return StateSignedValidated
	default:
		return StateSigned
	}
}

func submitEventFor(mode types.Mode) (fsm.Event, error) {
	switch mode {
	case types.ModeRemote:
		return EventSubmitRemoteSignature, nil
	case types.ModeInPerson:
		return EventSubmitInPersonSignature, nil
	default:
		return "", fmt.Errorf("unsupported signing mode %q", mode)
	}
}

// Submit applies a signature to the record according to its mode and returns the signed record.
// A record that is already signed yields a Conflict error.
func (m *SigningRecordFSM) Submit(request SubmissionRequest) (*types.SigningRecord, error) {
	event, err := submitEventFor(m.record.Mode)
	if err != nil {
		return nil, err
	}

	resp, err := m.Do(event, request)
	if err != nil {
		if errors.Is(err, fsm.ErrTransitionNotAllowed) {
			return nil, types.NewErrf(types.KindConflict, "signing record %d already signed", m.record.ID)
		}
		return nil, err
	}

	record, ok := resp.Data.(*types.SigningRecord)
	if !ok {
		return nil, errors.New("cannot cast response to {*SigningRecord}")
	}
	return record, nil
}
