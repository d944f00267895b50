package signing_record_fsm

import (
	"errors"
	"time"

	"github.com/Sorolassina/mca-api/emargement/types"
	"github.com/Sorolassina/mca-api/fsm/fsm"
)

type SubmissionRequest struct {
	Payload   string
	Photo     string
	IP        string
	UserAgent string
	SignedAt  time.Time
}

func (r *SubmissionRequest) Validate() error {
	if r.Payload == "" {
		return types.NewErr(types.KindValidation, "signature payload cannot be empty")
	}
	if r.SignedAt.IsZero() {
		return errors.New("{SignedAt} cannot be empty")
	}
	return nil
}

func castSubmission(args []interface{}) (*SubmissionRequest, error) {
	if len(args) != 1 {
		return nil, errors.New("{arg0} required {SubmissionRequest}")
	}
	request, ok := args[0].(SubmissionRequest)
	if !ok {
		return nil, errors.New("cannot cast {arg0} to type {SubmissionRequest}")
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}
	return &request, nil
}

func (m *SigningRecordFSM) actionSubmitRemoteSignature(inEvent fsm.Event, args ...interface{}) (outEvent fsm.Event, response interface{}, err error) {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()

	request, err := castSubmission(args)
	if err != nil {
		return
	}

	signed := *m.record
	signedAt := request.SignedAt.UTC()
	signed.SignaturePayload = request.Payload
	signed.SignedAt = &signedAt
	signed.ProfilePhoto = request.Photo
	signed.IP = request.IP
	signed.UserAgent = request.UserAgent
	signed.Validated = false

	m.record = &signed
	return inEvent, &signed, nil
}

func (m *SigningRecordFSM) actionSubmitInPersonSignature(inEvent fsm.Event, args ...interface{}) (outEvent fsm.Event, response interface{}, err error) {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()

	request, err := castSubmission(args)
	if err != nil {
		return
	}

	signed := *m.record
	signedAt := request.SignedAt.UTC()
	signed.SignaturePayload = request.Payload
	signed.SignedAt = &signedAt
	// photo, ip and user agent belong to remote signing only
	signed.ProfilePhoto = ""
	signed.IP = ""
	signed.UserAgent = ""
	signed.Validated = true

	m.record = &signed
	return inEvent, &signed, nil
}
