package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Sorolassina/mca-api/emargement/modules/state"
	"github.com/Sorolassina/mca-api/emargement/types"
)

const (
	EventsKeyPrefix      = "events"
	ProgrammesKeyPrefix  = "programmes"
	EnrollmentsKeyPrefix = "enrollments"
)

// MembershipStore is the read-only source of truth for events, programmes and enrollments.
type MembershipStore interface {
	GetEvent(ctx context.Context, id uint64) (*types.Event, error)
	GetProgramme(ctx context.Context, id uint64) (*types.Programme, error)
	// GetEnrollment looks the email up in one programme, or in any programme
	// when programmeID is types.AnyProgramme.
	GetEnrollment(ctx context.Context, programmeID uint64, email string) (*types.Enrollment, error)
	ListEnrollments(ctx context.Context, programmeID uint64) ([]*types.Enrollment, error)
}

// MembershipWriter is used by the import command to seed the local store
type MembershipWriter interface {
	PutEvent(ctx context.Context, event *types.Event) error
	PutProgramme(ctx context.Context, programme *types.Programme) error
	PutEnrollment(ctx context.Context, enrollment *types.Enrollment) error
}

type BaseMembershipRepo struct {
	state state.State
}

func NewMembershipRepo(s state.State) *BaseMembershipRepo {
	return &BaseMembershipRepo{state: s}
}

func eventKey(id uint64) string {
	return state.MakeCompositeKeyString(EventsKeyPrefix, state.MakeIDKey(id))
}

func programmeKey(id uint64) string {
	return state.MakeCompositeKeyString(ProgrammesKeyPrefix, state.MakeIDKey(id))
}

func enrollmentPrefix(programmeID uint64) string {
	return state.MakeCompositeKeyString(EnrollmentsKeyPrefix, state.MakeIDKey(programmeID)) + "_"
}

func enrollmentKey(programmeID uint64, email string) string {
	return enrollmentPrefix(programmeID) + email
}

func (r *BaseMembershipRepo) GetEvent(ctx context.Context, id uint64) (*types.Event, error) {
	var event types.Event
	found, err := r.getJSON(ctx, eventKey(id), &event)
	if err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}
	if !found {
		return nil, types.NewErrf(types.KindNotFound, "event %d not found", id)
	}
	return &event, nil
}

func (r *BaseMembershipRepo) GetProgramme(ctx context.Context, id uint64) (*types.Programme, error) {
	var programme types.Programme
	found, err := r.getJSON(ctx, programmeKey(id), &programme)
	if err != nil {
		return nil, fmt.Errorf("failed to get programme %d: %w", id, err)
	}
	if !found {
		return nil, types.NewErrf(types.KindNotFound, "programme %d not found", id)
	}
	return &programme, nil
}

func (r *BaseMembershipRepo) GetEnrollment(ctx context.Context, programmeID uint64, email string) (*types.Enrollment, error) {
	email = types.NormalizeEmail(email)

	if programmeID != types.AnyProgramme {
		var enrollment types.Enrollment
		found, err := r.getJSON(ctx, enrollmentKey(programmeID, email), &enrollment)
		if err != nil {
			return nil, fmt.Errorf("failed to get enrollment: %w", err)
		}
		if !found {
			return nil, types.NewErrf(types.KindNotFound, "%s is not enrolled in programme %d", email, programmeID)
		}
		return &enrollment, nil
	}

	var found *types.Enrollment
	err := r.state.View(ctx, func(rd state.Reader) error {
		return rd.Iterate(EnrollmentsKeyPrefix+"_", func(_ string, value []byte) error {
			if found != nil {
				return nil
			}
			var enrollment types.Enrollment
			if err := json.Unmarshal(value, &enrollment); err != nil {
				return fmt.Errorf("failed to unmarshal enrollment: %w", err)
			}
			if enrollment.Email == email {
				found = &enrollment
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan enrollments: %w", err)
	}
	if found == nil {
		return nil, types.NewErrf(types.KindNotFound, "%s is not enrolled in any programme", email)
	}
	return found, nil
}

func (r *BaseMembershipRepo) ListEnrollments(ctx context.Context, programmeID uint64) ([]*types.Enrollment, error) {
	enrollments := make([]*types.Enrollment, 0)
	err := r.state.View(ctx, func(rd state.Reader) error {
		return rd.Iterate(enrollmentPrefix(programmeID), func(_ string, value []byte) error {
			var enrollment types.Enrollment
			if err := json.Unmarshal(value, &enrollment); err != nil {
				return fmt.Errorf("failed to unmarshal enrollment: %w", err)
			}
			enrollments = append(enrollments, &enrollment)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments of programme %d: %w", programmeID, err)
	}

	sort.SliceStable(enrollments, func(i, j int) bool {
		if enrollments[i].LastName != enrollments[j].LastName {
			return enrollments[i].LastName < enrollments[j].LastName
		}
		return enrollments[i].FirstName < enrollments[j].FirstName
	})
	return enrollments, nil
}

func (r *BaseMembershipRepo) PutEvent(ctx context.Context, event *types.Event) error {
	return r.putJSON(ctx, eventKey(event.ID), event)
}

func (r *BaseMembershipRepo) PutProgramme(ctx context.Context, programme *types.Programme) error {
	return r.putJSON(ctx, programmeKey(programme.ID), programme)
}

func (r *BaseMembershipRepo) PutEnrollment(ctx context.Context, enrollment *types.Enrollment) error {
	enrollment.Email = types.NormalizeEmail(enrollment.Email)
	return r.putJSON(ctx, enrollmentKey(enrollment.ProgrammeID, enrollment.Email), enrollment)
}

func (r *BaseMembershipRepo) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	var bz []byte
	err := r.state.View(ctx, func(rd state.Reader) (err error) {
		bz, err = rd.Get(key)
		return err
	})
	if err != nil || bz == nil {
		return false, err
	}
	if err = json.Unmarshal(bz, dst); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *BaseMembershipRepo) putJSON(ctx context.Context, key string, value interface{}) error {
	bz, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return r.state.Update(ctx, func(tx state.Tx) error {
		return tx.Set(key, bz)
	})
}
