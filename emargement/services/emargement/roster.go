package emargement

import (
	"context"
	"fmt"

	"github.com/Sorolassina/mca-api/emargement/api/dto"
	"github.com/Sorolassina/mca-api/emargement/modules/metrics"
	"github.com/Sorolassina/mca-api/emargement/modules/state"
	"github.com/Sorolassina/mca-api/emargement/types"
)

// GetPresentialRosterView makes sure every enrolled participant has exactly one
// record for the event before rendering the in-person roster. Placeholders are
// created in one transaction so concurrent callers never duplicate a pair.
func (s *BaseEmargementService) GetPresentialRosterView(ctx context.Context, d *dto.EventIdDTO) (*types.RosterView, error) {
	event, err := s.membership.GetEvent(ctx, d.EventID)
	if err != nil {
		return nil, err
	}
	if !event.HasProgramme() {
		return nil, types.NewErrf(types.KindValidation, "event %d is not associated with any programme", event.ID)
	}
	if event.AcceptsAnyProgramme() {
		return nil, types.NewErrf(types.KindValidation, "event %d is open to any programme and has no roster", event.ID)
	}

	programme, err := s.membership.GetProgramme(ctx, *event.ProgrammeID)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.membership.ListEnrollments(ctx, programme.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	view := &types.RosterView{
		Event:        event,
		Programme:    programme,
		Participants: make([]*types.RosterParticipant, 0, len(enrollments)),
	}
	created := 0

	err = s.state.Update(ctx, func(tx state.Tx) error {
		existing, err := s.records.ListByEvent(tx, event.ID)
		if err != nil {
			return err
		}

		byEmail := make(map[string]*types.SigningRecord, len(existing))
		for _, record := range existing {
			if current, ok := byEmail[record.Email]; ok && current.IsSigned() {
				continue
			}
			byEmail[record.Email] = record
		}

		created = 0
		view.Participants = view.Participants[:0]
		for _, enrollment := range enrollments {
			email := types.NormalizeEmail(enrollment.Email)

			record, ok := byEmail[email]
			if !ok {
				record = &types.SigningRecord{
					EventID:   event.ID,
					Email:     email,
					Mode:      types.ModeInPerson,
					CreatedAt: s.now().UTC(),
				}
				if err = s.records.Insert(tx, record); err != nil {
					return fmt.Errorf("failed to insert placeholder for %s: %w", email, err)
				}
				byEmail[email] = record
				created++
			}

			view.Participants = append(view.Participants, &types.RosterParticipant{
				Email:     email,
				FirstName: enrollment.FirstName,
				LastName:  enrollment.LastName,
				RecordID:  record.ID,
				Mode:      record.Mode,
				Status:    record.Status(),
				SignedAt:  record.SignedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created > 0 {
		metrics.SigningRecordsCreatedTotal.WithLabelValues(types.ModeInPerson.String(), originRoster).Add(float64(created))
		s.logger.Log("roster of event %d: created %d placeholders", event.ID, created)
	}
	return view, nil
}

// ListEventRecords returns the event's records joined with enrollment names
func (s *BaseEmargementService) ListEventRecords(ctx context.Context, d *dto.EventIdDTO) (*types.EventRecords, error) {
	event, err := s.membership.GetEvent(ctx, d.EventID)
	if err != nil {
		return nil, err
	}

	var records []*types.SigningRecord
	err = s.state.View(ctx, func(r state.Reader) (err error) {
		records, err = s.records.ListByEvent(r, event.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records of event %d: %w", event.ID, err)
	}

	names, err := s.enrollmentsByEmail(ctx, event, records)
	if err != nil {
		return nil, err
	}

	result := &types.EventRecords{
		Event:   event,
		Records: make([]*types.NamedRecord, 0, len(records)),
	}
	for _, record := range records {
		named := &types.NamedRecord{SigningRecord: record}
		if enrollment, ok := names[record.Email]; ok {
			named.FirstName = enrollment.FirstName
			named.LastName = enrollment.LastName
			named.NameAvailable = true
		}
		result.Records = append(result.Records, named)
	}
	return result, nil
}

// enrollmentsByEmail resolves names with one listing for a concrete programme,
// or one lookup per email otherwise. Misses are left out of the map.
func (s *BaseEmargementService) enrollmentsByEmail(ctx context.Context, event *types.Event, records []*types.SigningRecord) (map[string]*types.Enrollment, error) {
	names := make(map[string]*types.Enrollment, len(records))

	if event.HasProgramme() && !event.AcceptsAnyProgramme() {
		enrollments, err := s.membership.ListEnrollments(ctx, *event.ProgrammeID)
		if err != nil {
			return nil, fmt.Errorf("failed to list enrollments: %w", err)
		}
		for _, enrollment := range enrollments {
			names[types.NormalizeEmail(enrollment.Email)] = enrollment
		}
		return names, nil
	}

	for _, record := range records {
		if _, ok := names[record.Email]; ok {
			continue
		}
		enrollment, err := s.membership.GetEnrollment(ctx, types.AnyProgramme, record.Email)
		if err != nil {
			if types.IsKind(err, types.KindNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to get enrollment of %s: %w", record.Email, err)
		}
		names[record.Email] = enrollment
	}
	return names, nil
}
