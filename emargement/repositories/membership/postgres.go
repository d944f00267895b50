package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Sorolassina/mca-api/emargement/types"

	_ "github.com/lib/pq"
)

const (
	selectEventQuery = "SELECT id, titre, description, date_debut, date_fin, lieu, type_evenement, statut, id_prog FROM evenements WHERE id = $1"

	selectProgrammeQuery = "SELECT id, nom, date_debut, date_fin, lieu, statut FROM programmes WHERE id = $1"

	selectEnrollmentColumns = "SELECT id, programme_id, email, prenom, nom, telephone FROM inscriptions"

	selectEnrollmentQuery         = selectEnrollmentColumns + " WHERE programme_id = $1 AND lower(email) = $2 LIMIT 1"
	selectAnyEnrollmentQuery      = selectEnrollmentColumns + " WHERE lower(email) = $1 ORDER BY id LIMIT 1"
	selectProgrammeEnrollmentsSQL = selectEnrollmentColumns + " WHERE programme_id = $1 ORDER BY nom, prenom"
)

// PostgresMembershipRepo reads membership data from the registration database
// (tables evenements, programmes, inscriptions). It never writes.
type PostgresMembershipRepo struct {
	db *sql.DB
}

func NewPostgresMembershipRepo(db *sql.DB) *PostgresMembershipRepo {
	return &PostgresMembershipRepo{db: db}
}

// OpenPostgresMembershipRepo opens a lib/pq connection pool for the given DSN
func OpenPostgresMembershipRepo(dsn string) (*PostgresMembershipRepo, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open membership database: %w", err)
	}
	return NewPostgresMembershipRepo(db), nil
}

func (r *PostgresMembershipRepo) Close() error {
	return r.db.Close()
}

func (r *PostgresMembershipRepo) GetEvent(ctx context.Context, id uint64) (*types.Event, error) {
	var (
		event                         types.Event
		description, location, evType sql.NullString
		status                        string
		programmeID                   sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, selectEventQuery, id).Scan(
		&event.ID, &event.Title, &description, &event.Start, &event.End,
		&location, &evType, &status, &programmeID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NewErrf(types.KindNotFound, "event %d not found", id)
	}
	if err != nil {
		return nil, types.WrapErr(types.KindTransient, err, "failed to get event")
	}

	event.Description = description.String
	event.Location = location.String
	event.Type = evType.String
	event.Status = parseEventStatus(status)
	if programmeID.Valid {
		pid := uint64(programmeID.Int64)
		event.ProgrammeID = &pid
	}
	return &event, nil
}

func (r *PostgresMembershipRepo) GetProgramme(ctx context.Context, id uint64) (*types.Programme, error) {
	var programme types.Programme
	err := r.db.QueryRowContext(ctx, selectProgrammeQuery, id).Scan(
		&programme.ID, &programme.Name, &programme.Start, &programme.End, &programme.Location, &programme.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NewErrf(types.KindNotFound, "programme %d not found", id)
	}
	if err != nil {
		return nil, types.WrapErr(types.KindTransient, err, "failed to get programme")
	}
	return &programme, nil
}

func (r *PostgresMembershipRepo) GetEnrollment(ctx context.Context, programmeID uint64, email string) (*types.Enrollment, error) {
	email = types.NormalizeEmail(email)

	var row *sql.Row
	if programmeID == types.AnyProgramme {
		row = r.db.QueryRowContext(ctx, selectAnyEnrollmentQuery, email)
	} else {
		row = r.db.QueryRowContext(ctx, selectEnrollmentQuery, programmeID, email)
	}

	enrollment, err := scanEnrollment(row)
	if errors.Is(err, sql.ErrNoRows) {
		if programmeID == types.AnyProgramme {
			return nil, types.NewErrf(types.KindNotFound, "%s is not enrolled in any programme", email)
		}
		return nil, types.NewErrf(types.KindNotFound, "%s is not enrolled in programme %d", email, programmeID)
	}
	if err != nil {
		return nil, types.WrapErr(types.KindTransient, err, "failed to get enrollment")
	}
	return enrollment, nil
}

func (r *PostgresMembershipRepo) ListEnrollments(ctx context.Context, programmeID uint64) ([]*types.Enrollment, error) {
	rows, err := r.db.QueryContext(ctx, selectProgrammeEnrollmentsSQL, programmeID)
	if err != nil {
		return nil, types.WrapErr(types.KindTransient, err, "failed to list enrollments")
	}
	defer rows.Close()

	enrollments := make([]*types.Enrollment, 0)
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}
	if err = rows.Err(); err != nil {
		return nil, types.WrapErr(types.KindTransient, err, "failed to iterate enrollments")
	}
	return enrollments, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEnrollment(s scanner) (*types.Enrollment, error) {
	var (
		enrollment types.Enrollment
		phone      sql.NullString
	)
	if err := s.Scan(
		&enrollment.ID, &enrollment.ProgrammeID, &enrollment.Email,
		&enrollment.FirstName, &enrollment.LastName, &phone,
	); err != nil {
		return nil, err
	}
	enrollment.Email = types.NormalizeEmail(enrollment.Email)
	enrollment.Phone = phone.String
	return &enrollment, nil
}

func parseEventStatus(s string) types.EventStatus {
	switch strings.ToLower(s) {
	case "planifie", "planifié", string(types.EventPlanned):
		return types.EventPlanned
	case "en_cours", string(types.EventInProgress):
		return types.EventInProgress
	case "termine", "terminé", string(types.EventFinished):
		return types.EventFinished
	case "annule", "annulé", string(types.EventCancelled):
		return types.EventCancelled
	default:
		return types.EventStatus(strings.ToLower(s))
	}
}
