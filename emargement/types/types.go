package types

import (
	"fmt"
	"strings"
	"time"
)

type Mode string

const (
	ModeRemote   Mode = "remote"
	ModeInPerson Mode = "in-person"
)

// ParseMode accepts the canonical values and the legacy "distant"/"presentiel" aliases
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeRemote), "distant":
		return ModeRemote, nil
	case string(ModeInPerson), "presentiel", "présentiel", "in_person":
		return ModeInPerson, nil
	default:
		return "", NewErrf(KindValidation, "unknown signing mode %q", s)
	}
}

func (m Mode) String() string {
	return string(m)
}

type SigningStatus string

const (
	StatusNotSigned               SigningStatus = "not-signed"
	StatusSignedPendingValidation SigningStatus = "signed-pending-validation"
	StatusSignedValidated         SigningStatus = "signed-validated"
)

type EventStatus string

const (
	EventPlanned    EventStatus = "planned"
	EventInProgress EventStatus = "in-progress"
	EventFinished   EventStatus = "finished"
	EventCancelled  EventStatus = "cancelled"
)

// AnyProgramme is the owning programme sentinel: enrollment in any programme is enough
const AnyProgramme uint64 = 0

// SigningRecord is one attendance sign-off for an (event, participant) pair.
// An empty SignaturePayload means the record is still open.
type SigningRecord struct {
	ID               uint64     `json:"id"`
	EventID          uint64     `json:"evenement_id"`
	Email            string     `json:"email"`
	Mode             Mode       `json:"mode_signature"`
	SignaturePayload string     `json:"signature_image"`
	ProfilePhoto     string     `json:"photo_profil,omitempty"`
	SignedAt         *time.Time `json:"date_signature,omitempty"`
	IP               string     `json:"ip_address,omitempty"`
	UserAgent        string     `json:"user_agent,omitempty"`
	Validated        bool       `json:"is_validated"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (r *SigningRecord) IsSigned() bool {
	return r.SignaturePayload != ""
}

func (r *SigningRecord) Status() SigningStatus {
	switch {
	case !r.IsSigned():
		return StatusNotSigned
	case r.Validated:
		return StatusSignedValidated
	default:
		return StatusSignedPendingValidation
	}
}

type Event struct {
	ID          uint64      `json:"id" yaml:"id"`
	Title       string      `json:"titre" yaml:"title"`
	Description string      `json:"description,omitempty" yaml:"description"`
	Start       time.Time   `json:"date_debut" yaml:"start"`
	End         time.Time   `json:"date_fin" yaml:"end"`
	Location    string      `json:"lieu,omitempty" yaml:"location"`
	Type        string      `json:"type,omitempty" yaml:"type"`
	ProgrammeID *uint64     `json:"id_prog" yaml:"programme_id"`
	Status      EventStatus `json:"statut" yaml:"status"`
}

func (e *Event) HasProgramme() bool {
	return e.ProgrammeID != nil
}

func (e *Event) AcceptsAnyProgramme() bool {
	return e.ProgrammeID != nil && *e.ProgrammeID == AnyProgramme
}

type Programme struct {
	ID       uint64    `json:"id" yaml:"id"`
	Name     string    `json:"nom" yaml:"name"`
	Start    time.Time `json:"date_debut" yaml:"start"`
	End      time.Time `json:"date_fin" yaml:"end"`
	Location string    `json:"lieu,omitempty" yaml:"location"`
	Status   string    `json:"statut,omitempty" yaml:"status"`
}

type Enrollment struct {
	ID          uint64 `json:"id" yaml:"id"`
	ProgrammeID uint64 `json:"programme_id" yaml:"programme_id"`
	Email       string `json:"email" yaml:"email"`
	FirstName   string `json:"prenom" yaml:"first_name"`
	LastName    string `json:"nom" yaml:"last_name"`
	Phone       string `json:"telephone,omitempty" yaml:"phone"`
	Company     string `json:"entreprise,omitempty" yaml:"company"`
}

func (e *Enrollment) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", e.LastName, e.FirstName))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
