package types

import "time"

const (
	InstructionsRemote   = "Here is your signing link. It is valid for 30 minutes."
	InstructionsInPerson = "Please present yourself in person to sign the attendance sheet."
)

type CreateResult struct {
	Record            *SigningRecord `json:"emargement"`
	SigningURL        string         `json:"signature_url,omitempty"`
	Token             string         `json:"token,omitempty"`
	ExpiresAt         *time.Time     `json:"expires_at,omitempty"`
	Instructions      string         `json:"message"`
	NotificationSent  bool           `json:"notification_sent"`
	NotificationError string         `json:"notification_error,omitempty"`
}

type ListResult struct {
	Records   []*SigningRecord `json:"emargements"`
	Total     int              `json:"total"`
	Validated int              `json:"validated"`
	Pending   int              `json:"pending"`
}

type AccessToken struct {
	RecordID   uint64    `json:"emargement_id"`
	Mode       Mode      `json:"mode"`
	Token      string    `json:"token"`
	SigningURL string    `json:"signature_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type RosterParticipant struct {
	Email     string        `json:"email"`
	FirstName string        `json:"prenom"`
	LastName  string        `json:"nom"`
	RecordID  uint64        `json:"emargement_id"`
	Mode      Mode          `json:"mode_signature"`
	Status    SigningStatus `json:"statut"`
	SignedAt  *time.Time    `json:"date_signature,omitempty"`
}

type RosterView struct {
	Event        *Event               `json:"evenement"`
	Programme    *Programme           `json:"programme"`
	Participants []*RosterParticipant `json:"participants"`
}

// NamedRecord is a signing record joined with the participant's enrollment names.
// NameAvailable is false when no enrollment matches the record's email.
type NamedRecord struct {
	*SigningRecord
	FirstName     string `json:"prenom,omitempty"`
	LastName      string `json:"nom,omitempty"`
	NameAvailable bool   `json:"name_available"`
}

type EventRecords struct {
	Event   *Event         `json:"evenement"`
	Records []*NamedRecord `json:"emargements"`
}

type SigningPage struct {
	AlreadySigned bool           `json:"already_signed"`
	Record        *SigningRecord `json:"emargement"`
	Event         *Event         `json:"evenement"`
	ExpiresAt     *time.Time     `json:"expires_at,omitempty"`
}

// RequestMeta is taken from the transport, never from client payload
type RequestMeta struct {
	IP        string
	UserAgent string
}

// RosterArtifact is an exported attendance sheet ready to be served as a download
type RosterArtifact struct {
	Data        []byte
	ContentType string
	Filename    string
}
