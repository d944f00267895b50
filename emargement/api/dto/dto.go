package dto

// This packages contains DTO (Data Transfer Object) structures
// for providing validated and sanitized values to service layer

type CreateSigningDTO struct {
	EventID uint64
	Email   string
	Mode    string
}

type RecordIdDTO struct {
	ID uint64
}

type ListRecordsDTO struct {
	EventID uint64
	Skip    int
	Limit   int
}

type SubmitSignatureDTO struct {
	ID             uint64
	SignatureImage string
	PhotoProfil    string
	Token          string
}

type AccessTokenDTO struct {
	ID   uint64
	Mode string
}

type VerifyTokenDTO struct {
	Token        string
	ExpectedMode string
}

type TokenDTO struct {
	Token string
}

type EventIdDTO struct {
	EventID uint64
}

type EmailDTO struct {
	Email string
}

type ExportRosterDTO struct {
	EventID uint64
	Format  string
}
