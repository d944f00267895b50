package requests

// Forms mirror the DTO field names and types, see dto.RequestToDTO

type CreateSigningForm struct {
	EventID uint64 `json:"evenement_id"`
	Email   string `json:"email" validate:"attr=email,min=3"`
	Mode    string `json:"mode_signature" validate:"attr=mode_signature,min=6"`
}

type RecordIdForm struct {
	ID uint64 `param:"id" json:"id"`
}

type ListRecordsForm struct {
	EventID uint64 `query:"evenement_id"`
	Skip    int    `query:"skip"`
	Limit   int    `query:"limit"`
}

type SubmitSignatureForm struct {
	ID             uint64 `param:"id"`
	SignatureImage string `json:"signature_image" validate:"attr=signature_image,min=1"`
	PhotoProfil    string `json:"photo_profil"`
	Token          string `json:"token"`
}

type AccessTokenForm struct {
	ID   uint64 `param:"id"`
	Mode string `query:"mode"`
}

type VerifyTokenForm struct {
	Token        string `json:"token" validate:"attr=token,min=1"`
	ExpectedMode string `json:"expected_mode"`
}

type TokenForm struct {
	Token string `param:"token" validate:"attr=token,min=1"`
}

type EventIdForm struct {
	EventID uint64 `param:"evenement_id"`
}

type EmailForm struct {
	Email string `param:"email" validate:"attr=email,min=3"`
}

type ExportRosterForm struct {
	EventID uint64 `param:"evenement_id"`
	Format  string `query:"format"`
}
