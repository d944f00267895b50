package emargement

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Sorolassina/mca-api/common"
	"github.com/Sorolassina/mca-api/emargement/api/dto"
	"github.com/Sorolassina/mca-api/emargement/modules/metrics"
	"github.com/Sorolassina/mca-api/emargement/modules/state"
	"github.com/Sorolassina/mca-api/emargement/repositories/membership"
	"github.com/Sorolassina/mca-api/emargement/repositories/signing_record"
	"github.com/Sorolassina/mca-api/emargement/services/notification"
	"github.com/Sorolassina/mca-api/emargement/services/token"
	"github.com/Sorolassina/mca-api/emargement/types"
	"github.com/Sorolassina/mca-api/fsm/state_machines/signing_record_fsm"
)

const (
	signingPath = "/emargement/signature/"

	originRequest = "request"
	originRoster  = "roster"
)

type EmargementService interface {
	CreateSigningOpportunity(ctx context.Context, dto *dto.CreateSigningDTO) (*types.CreateResult, error)
	GetSigningRecord(ctx context.Context, dto *dto.RecordIdDTO) (*types.SigningRecord, error)
	ListSigningRecords(ctx context.Context, dto *dto.ListRecordsDTO) (*types.ListResult, error)
	SubmitSignature(ctx context.Context, dto *dto.SubmitSignatureDTO, meta types.RequestMeta) (*types.SigningRecord, error)
	GenerateAccessToken(ctx context.Context, dto *dto.AccessTokenDTO) (*types.AccessToken, error)
	VerifyAccessToken(ctx context.Context, dto *dto.VerifyTokenDTO) (*token.Claims, error)
	GetPresentialRosterView(ctx context.Context, dto *dto.EventIdDTO) (*types.RosterView, error)
	ListEventRecords(ctx context.Context, dto *dto.EventIdDTO) (*types.EventRecords, error)
	ListParticipantRecords(ctx context.Context, dto *dto.EmailDTO) ([]*types.SigningRecord, error)
	GetSigningPage(ctx context.Context, dto *dto.TokenDTO) (*types.SigningPage, error)
}

type BaseEmargementService struct {
	state      state.State
	records    signing_record.SigningRecordRepo
	membership membership.MembershipStore
	tokens     token.TokenService
	notifier   notification.Notifier
	logger     common.Logger
	baseURL    string
	now        func() time.Time
}

func NewEmargementService(
	s state.State,
	records signing_record.SigningRecordRepo,
	membershipStore membership.MembershipStore,
	tokens token.TokenService,
	notifier notification.Notifier,
	logger common.Logger,
	baseURL string,
) *BaseEmargementService {
	return &BaseEmargementService{
		state:      s,
		records:    records,
		membership: membershipStore,
		tokens:     tokens,
		notifier:   notifier,
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		now:        time.Now,
	}
}

// SigningURL returns the public page a remote participant opens to sign
func (s *BaseEmargementService) SigningURL(tok string) string {
	return s.baseURL + signingPath + tok
}

// validateEmail accepts a bare address with one "@" and a dotted host name
func validateEmail(email string) (string, error) {
	email = types.NormalizeEmail(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || strings.Count(email, "@") != 1 {
		return "", types.NewErrf(types.KindValidation, "invalid email %q", email)
	}
	if !validDomain(email[strings.IndexByte(email, '@')+1:]) {
		return "", types.NewErrf(types.KindValidation, "invalid email domain %q", email)
	}
	return email, nil
}

func validDomain(domain string) bool {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
				return false
			}
		}
	}
	return true
}

// checkMembership enforces the enrollment gate for an event
func (s *BaseEmargementService) checkMembership(ctx context.Context, event *types.Event, email string) error {
	if !event.HasProgramme() {
		return types.NewErrf(types.KindValidation, "event %d is not associated with any programme", event.ID)
	}

	_, err := s.membership.GetEnrollment(ctx, *event.ProgrammeID, email)
	if err == nil {
		return nil
	}
	if !types.IsKind(err, types.KindNotFound) {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if event.AcceptsAnyProgramme() {
		return types.NewErrf(types.KindValidation, "%s is not enrolled in any programme", email)
	}
	return types.NewErrf(types.KindValidation, "%s is not enrolled in the event's programme %d", email, *event.ProgrammeID)
}

func (s *BaseEmargementService) CreateSigningOpportunity(ctx context.Context, d *dto.CreateSigningDTO) (*types.CreateResult, error) {
	mode, err := types.ParseMode(d.Mode)
	if err != nil {
		return nil, err
	}
	email, err := validateEmail(d.Email)
	if err != nil {
		return nil, err
	}

	event, err := s.membership.GetEvent(ctx, d.EventID)
	if err != nil {
		return nil, err
	}
	if err = s.checkMembership(ctx, event, email); err != nil {
		return nil, err
	}

	result := &types.CreateResult{}
	err = s.state.Update(ctx, func(tx state.Tx) error {
		existing, err := s.records.ListByEventAndEmail(tx, event.ID, email)
		if err != nil {
			return err
		}
		for _, record := range existing {
			if record.IsSigned() {
				return types.NewErrf(types.KindConflict, "%s already signed event %d", email, event.ID)
			}
		}
		// unsigned placeholders are superseded by the fresh record
		for _, record := range existing {
			if err = s.records.Delete(tx, record.ID); err != nil {
				return fmt.Errorf("failed to delete placeholder %d: %w", record.ID, err)
			}
		}

		record := &types.SigningRecord{
			EventID:   event.ID,
			Email:     email,
			Mode:      mode,
			CreatedAt: s.now().UTC(),
		}
		if err = s.records.Insert(tx, record); err != nil {
			return fmt.Errorf("failed to insert signing record: %w", err)
		}
		result.Record = record

		if mode == types.ModeRemote {
			tok, expiresAt, err := s.tokens.Issue(record.ID, email, event.ID, mode)
			if err != nil {
				return err
			}
			result.Token = tok
			result.SigningURL = s.SigningURL(tok)
			result.ExpiresAt = &expiresAt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.SigningRecordsCreatedTotal.WithLabelValues(mode.String(), originRequest).Inc()

	if mode == types.ModeInPerson {
		result.Instructions = types.InstructionsInPerson
		return result, nil
	}

	result.Instructions = types.InstructionsRemote
	if s.notifier == nil {
		return result, nil
	}
	if err = s.notifier.Notify(ctx, email, result.SigningURL, event.Title); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		s.logger.Warn("failed to notify %s for record %d: %v", email, result.Record.ID, err)
		result.NotificationError = err.Error()
		return result, nil
	}
	result.NotificationSent = true
	return result, nil
}

func (s *BaseEmargementService) GetSigningRecord(ctx context.Context, d *dto.RecordIdDTO) (*types.SigningRecord, error) {
	var record *types.SigningRecord
	err := s.state.View(ctx, func(r state.Reader) (err error) {
		record, err = s.records.GetByID(r, d.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *BaseEmargementService) ListSigningRecords(ctx context.Context, d *dto.ListRecordsDTO) (*types.ListResult, error) {
	filter := signing_record.Filter{}
	if d.EventID != 0 {
		eventID := d.EventID
		filter.EventID = &eventID
	}

	var page *signing_record.Page
	err := s.state.View(ctx, func(r state.Reader) (err error) {
		page, err = s.records.List(r, filter, d.Skip, d.Limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list signing records: %w", err)
	}

	return &types.ListResult{
		Records:   page.Records,
		Total:     page.Total,
		Validated: page.ValidatedCount,
		Pending:   page.PendingCount,
	}, nil
}

// SubmitSignature performs the single open -> signed transition of a record.
// The emptiness check and the write share one transaction.
func (s *BaseEmargementService) SubmitSignature(ctx context.Context, d *dto.SubmitSignatureDTO, meta types.RequestMeta) (*types.SigningRecord, error) {
	var (
		signed *types.SigningRecord
		mode   = "unknown"
	)
	err := s.state.Update(ctx, func(tx state.Tx) error {
		record, err := s.records.GetByID(tx, d.ID)
		if err != nil {
			return err
		}
		mode = record.Mode.String()

		if record.IsSigned() {
			return types.NewErrf(types.KindConflict, "signing record %d already signed", record.ID)
		}

		request := signing_record_fsm.SubmissionRequest{
			Payload:  d.SignatureImage,
			SignedAt: s.now(),
		}
		if record.Mode == types.ModeRemote {
			if err = s.checkRecordToken(d.Token, record); err != nil {
				return err
			}
			request.Photo = d.PhotoProfil
			request.IP = meta.IP
			request.UserAgent = meta.UserAgent
		}

		signed, err = signing_record_fsm.New(record).Submit(request)
		if err != nil {
			return err
		}
		return s.records.Update(tx, signed)
	})
	if err != nil {
		outcome := "error"
		if kind, ok := types.KindOf(err); ok {
			outcome = kind.String()
		}
		metrics.SignaturesSubmittedTotal.WithLabelValues(mode, outcome).Inc()
		return nil, err
	}

	metrics.SignaturesSubmittedTotal.WithLabelValues(mode, "signed").Inc()
	return signed, nil
}

func (s *BaseEmargementService) checkRecordToken(tok string, record *types.SigningRecord) error {
	claims, err := s.tokens.Verify(tok, types.ModeRemote)
	if err != nil {
		metrics.TokenVerificationFailuresTotal.Inc()
		return err
	}
	if claims.RecordID != record.ID || claims.EventID != record.EventID || claims.Email != record.Email {
		metrics.TokenVerificationFailuresTotal.Inc()
		return types.NewErrf(types.KindAuthorization, "token does not match signing record %d", record.ID)
	}
	return nil
}

func (s *BaseEmargementService) GenerateAccessToken(ctx context.Context, d *dto.AccessTokenDTO) (*types.AccessToken, error) {
	mode := types.ModeRemote
	if d.Mode != "" {
		var err error
		if mode, err = types.ParseMode(d.Mode); err != nil {
			return nil, err
		}
	}

	record, err := s.GetSigningRecord(ctx, &dto.RecordIdDTO{ID: d.ID})
	if err != nil {
		return nil, err
	}
	if record.IsSigned() || record.Validated {
		return nil, types.NewErrf(types.KindConflict, "signing record %d already signed", record.ID)
	}
	if record.Mode != mode {
		return nil, types.NewErrf(types.KindValidation, "signing record %d is %s, not %s", record.ID, record.Mode, mode)
	}

	tok, expiresAt, err := s.tokens.Issue(record.ID, record.Email, record.EventID, mode)
	if err != nil {
		return nil, err
	}
	return &types.AccessToken{
		RecordID:   record.ID,
		Mode:       mode,
		Token:      tok,
		SigningURL: s.SigningURL(tok),
		ExpiresAt:  expiresAt,
	}, nil
}

func (s *BaseEmargementService) VerifyAccessToken(_ context.Context, d *dto.VerifyTokenDTO) (*token.Claims, error) {
	var expected types.Mode
	if d.ExpectedMode != "" {
		var err error
		if expected, err = types.ParseMode(d.ExpectedMode); err != nil {
			return nil, err
		}
	}

	claims, err := s.tokens.Verify(d.Token, expected)
	if err != nil {
		metrics.TokenVerificationFailuresTotal.Inc()
		return nil, err
	}
	return claims, nil
}

func (s *BaseEmargementService) ListParticipantRecords(ctx context.Context, d *dto.EmailDTO) ([]*types.SigningRecord, error) {
	email, err := validateEmail(d.Email)
	if err != nil {
		return nil, err
	}

	var records []*types.SigningRecord
	err = s.state.View(ctx, func(r state.Reader) (err error) {
		records, err = s.records.ListByEmail(r, email)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records of %s: %w", email, err)
	}
	return records, nil
}

func (s *BaseEmargementService) GetSigningPage(ctx context.Context, d *dto.TokenDTO) (*types.SigningPage, error) {
	claims, err := s.VerifyAccessToken(ctx, &dto.VerifyTokenDTO{Token: d.Token, ExpectedMode: types.ModeRemote.String()})
	if err != nil {
		return nil, err
	}

	record, err := s.GetSigningRecord(ctx, &dto.RecordIdDTO{ID: claims.RecordID})
	if err != nil {
		return nil, err
	}
	if record.Email != claims.Email || record.EventID != claims.EventID {
		return nil, types.NewErrf(types.KindAuthorization, "token does not match signing record %d", record.ID)
	}

	event, err := s.membership.GetEvent(ctx, record.EventID)
	if err != nil {
		return nil, err
	}

	page := &types.SigningPage{
		AlreadySigned: record.IsSigned(),
		Record:        record,
		Event:         event,
	}
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		page.ExpiresAt = &expiresAt
	}
	return page, nil
}
