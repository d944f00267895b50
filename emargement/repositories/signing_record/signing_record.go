package signing_record

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Sorolassina/mca-api/emargement/modules/state"
	"github.com/Sorolassina/mca-api/emargement/types"
)

const (
	RecordsKeyPrefix     = "records"
	RecordsByEventPrefix = "records-by-event"
	RecordsByEmailPrefix = "records-by-email"
	RecordsByPairPrefix  = "records-by-pair"
	RecordsSequenceName  = "records"
	DefaultListLimit     = 100

	// emailTerminator closes the e-mail component of an index key. It cannot
	// occur in a stored e-mail, so no e-mail prefix matches another e-mail.
	emailTerminator = "\x00"
)

type Filter struct {
	EventID *uint64
}

type Page struct {
	Records        []*types.SigningRecord
	Total          int
	ValidatedCount int
	PendingCount   int
}

// SigningRecordRepo persists signing records. It enforces no business invariant;
// every method takes the reader or transaction it must run in.
type SigningRecordRepo interface {
	GetByID(r state.Reader, id uint64) (*types.SigningRecord, error)
	GetByEventAndEmail(r state.Reader, eventID uint64, email string) (*types.SigningRecord, error)
	ListByEventAndEmail(r state.Reader, eventID uint64, email string) ([]*types.SigningRecord, error)
	ListByEvent(r state.Reader, eventID uint64) ([]*types.SigningRecord, error)
	ListByEmail(r state.Reader, email string) ([]*types.SigningRecord, error)
	List(r state.Reader, filter Filter, skip, limit int) (*Page, error)
	Insert(tx state.Tx, record *types.SigningRecord) error
	Update(tx state.Tx, record *types.SigningRecord) error
	Delete(tx state.Tx, id uint64) error
}

type BaseSigningRecordRepo struct{}

func NewSigningRecordRepo() *BaseSigningRecordRepo {
	return &BaseSigningRecordRepo{}
}

func recordKey(id uint64) string {
	return state.MakeCompositeKeyString(RecordsKeyPrefix, state.MakeIDKey(id))
}

func eventIndexPrefix(eventID uint64) string {
	return state.MakeCompositeKeyString(RecordsByEventPrefix, state.MakeIDKey(eventID)) + "_"
}

func emailIndexPrefix(email string) string {
	return state.MakeCompositeKeyString(RecordsByEmailPrefix, email) + emailTerminator
}

func pairIndexPrefix(eventID uint64, email string) string {
	return fmt.Sprintf("%s_%s_%s%s", RecordsByPairPrefix, state.MakeIDKey(eventID), email, emailTerminator)
}

func (r *BaseSigningRecordRepo) GetByID(rd state.Reader, id uint64) (*types.SigningRecord, error) {
	record, err := r.get(rd, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, types.NewErrf(types.KindNotFound, "signing record %d not found", id)
	}
	return record, nil
}

func (r *BaseSigningRecordRepo) get(rd state.Reader, id uint64) (*types.SigningRecord, error) {
	bz, err := rd.Get(recordKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get signing record %d: %w", id, err)
	}
	if bz == nil {
		return nil, nil
	}

	var record types.SigningRecord
	if err = json.Unmarshal(bz, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal signing record %d: %w", id, err)
	}
	return &record, nil
}

// GetByEventAndEmail returns the signed record of the pair if there is one,
// otherwise the latest placeholder, or nil when the pair has no record.
func (r *BaseSigningRecordRepo) GetByEventAndEmail(rd state.Reader, eventID uint64, email string) (*types.SigningRecord, error) {
	records, err := r.ListByEventAndEmail(rd, eventID, email)
	if err != nil {
		return nil, err
	}

	var found *types.SigningRecord
	for _, record := range records {
		if record.IsSigned() {
			return record, nil
		}
		found = record
	}
	return found, nil
}

func (r *BaseSigningRecordRepo) ListByEventAndEmail(rd state.Reader, eventID uint64, email string) ([]*types.SigningRecord, error) {
	return r.listByIndex(rd, pairIndexPrefix(eventID, types.NormalizeEmail(email)))
}

func (r *BaseSigningRecordRepo) ListByEvent(rd state.Reader, eventID uint64) ([]*types.SigningRecord, error) {
	return r.listByIndex(rd, eventIndexPrefix(eventID))
}

func (r *BaseSigningRecordRepo) ListByEmail(rd state.Reader, email string) ([]*types.SigningRecord, error) {
	return r.listByIndex(rd, emailIndexPrefix(types.NormalizeEmail(email)))
}

// index values hold the record id key, so lookups stay independent of the key layout
func (r *BaseSigningRecordRepo) listByIndex(rd state.Reader, prefix string) ([]*types.SigningRecord, error) {
	records := make([]*types.SigningRecord, 0)
	err := rd.Iterate(prefix, func(key string, value []byte) error {
		// entries are exactly prefix + id key
		if len(key) != len(prefix)+len(state.MakeIDKey(0)) {
			return nil
		}
		bz, err := rd.Get(string(value))
		if err != nil {
			return fmt.Errorf("failed to get indexed record %s: %w", value, err)
		}
		if bz == nil {
			return fmt.Errorf("dangling index entry %s", key)
		}

		var record types.SigningRecord
		if err = json.Unmarshal(bz, &record); err != nil {
			return fmt.Errorf("failed to unmarshal signing record %s: %w", value, err)
		}
		records = append(records, &record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list signing records by %s: %w", prefix, err)
	}
	return records, nil
}

// List returns one page of records; counts are computed over the whole filtered set
func (r *BaseSigningRecordRepo) List(rd state.Reader, filter Filter, skip, limit int) (*Page, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var (
		records []*types.SigningRecord
		err     error
	)
	if filter.EventID != nil {
		records, err = r.ListByEvent(rd, *filter.EventID)
	} else {
		records, err = r.listAll(rd)
	}
	if err != nil {
		return nil, err
	}

	page := &Page{
		Records: make([]*types.SigningRecord, 0),
		Total:   len(records),
	}
	for i, record := range records {
		if record.Validated {
			page.ValidatedCount++
		} else {
			page.PendingCount++
		}
		if i >= skip && len(page.Records) < limit {
			page.Records = append(page.Records, record)
		}
	}
	return page, nil
}

func (r *BaseSigningRecordRepo) listAll(rd state.Reader) ([]*types.SigningRecord, error) {
	records := make([]*types.SigningRecord, 0)
	err := rd.Iterate(RecordsKeyPrefix+"_", func(key string, value []byte) error {
		var record types.SigningRecord
		if err := json.Unmarshal(value, &record); err != nil {
			return fmt.Errorf("failed to unmarshal signing record %s: %w", key, err)
		}
		records = append(records, &record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list signing records: %w", err)
	}
	return records, nil
}

// Insert assigns the next surrogate id and writes the record with its indexes
func (r *BaseSigningRecordRepo) Insert(tx state.Tx, record *types.SigningRecord) error {
	email := types.NormalizeEmail(record.Email)
	if email == "" || strings.Contains(email, emailTerminator) {
		return types.NewErrf(types.KindValidation, "invalid email %q", email)
	}

	id, err := tx.NextSequence(RecordsSequenceName)
	if err != nil {
		return fmt.Errorf("failed to allocate signing record id: %w", err)
	}

	record.ID = id
	record.Email = email

	if err = r.put(tx, record); err != nil {
		return err
	}

	key := recordKey(id)
	idKey := state.MakeIDKey(id)
	for _, indexKey := range []string{
		eventIndexPrefix(record.EventID) + idKey,
		emailIndexPrefix(record.Email) + idKey,
		pairIndexPrefix(record.EventID, record.Email) + idKey,
	} {
		if err = tx.Set(indexKey, []byte(key)); err != nil {
			return fmt.Errorf("failed to put index %s: %w", indexKey, err)
		}
	}
	return nil
}

// Update rewrites an existing record. Event and email are immutable.
func (r *BaseSigningRecordRepo) Update(tx state.Tx, record *types.SigningRecord) error {
	existing, err := r.GetByID(tx, record.ID)
	if err != nil {
		return err
	}
	if existing.EventID != record.EventID || existing.Email != record.Email {
		return fmt.Errorf("signing record %d: event and email cannot change", record.ID)
	}
	return r.put(tx, record)
}

func (r *BaseSigningRecordRepo) Delete(tx state.Tx, id uint64) error {
	record, err := r.GetByID(tx, id)
	if err != nil {
		return err
	}

	idKey := state.MakeIDKey(id)
	for _, key := range []string{
		recordKey(id),
		eventIndexPrefix(record.EventID) + idKey,
		emailIndexPrefix(record.Email) + idKey,
		pairIndexPrefix(record.EventID, record.Email) + idKey,
	} {
		if err = tx.Delete(key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}

func (r *BaseSigningRecordRepo) put(tx state.Tx, record *types.SigningRecord) error {
	bz, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal signing record: %w", err)
	}
	if err = tx.Set(recordKey(record.ID), bz); err != nil {
		return fmt.Errorf("failed to put signing record %d: %w", record.ID, err)
	}
	return nil
}
