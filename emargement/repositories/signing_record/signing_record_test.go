package signing_record

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sorolassina/mca-api/emargement/modules/state"
	"github.com/Sorolassina/mca-api/emargement/types"
)

func newTestState(t *testing.T) state.State {
	stg, err := state.NewInMemoryState()
	require.NoError(t, err)
	t.Cleanup(func() { _ = stg.Close() })
	return stg
}

func insert(t *testing.T, stg state.State, repo SigningRecordRepo, records ...*types.SigningRecord) {
	err := stg.Update(context.Background(), func(tx state.Tx) error {
		for _, record := range records {
			if err := repo.Insert(tx, record); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestInsertAndGet(t *testing.T) {
	var (
		req  = require.New(t)
		ctx  = context.Background()
		stg  = newTestState(t)
		repo = NewSigningRecordRepo()
	)

	record := &types.SigningRecord{EventID: 10, Email: " A@x.com", Mode: types.ModeRemote}
	insert(t, stg, repo, record)
	req.Equal(uint64(1), record.ID)
	req.Equal("a@x.com", record.Email)

	err := stg.View(ctx, func(r state.Reader) error {
		loaded, err := repo.GetByID(r, record.ID)
		req.NoError(err)
		req.Equal(record.EventID, loaded.EventID)
		req.Equal(types.ModeRemote, loaded.Mode)

		byPair, err := repo.GetByEventAndEmail(r, 10, "a@x.com")
		req.NoError(err)
		req.Equal(record.ID, byPair.ID)

		missing, err := repo.GetByEventAndEmail(r, 11, "a@x.com")
		req.NoError(err)
		req.Nil(missing)

		_, err = repo.GetByID(r, 99)
		req.True(types.IsKind(err, types.KindNotFound))
		return nil
	})
	req.NoError(err)
}

func TestGetByEventAndEmailPrefersSigned(t *testing.T) {
	var (
		req  = require.New(t)
		stg  = newTestState(t)
		repo = NewSigningRecordRepo()
	)

	signed := &types.SigningRecord{EventID: 1, Email: "a@x.com", SignaturePayload: "img", Validated: true}
	placeholder := &types.SigningRecord{EventID: 1, Email: "a@x.com"}
	insert(t, stg, repo, signed, placeholder)

	err := stg.View(context.Background(), func(r state.Reader) error {
		found, err := repo.GetByEventAndEmail(r, 1, "a@x.com")
		req.NoError(err)
		req.Equal(signed.ID, found.ID)
		return nil
	})
	req.NoError(err)
}

func TestDeleteRemovesIndexes(t *testing.T) {
	var (
		req  = require.New(t)
		ctx  = context.Background()
		stg  = newTestState(t)
		repo = NewSigningRecordRepo()
	)

	record := &types.SigningRecord{EventID: 3, Email: "b@x.com"}
	insert(t, stg, repo, record)

	err := stg.Update(ctx, func(tx state.Tx) error {
		return repo.Delete(tx, record.ID)
	})
	req.NoError(err)

	err = stg.View(ctx, func(r state.Reader) error {
		byEvent, err := repo.ListByEvent(r, 3)
		req.NoError(err)
		req.Empty(byEvent)

		byEmail, err := repo.ListByEmail(r, "b@x.com")
		req.NoError(err)
		req.Empty(byEmail)

		byPair, err := repo.ListByEventAndEmail(r, 3, "b@x.com")
		req.NoError(err)
		req.Empty(byPair)
		return nil
	})
	req.NoError(err)
}

func TestUpdateRejectsPairChange(t *testing.T) {
	var (
		req  = require.New(t)
		stg  = newTestState(t)
		repo = NewSigningRecordRepo()
	)

	record := &types.SigningRecord{EventID: 3, Email: "b@x.com"}
	insert(t, stg, repo, record)

	moved := *record
	moved.EventID = 4
	err := stg.Update(context.Background(), func(tx state.Tx) error {
		return repo.Update(tx, &moved)
	})
	req.Error(err)
}

func TestListCountsOverFilteredSet(t *testing.T) {
	var (
		req  = require.New(t)
		stg  = newTestState(t)
		repo = NewSigningRecordRepo()
	)

	insert(t, stg, repo,
		&types.SigningRecord{EventID: 1, Email: "a@x.com", SignaturePayload: "img", Validated: true},
		&types.SigningRecord{EventID: 1, Email: "b@x.com", SignaturePayload: "img"},
		&types.SigningRecord{EventID: 1, Email: "c@x.com"},
		&types.SigningRecord{EventID: 2, Email: "a@x.com", SignaturePayload: "img", Validated: true},
	)

	eventID := uint64(1)
	err := stg.View(context.Background(), func(r state.Reader) error {
		page, err := repo.List(r, Filter{EventID: &eventID}, 1, 1)
		req.NoError(err)
		req.Len(page.Records, 1)
		req.Equal("b@x.com", page.Records[0].Email)
		req.Equal(3, page.Total)
		req.Equal(1, page.ValidatedCount)
		req.Equal(2, page.PendingCount)

		page, err = repo.List(r, Filter{}, 0, 0)
		req.NoError(err)
		req.Len(page.Records, 4)
		req.Equal(2, page.ValidatedCount)
		return nil
	})
	req.NoError(err)
}

func TestIndexesDoNotMatchEmailPrefixes(t *testing.T) {
	var (
		req  = require.New(t)
		ctx  = context.Background()
		stg  = newTestState(t)
		repo = NewSigningRecordRepo()
	)

	longer := &types.SigningRecord{EventID: 10, Email: "a@x.com_b@y.org", SignaturePayload: "img", Validated: true}
	other := &types.SigningRecord{EventID: 10, Email: "a@x.com.au"}
	insert(t, stg, repo, longer, other)

	err := stg.View(ctx, func(r state.Reader) error {
		byPair, err := repo.ListByEventAndEmail(r, 10, "a@x.com")
		req.NoError(err)
		req.Empty(byPair)

		found, err := repo.GetByEventAndEmail(r, 10, "a@x.com")
		req.NoError(err)
		req.Nil(found)

		byEmail, err := repo.ListByEmail(r, "a@x.com")
		req.NoError(err)
		req.Empty(byEmail)

		byEmail, err = repo.ListByEmail(r, "a@x.com_b@y.org")
		req.NoError(err)
		req.Len(byEmail, 1)
		req.Equal(longer.ID, byEmail[0].ID)
		return nil
	})
	req.NoError(err)

	short := &types.SigningRecord{EventID: 10, Email: "a@x.com"}
	insert(t, stg, repo, short)

	// deleting the shorter e-mail's record leaves the others indexed
	err = stg.Update(ctx, func(tx state.Tx) error {
		records, err := repo.ListByEventAndEmail(tx, 10, "a@x.com")
		if err != nil {
			return err
		}
		req.Len(records, 1)
		req.Equal(short.ID, records[0].ID)
		return repo.Delete(tx, records[0].ID)
	})
	req.NoError(err)

	err = stg.View(ctx, func(r state.Reader) error {
		byEvent, err := repo.ListByEvent(r, 10)
		req.NoError(err)
		req.Len(byEvent, 2)

		byPair, err := repo.ListByEventAndEmail(r, 10, "a@x.com.au")
		req.NoError(err)
		req.Len(byPair, 1)
		req.Equal(other.ID, byPair[0].ID)
		return nil
	})
	req.NoError(err)
}

func TestInsertRejectsUnindexableEmail(t *testing.T) {
	var (
		req  = require.New(t)
		stg  = newTestState(t)
		repo = NewSigningRecordRepo()
	)

	for _, email := range []string{"", "  ", "a@x.com\x00b"} {
		err := stg.Update(context.Background(), func(tx state.Tx) error {
			return repo.Insert(tx, &types.SigningRecord{EventID: 1, Email: email})
		})
		req.True(types.IsKind(err, types.KindValidation), "email %q", email)
	}
}
