package state_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Sorolassina/mca-api/emargement/modules/state"

	"github.com/stretchr/testify/require"
)

func TestLevelDBState_UpdateAndView(t *testing.T) {
	var (
		req    = require.New(t)
		ctx    = context.Background()
		dbPath = filepath.Join(t.TempDir(), "emargement_test_UpdateAndView")
	)

	stg, err := state.NewLevelDBState(dbPath)
	req.NoError(err)
	defer stg.Close()

	err = stg.Update(ctx, func(tx state.Tx) error {
		if err := tx.Set("record_1", []byte("one")); err != nil {
			return err
		}
		// own writes are visible inside the transaction
		value, err := tx.Get("record_1")
		req.NoError(err)
		req.Equal([]byte("one"), value)
		return nil
	})
	req.NoError(err)

	err = stg.View(ctx, func(r state.Reader) error {
		value, err := r.Get("record_1")
		req.NoError(err)
		req.Equal([]byte("one"), value)

		value, err = r.Get("record_2")
		req.NoError(err)
		req.Nil(value)
		return nil
	})
	req.NoError(err)
}

func TestLevelDBState_UpdateDiscardsOnError(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	stg, err := state.NewInMemoryState()
	req.NoError(err)
	defer stg.Close()

	errAbort := errors.New("abort")
	err = stg.Update(ctx, func(tx state.Tx) error {
		req.NoError(tx.Set("k", []byte("v")))
		return errAbort
	})
	req.ErrorIs(err, errAbort)

	err = stg.View(ctx, func(r state.Reader) error {
		ok, err := r.Has("k")
		req.NoError(err)
		req.False(ok)
		return nil
	})
	req.NoError(err)
}

func TestLevelDBState_Iterate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	stg, err := state.NewInMemoryState()
	req.NoError(err)
	defer stg.Close()

	err = stg.Update(ctx, func(tx state.Tx) error {
		for _, id := range []uint64{10, 2, 1} {
			key := state.MakeCompositeKeyString("record", state.MakeIDKey(id))
			if err := tx.Set(key, []byte(fmt.Sprint(id))); err != nil {
				return err
			}
		}
		return tx.Set("other_1", []byte("x"))
	})
	req.NoError(err)

	var values []string
	err = stg.View(ctx, func(r state.Reader) error {
		return r.Iterate("record_", func(_ string, value []byte) error {
			values = append(values, string(value))
			return nil
		})
	})
	req.NoError(err)
	req.Equal([]string{"1", "2", "10"}, values)
}

func TestLevelDBState_NextSequenceConcurrent(t *testing.T) {
	var (
		req     = require.New(t)
		ctx     = context.Background()
		workers = 16
		wg      sync.WaitGroup
	)

	stg, err := state.NewInMemoryState()
	req.NoError(err)
	defer stg.Close()

	seen := make(chan uint64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = stg.Update(ctx, func(tx state.Tx) error {
				seq, err := tx.NextSequence("records")
				if err != nil {
					return err
				}
				seen <- seq
				return nil
			})
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[uint64]bool{}
	for seq := range seen {
		unique[seq] = true
	}
	req.Len(unique, workers)
	req.True(unique[1])
	req.True(unique[uint64(workers)])
}

func TestLevelDBState_CancelledContext(t *testing.T) {
	req := require.New(t)

	stg, err := state.NewInMemoryState()
	req.NoError(err)
	defer stg.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err = stg.Update(ctx, func(tx state.Tx) error {
		called = true
		return nil
	})
	req.ErrorIs(err, context.Canceled)
	req.False(called)
}
