package state

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/Sorolassina/mca-api/emargement/types"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	SequencePrefix = "seq"
)

// Reader is a consistent view of the state: a snapshot or an open transaction.
// Get returns a nil value without error when the key is absent.
type Reader interface {
	Get(key string) ([]byte, error)
	Has(key string) (bool, error)
	Iterate(prefix string, fn func(key string, value []byte) error) error
}

// Tx is a read-write handle passed explicitly into every repository mutation.
type Tx interface {
	Reader
	Set(key string, value []byte) error
	Delete(key string) error
	NextSequence(name string) (uint64, error)
}

// State is the service's durable key/value state. Update runs fn inside a single
// serializable transaction, discarding every write when fn returns an error.
type State interface {
	View(ctx context.Context, fn func(r Reader) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

type LevelDBState struct {
	sync.Mutex
	stateDb     *leveldb.DB
	stateDbPath string
}

func NewLevelDBState(stateDbPath string) (*LevelDBState, error) {
	db, err := leveldb.OpenFile(stateDbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open stateDB: %w", err)
	}

	return &LevelDBState{
		stateDb:     db,
		stateDbPath: stateDbPath,
	}, nil
}

// NewInMemoryState opens a state backed by leveldb memory storage
func NewInMemoryState() (*LevelDBState, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory stateDB: %w", err)
	}

	return &LevelDBState{stateDb: db}, nil
}

func (s *LevelDBState) Close() error {
	if err := s.stateDb.Close(); err != nil {
		return fmt.Errorf("failed to close stateDB: %w", err)
	}
	return nil
}

func (s *LevelDBState) View(ctx context.Context, fn func(r Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap, err := s.stateDb.GetSnapshot()
	if err != nil {
		return types.WrapErr(types.KindTransient, err, "failed to get state snapshot")
	}
	defer snap.Release()

	return fn(&reader{src: snap})
}

func (s *LevelDBState) Update(ctx context.Context, fn func(tx Tx) error) error {
	s.Lock()
	defer s.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tr, err := s.stateDb.OpenTransaction()
	if err != nil {
		return types.WrapErr(types.KindTransient, err, "failed to open state transaction")
	}

	if err = fn(&transaction{reader: reader{src: tr}, tr: tr}); err != nil {
		tr.Discard()
		return err
	}

	if err = ctx.Err(); err != nil {
		tr.Discard()
		return err
	}

	if err = tr.Commit(); err != nil {
		tr.Discard()
		return types.WrapErr(types.KindTransient, err, "failed to commit state transaction")
	}
	return nil
}

// leveldbSource is implemented by both *leveldb.Snapshot and *leveldb.Transaction
type leveldbSource interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	Has(key []byte, ro *opt.ReadOptions) (bool, error)
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

type reader struct {
	src leveldbSource
}

func (r *reader) Get(key string) ([]byte, error) {
	value, err := r.src.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get value with key {%s} from leveldb storage: %w", key, err)
	}
	return value, nil
}

func (r *reader) Has(key string) (bool, error) {
	ok, err := r.src.Has([]byte(key), nil)
	if err != nil {
		return false, fmt.Errorf("failed to check key {%s}: %w", key, err)
	}
	return ok, nil
}

// Iterate walks keys with the given prefix in ascending order.
// Key and value passed to fn are copies and may be retained.
func (r *reader) Iterate(prefix string, fn func(key string, value []byte) error) error {
	iter := r.src.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()

	for iter.Next() {
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())

		if err := fn(string(iter.Key()), value); err != nil {
			return err
		}
	}

	if err := iter.Error(); err != nil {
		return fmt.Errorf("failed to iterate over prefix {%s}: %w", prefix, err)
	}
	return nil
}

type transaction struct {
	reader
	tr *leveldb.Transaction
}

func (t *transaction) Set(key string, value []byte) error {
	if err := t.tr.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("failed to save value with key %s: %w", key, err)
	}
	return nil
}

func (t *transaction) Delete(key string) error {
	err := t.tr.Delete([]byte(key), nil)
	if err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return fmt.Errorf("failed to delete value with key {%s}: %w", key, err)
	}
	return nil
}

// NextSequence increments and returns the named counter, starting at 1
func (t *transaction) NextSequence(name string) (uint64, error) {
	key := MakeCompositeKeyString(SequencePrefix, name)

	bz, err := t.Get(key)
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}

	var seq uint64
	if len(bz) == 8 {
		seq = binary.BigEndian.Uint64(bz)
	}
	seq++

	bz = make([]byte, 8)
	binary.BigEndian.PutUint64(bz, seq)
	if err = t.Set(key, bz); err != nil {
		return 0, fmt.Errorf("failed to save sequence %s: %w", name, err)
	}

	return seq, nil
}

func MakeCompositeKey(prefix, key string) []byte {
	return []byte(MakeCompositeKeyString(prefix, key))
}

func MakeCompositeKeyString(prefix, key string) string {
	return fmt.Sprintf("%s_%s", prefix, key)
}

// MakeIDKey renders a numeric id so that lexical key order matches numeric order
func MakeIDKey(id uint64) string {
	return fmt.Sprintf("%020d", id)
}
