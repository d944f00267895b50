package file_storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Sorolassina/mca-api/storage"

	"github.com/google/uuid"
	"github.com/juju/fslock"
)

var (
	_ storage.Storage = (*FileStorage)(nil)
	_ storage.Reader  = (*FileStorage)(nil)
)

const (
	defaultLockFile = "/tmp/emargement_outbox_lock"
)

// FileStorage is an append-only JSON lines outbox guarded by a file lock
type FileStorage struct {
	lockFile *fslock.Lock
	dataFile *os.File
}

func countLines(r io.Reader) uint64 {
	var count uint64
	fileScanner := bufio.NewScanner(r)
	for fileScanner.Scan() {
		count++
	}
	return count
}

// NewFileStorage opens filename for appending; lockFilename is optional
func NewFileStorage(filename string, lockFilename ...string) (*FileStorage, error) {
	var (
		fs  FileStorage
		err error
	)
	if len(lockFilename) > 0 && lockFilename[0] != "" {
		fs.lockFile = fslock.New(lockFilename[0])
	} else {
		fs.lockFile = fslock.New(defaultLockFile)
	}

	if fs.dataFile, err = os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644); err != nil {
		return nil, fmt.Errorf("failed to open a data file: %w", err)
	}
	return &fs, nil
}

func (fs *FileStorage) Send(ctx context.Context, messages ...storage.Message) error {
	if err := fs.lockFile.Lock(); err != nil {
		return fmt.Errorf("failed to lock a file: %w", err)
	}
	defer fs.lockFile.Unlock()

	// otherwise countLines will return zero
	if _, err := fs.dataFile.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the start of a data file: %w", err)
	}
	offset := countLines(fs.dataFile)

	for i := range messages {
		if err := ctx.Err(); err != nil {
			return err
		}

		if messages[i].ID == "" {
			messages[i].ID = uuid.New().String()
		}
		messages[i].Offset = offset

		data, err := json.Marshal(messages[i])
		if err != nil {
			return fmt.Errorf("failed to marshal a message %s: %w", messages[i].ID, err)
		}
		if _, err = fmt.Fprintln(fs.dataFile, string(data)); err != nil {
			return fmt.Errorf("failed to write a message to a data file: %w", err)
		}
		offset++
	}
	return nil
}

// GetMessages returns the messages starting at offset
func (fs *FileStorage) GetMessages(offset uint64) ([]storage.Message, error) {
	if _, err := fs.dataFile.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to the start of a data file: %w", err)
	}

	var msgs []storage.Message
	scanner := bufio.NewScanner(fs.dataFile)
	for scanner.Scan() {
		if offset > 0 {
			offset--
			continue
		}

		var msg storage.Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal a message %s: %w", scanner.Text(), err)
		}
		msgs = append(msgs, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read a data file: %w", err)
	}
	return msgs, nil
}

func (fs *FileStorage) Close() error {
	return fs.dataFile.Close()
}
