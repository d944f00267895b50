package storage

import (
	"context"
	"time"
)

// Message is one outbound record, keyed by ID
type Message struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	Offset    uint64    `json:"offset"`
}

type Storage interface {
	Send(ctx context.Context, messages ...Message) error
	Close() error
}

// Reader is implemented by storages that can replay what was sent
type Reader interface {
	GetMessages(offset uint64) ([]Message, error)
}
