package qr

import (
	"errors"
	"fmt"

	encoder "github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 512
)

// Processor renders signing links as scannable PNG images
type Processor interface {
	EncodeQR(content string) ([]byte, error)
	WriteQR(path string, content string) error
}

type PNGProcessor struct {
	size  int
	level encoder.RecoveryLevel
}

func NewPNGProcessor(size int) *PNGProcessor {
	if size <= 0 {
		size = DefaultSize
	}
	return &PNGProcessor{
		size:  size,
		level: encoder.Medium,
	}
}

func (p *PNGProcessor) EncodeQR(content string) ([]byte, error) {
	if content == "" {
		return nil, errors.New("empty QR content")
	}
	data, err := encoder.Encode(content, p.level, p.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode the data: %w", err)
	}
	return data, nil
}

func (p *PNGProcessor) WriteQR(path string, content string) error {
	if content == "" {
		return errors.New("empty QR content")
	}
	if err := encoder.WriteFile(content, p.level, p.size, path); err != nil {
		return fmt.Errorf("failed to encode the data: %w", err)
	}
	return nil
}
