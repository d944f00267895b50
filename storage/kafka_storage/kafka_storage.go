package kafka_storage

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/Sorolassina/mca-api/storage"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	kafkaMaxAttempts = 16
)

var _ storage.Storage = (*KafkaStorage)(nil)

type KafkaAuthCredentials struct {
	Username string
	Password string
}

// KafkaStorage publishes messages to a single topic
type KafkaStorage struct {
	writer         *kafka.Writer
	tlsConfig      *tls.Config
	producerCreds  *plain.Mechanism
	brokerEndpoint string
	topic          string
	timeout        time.Duration
}

func NewKafkaStorage(
	brokerEndpoint,
	topic string,
	tlsConfig *tls.Config,
	producerCreds *plain.Mechanism,
	timeout time.Duration,
) (*KafkaStorage, error) {
	if brokerEndpoint == "" || topic == "" {
		return nil, fmt.Errorf("failed to create a NewKafkaStorage: broker endpoint and topic are required")
	}

	ks := &KafkaStorage{
		brokerEndpoint: brokerEndpoint,
		topic:          topic,
		tlsConfig:      tlsConfig,
		producerCreds:  producerCreds,
		timeout:        timeout,
	}

	transport := &kafka.Transport{
		Dial: (&net.Dialer{
			Timeout: ks.timeout,
		}).DialContext,
		TLS: ks.tlsConfig,
	}
	// a typed nil mechanism must not reach the transport
	if ks.producerCreds != nil {
		transport.SASL = ks.producerCreds
	}

	ks.writer = &kafka.Writer{
		Addr:         kafka.TCP(ks.brokerEndpoint),
		Topic:        ks.topic,
		Balancer:     &kafka.LeastBytes{},
		MaxAttempts:  kafkaMaxAttempts,
		BatchTimeout: ks.timeout,
		ReadTimeout:  ks.timeout,
		WriteTimeout: ks.timeout,
		Transport:    transport,
	}

	return ks, nil
}

func (ks *KafkaStorage) Close() error {
	if ks.writer != nil {
		if err := ks.writer.Close(); err != nil {
			return fmt.Errorf("failed to Close writer: %w", err)
		}
	}
	return nil
}

func (ks *KafkaStorage) Send(ctx context.Context, messages ...storage.Message) error {
	kafkaMessages, err := storageToKafkaMessages(messages...)
	if err != nil {
		return fmt.Errorf("failed to storageToKafkaMessages: %w", err)
	}

	if err := ks.writer.WriteMessages(ctx, kafkaMessages...); err != nil {
		return fmt.Errorf("failed to WriteMessages: %w", err)
	}
	return nil
}

func storageToKafkaMessages(messages ...storage.Message) ([]kafka.Message, error) {
	kafkaMessages := make([]kafka.Message, len(messages))
	for i := range messages {
		if messages[i].ID == "" {
			messages[i].ID = uuid.New().String()
		}
		data, err := json.Marshal(messages[i])
		if err != nil {
			return kafkaMessages, fmt.Errorf("failed to marshal a message %s: %w", messages[i].ID, err)
		}
		kafkaMessages[i] = kafka.Message{Key: []byte(messages[i].ID), Value: data}
	}
	return kafkaMessages, nil
}
