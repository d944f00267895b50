package kafka_storage

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/segmentio/kafka-go/sasl/plain"
)

func GetTLSConfig(trustStorePath string) (*tls.Config, error) {
	if trustStorePath == "" {
		return &tls.Config{}, nil
	}

	caCert, err := os.ReadFile(trustStorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read trustStorePath: %w", err)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("no certificates found in %s", trustStorePath)
	}

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}

// GetCredentials returns nil when no username is configured
func GetCredentials(creds KafkaAuthCredentials) *plain.Mechanism {
	if creds.Username == "" {
		return nil
	}
	return &plain.Mechanism{
		Username: creds.Username,
		Password: creds.Password,
	}
}
