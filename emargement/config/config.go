package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "EMARGEMENT"

	SinkKafka = "kafka"
	SinkFile  = "file"
	SinkNone  = "none"
)

type HttpApiConfig struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

func (c *HttpApiConfig) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type KafkaStorageConfig struct {
	Broker              string        `mapstructure:"broker"`
	Topic               string        `mapstructure:"topic"`
	TrustStorePath      string        `mapstructure:"truststore_path"`
	ProducerCredentials string        `mapstructure:"producer_credentials"` // username:password
	Timeout             time.Duration `mapstructure:"timeout"`
}

type FileStorageConfig struct {
	Path     string `mapstructure:"path"`
	LockPath string `mapstructure:"lock_path"`
}

type NotificationConfig struct {
	Sink string `mapstructure:"sink"`
}

type Config struct {
	BaseUrl string `mapstructure:"base_url"`

	HttpApiConfig *HttpApiConfig `mapstructure:"http_api"`

	StateDBDSN string `mapstructure:"state_dbdsn"`

	// MembershipDSN points to the Postgres database owning events and enrollments.
	// The local state store is used when empty.
	MembershipDSN string `mapstructure:"membership_dsn"`

	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`

	QrSize int `mapstructure:"qr_size"`

	NotificationConfig *NotificationConfig `mapstructure:"notification"`
	KafkaStorageConfig *KafkaStorageConfig `mapstructure:"kafka"`
	FileStorageConfig  *FileStorageConfig  `mapstructure:"file_storage"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("http_api.host", "localhost")
	v.SetDefault("http_api.port", 8080)
	v.SetDefault("http_api.debug", false)
	v.SetDefault("state_dbdsn", "./emargement_state")
	v.SetDefault("membership_dsn", "")
	v.SetDefault("token_secret", "")
	v.SetDefault("token_ttl", 30*time.Minute)
	v.SetDefault("qr_size", 512)
	v.SetDefault("notification.sink", SinkFile)
	v.SetDefault("kafka.broker", "localhost:9093")
	v.SetDefault("kafka.topic", "emargement_notifications")
	v.SetDefault("kafka.truststore_path", "")
	v.SetDefault("kafka.producer_credentials", "")
	v.SetDefault("kafka.timeout", 10*time.Second)
	v.SetDefault("file_storage.path", "./emargement_outbox.jsonl")
	v.SetDefault("file_storage.lock_path", "./emargement_outbox.lock")
}

// NewViper returns a viper instance with defaults and EMARGEMENT_* environment overrides
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads and validates the configuration
func Load(v *viper.Viper, path string) (*Config, error) {
	cfg, err := Read(v, path)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read decodes every known key from the optional config file, the environment and defaults
func Read(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BaseUrl == "" {
		return errors.New("base_url is required")
	}
	if c.TokenSecret == "" {
		return errors.New("token_secret is required")
	}
	if c.HttpApiConfig == nil || c.HttpApiConfig.Port <= 0 {
		return errors.New("http_api.port is required")
	}
	if c.NotificationConfig == nil {
		return errors.New("notification section is required")
	}

	switch c.NotificationConfig.Sink {
	case SinkKafka:
		if c.KafkaStorageConfig == nil || c.KafkaStorageConfig.Broker == "" || c.KafkaStorageConfig.Topic == "" {
			return errors.New("kafka.broker and kafka.topic are required for the kafka sink")
		}
	case SinkFile:
		if c.FileStorageConfig == nil || c.FileStorageConfig.Path == "" {
			return errors.New("file_storage.path is required for the file sink")
		}
	case SinkNone:
	default:
		return fmt.Errorf("unknown notification sink %q", c.NotificationConfig.Sink)
	}
	return nil
}

// ParseCredentials splits "username:password"; an empty string means no authentication
func ParseCredentials(creds string) (username, password string, err error) {
	if creds == "" {
		return "", "", nil
	}
	parts := strings.SplitN(creds, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", errors.New("failed to parse credentials")
	}
	return parts[0], parts[1], nil
}
