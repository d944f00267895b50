package services

import (
	"fmt"

	"github.com/Sorolassina/mca-api/common"
	"github.com/Sorolassina/mca-api/emargement/config"
	"github.com/Sorolassina/mca-api/emargement/modules/state"
	"github.com/Sorolassina/mca-api/emargement/repositories/membership"
	"github.com/Sorolassina/mca-api/emargement/repositories/signing_record"
	"github.com/Sorolassina/mca-api/emargement/services/emargement"
	"github.com/Sorolassina/mca-api/emargement/services/notification"
	"github.com/Sorolassina/mca-api/emargement/services/roster"
	"github.com/Sorolassina/mca-api/emargement/services/token"
	"github.com/Sorolassina/mca-api/qr"
	"github.com/Sorolassina/mca-api/storage"
	"github.com/Sorolassina/mca-api/storage/file_storage"
	"github.com/Sorolassina/mca-api/storage/kafka_storage"
)

// InitServices wires the application services into the global provider
func InitServices(config *config.Config) error {
	return provider.Init(config, nil)
}

// Init builds every service from config. A non-nil st replaces the LevelDB state at config.StateDBDSN.
func (p *ServiceProvider) Init(config *config.Config, st state.State) (err error) {
	defer func() {
		if err != nil {
			_ = p.Close()
		}
	}()

	p.logger = common.NewLogger("emargement")

	if st == nil {
		if st, err = state.NewLevelDBState(config.StateDBDSN); err != nil {
			return fmt.Errorf("failed to init state: %w", err)
		}
	}
	p.state = st
	p.closers = append(p.closers, st.Close)

	if p.membership, err = newMembershipStore(config, st); err != nil {
		return err
	}
	if closer, ok := p.membership.(interface{ Close() error }); ok {
		p.closers = append(p.closers, closer.Close)
	}

	if p.tokens, err = token.NewTokenService([]byte(config.TokenSecret), config.TokenTTL); err != nil {
		return fmt.Errorf("failed to init token service: %w", err)
	}

	var notifier notification.Notifier
	if p.storage, err = newNotificationStorage(config); err != nil {
		return err
	}
	if p.storage != nil {
		p.closers = append(p.closers, p.storage.Close)
		notifier = notification.NewOutboxNotifier(p.storage, p.tokens.TTL())
	}

	p.emargement = emargement.NewEmargementService(
		st,
		signing_record.NewSigningRecordRepo(),
		p.membership,
		p.tokens,
		notifier,
		p.logger,
		config.BaseUrl,
	)
	p.roster = roster.NewRosterService(p.emargement, p.logger)
	p.qr = qr.NewPNGProcessor(config.QrSize)

	return nil
}

func newMembershipStore(config *config.Config, st state.State) (membership.MembershipStore, error) {
	if config.MembershipDSN == "" {
		return membership.NewMembershipRepo(st), nil
	}
	repo, err := membership.OpenPostgresMembershipRepo(config.MembershipDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to init membership store: %w", err)
	}
	return repo, nil
}

func newNotificationStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.NotificationConfig.Sink {
	case config.SinkKafka:
		kc := cfg.KafkaStorageConfig
		username, password, err := config.ParseCredentials(kc.ProducerCredentials)
		if err != nil {
			return nil, err
		}
		tlsConfig, err := kafka_storage.GetTLSConfig(kc.TrustStorePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create tls config: %w", err)
		}
		if kc.TrustStorePath == "" {
			tlsConfig = nil
		}

		stg, err := kafka_storage.NewKafkaStorage(
			kc.Broker,
			kc.Topic,
			tlsConfig,
			kafka_storage.GetCredentials(kafka_storage.KafkaAuthCredentials{Username: username, Password: password}),
			kc.Timeout,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to init storage client: %w", err)
		}
		return stg, nil
	case config.SinkFile:
		stg, err := file_storage.NewFileStorage(cfg.FileStorageConfig.Path, cfg.FileStorageConfig.LockPath)
		if err != nil {
			return nil, fmt.Errorf("failed to init storage client: %w", err)
		}
		return stg, nil
	default:
		return nil, nil
	}
}
