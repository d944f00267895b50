package api

import (
	"context"
	"fmt"
	"time"

	"github.com/Sorolassina/mca-api/emargement/api/http_api"
	"github.com/Sorolassina/mca-api/emargement/config"
	"github.com/Sorolassina/mca-api/emargement/services"
)

const shutdownTimeout = 10 * time.Second

type IServerAbstractFactory interface {
	NewServer(config *config.Config, sp *services.ServiceProvider) error
	Start() error
	Stop(ctx context.Context) error
}

type InstanceFactory struct {
	apiFactory IServerAbstractFactory
}

// Run serves the HTTP API until ctx is cancelled or the server fails
func Run(ctx context.Context, config *config.Config, sp *services.ServiceProvider) error {
	factoryInstance := InstanceFactory{
		apiFactory: &http_api.RESTApiProvider{},
	}

	if err := factoryInstance.apiFactory.NewServer(config, sp); err != nil {
		return fmt.Errorf("failed to init HTTP API: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- factoryInstance.apiFactory.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := factoryInstance.apiFactory.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP API: %w", err)
	}
	return <-errCh
}
