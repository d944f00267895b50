package services

import (
	"github.com/Sorolassina/mca-api/common"
	"github.com/Sorolassina/mca-api/emargement/modules/state"
	"github.com/Sorolassina/mca-api/emargement/repositories/membership"
	"github.com/Sorolassina/mca-api/emargement/services/emargement"
	"github.com/Sorolassina/mca-api/emargement/services/roster"
	"github.com/Sorolassina/mca-api/emargement/services/token"
	"github.com/Sorolassina/mca-api/qr"
	"github.com/Sorolassina/mca-api/storage"
)

var provider ServiceProvider

type ServiceProvider struct {
	state      state.State
	storage    storage.Storage
	membership membership.MembershipStore
	tokens     token.TokenService
	emargement emargement.EmargementService
	roster     roster.RosterService
	qr         qr.Processor
	logger     common.Logger

	closers []func() error
}

func (p *ServiceProvider) GetState() state.State {
	return p.state
}

func (p *ServiceProvider) GetStorage() storage.Storage {
	return p.storage
}

func (p *ServiceProvider) GetMembershipStore() membership.MembershipStore {
	return p.membership
}

func (p *ServiceProvider) GetTokenService() token.TokenService {
	return p.tokens
}

func (p *ServiceProvider) GetEmargementService() emargement.EmargementService {
	return p.emargement
}

func (p *ServiceProvider) GetRosterService() roster.RosterService {
	return p.roster
}

func (p *ServiceProvider) GetQrProcessor() qr.Processor {
	return p.qr
}

func (p *ServiceProvider) GetLogger() common.Logger {
	return p.logger
}

// Close releases the resources opened by InitServices in reverse order
func (p *ServiceProvider) Close() error {
	var firstErr error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.closers = nil
	return firstErr
}

func App() *ServiceProvider {
	return &provider
}
