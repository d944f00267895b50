package http_api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"

	"github.com/Sorolassina/mca-api/common"
	"github.com/Sorolassina/mca-api/emargement/api/http_api/handlers"
	"github.com/Sorolassina/mca-api/emargement/api/http_api/router"
	"github.com/Sorolassina/mca-api/emargement/config"
	"github.com/Sorolassina/mca-api/emargement/services"
)

type RESTApiProvider struct {
	config       *config.HttpApiConfig
	echoInstance *echo.Echo
	logger       common.Logger
}

func (p *RESTApiProvider) NewServer(config *config.Config, sp *services.ServiceProvider) error {
	if config.HttpApiConfig == nil {
		return errors.New("http api config is required")
	}
	p.config = config.HttpApiConfig
	p.logger = sp.GetLogger()

	h := handlers.NewHTTPApp(sp.GetEmargementService(), sp.GetRosterService(), sp.GetQrProcessor())
	p.echoInstance = newEcho(h, p.logger, p.config.Debug)
	return nil
}

func newEcho(h *handlers.HTTPApp, logger common.Logger, debug bool) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true
	e.Debug = debug

	e.HTTPErrorHandler = newHTTPErrorHandler(logger)

	// Middlewares

	e.Use(echo_middleware.Recover())
	e.Use(echo_middleware.Logger())
	e.Use(metricsMiddleware)
	e.Use(contextServiceMiddleware)

	router.SetRouter(e, h)

	return e
}

func (p *RESTApiProvider) Start() error {
	p.logger.Log("HTTP API listening on %s", p.config.ListenAddr())
	if err := p.echoInstance.Start(p.config.ListenAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (p *RESTApiProvider) Stop(ctx context.Context) error {
	return p.echoInstance.Shutdown(ctx)
}
