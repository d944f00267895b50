package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	. "github.com/Sorolassina/mca-api/emargement/api/dto"
	cs "github.com/Sorolassina/mca-api/emargement/api/http_api/context_service"
	req "github.com/Sorolassina/mca-api/emargement/api/http_api/requests"
	"github.com/Sorolassina/mca-api/emargement/api/http_api/responses"
)

func (a *HTTPApp) ExportRoster(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &ExportRosterDTO{}
	if err := stx.BindToDTO(&req.ExportRosterForm{}, formDTO); err != nil {
		return err
	}

	artifact, err := a.roster.ExportRosterArtifact(stx.Request().Context(), formDTO)
	if err != nil {
		return stx.ServiceError(err)
	}

	stx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(responses.ContentDisposition, artifact.Filename))
	return stx.Blob(http.StatusOK, artifact.ContentType, artifact.Data)
}

func (a *HTTPApp) Health(c echo.Context) error {
	stx := c.(*cs.ContextService)
	return stx.Json(http.StatusOK, responses.HealthOK)
}
