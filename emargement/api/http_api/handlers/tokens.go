package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	. "github.com/Sorolassina/mca-api/emargement/api/dto"
	cs "github.com/Sorolassina/mca-api/emargement/api/http_api/context_service"
	req "github.com/Sorolassina/mca-api/emargement/api/http_api/requests"
)

func (a *HTTPApp) GenerateAccessToken(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &AccessTokenDTO{}
	if err := stx.BindToDTO(&req.AccessTokenForm{}, formDTO); err != nil {
		return err
	}

	access, err := a.emargement.GenerateAccessToken(stx.Request().Context(), formDTO)
	if err != nil {
		return stx.ServiceError(err)
	}
	return stx.Json(http.StatusOK, access)
}

func (a *HTTPApp) VerifyAccessToken(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &VerifyTokenDTO{}
	if err := stx.BindToDTO(&req.VerifyTokenForm{}, formDTO); err != nil {
		return err
	}

	claims, err := a.emargement.VerifyAccessToken(stx.Request().Context(), formDTO)
	if err != nil {
		return stx.ServiceError(err)
	}
	return stx.Json(http.StatusOK, claims)
}

func (a *HTTPApp) GetSigningPage(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &TokenDTO{}
	if err := stx.BindToDTO(&req.TokenForm{}, formDTO); err != nil {
		return err
	}

	page, err := a.emargement.GetSigningPage(stx.Request().Context(), formDTO)
	if err != nil {
		return stx.ServiceError(err)
	}
	return stx.Json(http.StatusOK, page)
}
