package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	. "github.com/Sorolassina/mca-api/emargement/api/dto"
	cs "github.com/Sorolassina/mca-api/emargement/api/http_api/context_service"
	req "github.com/Sorolassina/mca-api/emargement/api/http_api/requests"
)

func (a *HTTPApp) GetSigningLinkQR(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &AccessTokenDTO{}
	if err := stx.BindToDTO(&req.AccessTokenForm{}, formDTO); err != nil {
		return err
	}

	access, err := a.emargement.GenerateAccessToken(stx.Request().Context(), formDTO)
	if err != nil {
		return stx.ServiceError(err)
	}

	encodedData, err := a.qr.EncodeQR(access.SigningURL)
	if err != nil {
		return stx.JsonError(http.StatusInternalServerError, fmt.Errorf("failed to encode signing link: %w", err))
	}
	return stx.Blob(http.StatusOK, "image/png", encodedData)
}
