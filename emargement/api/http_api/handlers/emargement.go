package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	. "github.com/Sorolassina/mca-api/emargement/api/dto"
	cs "github.com/Sorolassina/mca-api/emargement/api/http_api/context_service"
	req "github.com/Sorolassina/mca-api/emargement/api/http_api/requests"
)

func (a *HTTPApp) CreateSigningOpportunity(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &CreateSigningDTO{}
	if err := stx.BindToDTO(&req.CreateSigningForm{}, formDTO); err != nil {
		return err
	}

	result, err := a.emargement.CreateSigningOpportunity(stx.Request().Context(), formDTO)
	if err != nil {
		return stx.ServiceError(err)
	}
	return stx.Json(http.StatusOK, result)
}

func (a *HTTPApp) GetSigningRecord(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &RecordIdDTO{}
	if err := stx.BindToDTO(&req.RecordIdForm{}, formDTO); err != nil {
		return err
	}

	record, err := a.emargement.GetSigningRecord(stx.Request().Context(), formDTO)
	if err != nil {
		return stx.ServiceError(err)
	}
	return stx.Json(http.StatusOK, record)
}

func (a *HTTPApp) ListSigningRecords(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &ListRecordsDTO{}
	if err := stx.BindToDTO(&req.ListRecordsForm{}, formDTO); err != nil {
		return err
	}

	list, err := a.emargement.ListSigningRecords(stx.Request().Context(), formDTO)
	if err != nil {
		return stx.ServiceError(err)
	}
	return stx.Json(http.StatusOK, list)
}

func (a *HTTPApp) SubmitSignature(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &SubmitSignatureDTO{}
	if err := stx.BindToDTO(&req.SubmitSignatureForm{}, formDTO); err != nil {
		return err
	}

	record, err := a.emargement.SubmitSignature(stx.Request().Context(), formDTO, stx.Meta())
	if err != nil {
		return stx.ServiceError(err)
	}
	return stx.Json(http.StatusOK, record)
}

func (a *HTTPApp) GetPresentialRoster(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &EventIdDTO{}
	if err := stx.BindToDTO(&req.EventIdForm{}, formDTO); err != nil {
		return err
	}

	view, err := a.emargement.GetPresentialRosterView(stx.Request().Context(), formDTO)
	if err != nil {
		return stx.ServiceError(err)
	}
	return stx.Json(http.StatusOK, view)
}

func (a *HTTPApp) ListEventRecords(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &EventIdDTO{}
	if err := stx.BindToDTO(&req.EventIdForm{}, formDTO); err != nil {
		return err
	}

	listing, err := a.emargement.ListEventRecords(stx.Request().Context(), formDTO)
	if err != nil {
		return stx.ServiceError(err)
	}
	return stx.Json(http.StatusOK, listing)
}

func (a *HTTPApp) ListParticipantRecords(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &EmailDTO{}
	if err := stx.BindToDTO(&req.EmailForm{}, formDTO); err != nil {
		return err
	}

	records, err := a.emargement.ListParticipantRecords(stx.Request().Context(), formDTO)
	if err != nil {
		return stx.ServiceError(err)
	}
	return stx.Json(http.StatusOK, records)
}
