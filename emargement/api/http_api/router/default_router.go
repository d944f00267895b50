package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sorolassina/mca-api/emargement/api/http_api/handlers"
)

func SetRouter(e *echo.Echo, h *handlers.HTTPApp) {
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	g := e.Group("/emargement")

	g.POST("/create", h.CreateSigningOpportunity)
	g.GET("/get/:id", h.GetSigningRecord)
	g.GET("/list", h.ListSigningRecords)
	g.POST("/save/:id/signature", h.SubmitSignature)

	g.GET("/link/:id/signature-link", h.GenerateAccessToken)
	g.GET("/link/:id/signature-qr", h.GetSigningLinkQR)
	g.POST("/token/verify", h.VerifyAccessToken)

	g.GET("/signature/presentiel/:evenement_id", h.GetPresentialRoster)
	g.GET("/signature/:token", h.GetSigningPage)

	g.GET("/evenement/:evenement_id/liste", h.ListEventRecords)
	g.GET("/evenement/:evenement_id/export", h.ExportRoster)
	g.GET("/participant/:email/liste", h.ListParticipantRecords)
}
