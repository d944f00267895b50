package handlers

import (
	"github.com/Sorolassina/mca-api/emargement/services/emargement"
	"github.com/Sorolassina/mca-api/emargement/services/roster"
	"github.com/Sorolassina/mca-api/qr"
)

type HTTPApp struct {
	emargement emargement.EmargementService
	roster     roster.RosterService
	qr         qr.Processor
}

func NewHTTPApp(es emargement.EmargementService, rs roster.RosterService, qp qr.Processor) *HTTPApp {
	return &HTTPApp{
		emargement: es,
		roster:     rs,
		qr:         qp,
	}
}
