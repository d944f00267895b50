package roster

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"

	"github.com/Sorolassina/mca-api/common"
	"github.com/Sorolassina/mca-api/emargement/api/dto"
	"github.com/Sorolassina/mca-api/emargement/services/emargement"
	"github.com/Sorolassina/mca-api/emargement/types"
)

const (
	FormatHTML = "html"
	FormatCSV  = "csv"

	unavailable = "unavailable"
	notSigned   = "Not signed"
	dateLayout  = "02/01/2006 15:04"
)

type RosterService interface {
	ExportRosterArtifact(ctx context.Context, dto *dto.ExportRosterDTO) (*types.RosterArtifact, error)
}

type BaseRosterService struct {
	emargement emargement.EmargementService
	thumbnails *Thumbnailer
	logger     common.Logger
	now        func() time.Time
}

func NewRosterService(es emargement.EmargementService, logger common.Logger) *BaseRosterService {
	return &BaseRosterService{
		emargement: es,
		thumbnails: NewThumbnailer(DefaultThumbnailWidth, DefaultThumbnailHeight),
		logger:     logger,
		now:        time.Now,
	}
}

// row is one participant line of the exported sheet
type row struct {
	LastName  string
	FirstName string
	Email     string
	Mode      string
	SignedAt  string
	Status    string
	Signature cell
	Photo     cell
}

// cell holds a rendered thumbnail, or a label when there is nothing to show
type cell struct {
	URI   template.URL
	Label string
}

func (s *BaseRosterService) ExportRosterArtifact(ctx context.Context, d *dto.ExportRosterDTO) (*types.RosterArtifact, error) {
	format := strings.ToLower(strings.TrimSpace(d.Format))
	if format == "" {
		format = FormatHTML
	}
	if format != FormatHTML && format != FormatCSV {
		return nil, types.NewErrf(types.KindValidation, "unsupported export format %q", d.Format)
	}

	listing, err := s.emargement.ListEventRecords(ctx, &dto.EventIdDTO{EventID: d.EventID})
	if err != nil {
		return nil, err
	}

	rows := make([]row, 0, len(listing.Records))
	for _, record := range listing.Records {
		rows = append(rows, s.buildRow(record, format == FormatHTML))
	}

	filename := Filename(listing.Event.Title, s.now(), format)
	switch format {
	case FormatCSV:
		data, err := renderCSV(rows)
		if err != nil {
			return nil, err
		}
		return &types.RosterArtifact{Data: data, ContentType: "text/csv; charset=utf-8", Filename: filename}, nil
	default:
		data, err := renderHTML(listing.Event, rows, s.now())
		if err != nil {
			return nil, err
		}
		return &types.RosterArtifact{Data: data, ContentType: "text/html; charset=utf-8", Filename: filename}, nil
	}
}

func (s *BaseRosterService) buildRow(record *types.NamedRecord, withImages bool) row {
	r := row{
		LastName:  unavailable,
		FirstName: unavailable,
		Email:     record.Email,
		Mode:      modeLabel(record.Mode),
		SignedAt:  notSigned,
		Status:    string(record.Status()),
	}
	if record.NameAvailable {
		r.LastName = record.LastName
		r.FirstName = record.FirstName
	}
	if record.SignedAt != nil {
		r.SignedAt = record.SignedAt.UTC().Format(dateLayout)
	}

	r.Signature = s.imageCell(record.ID, "signature", record.SignaturePayload, withImages)
	if record.Mode == types.ModeRemote {
		r.Photo = s.imageCell(record.ID, "photo", record.ProfilePhoto, withImages)
	}
	return r
}

func (s *BaseRosterService) imageCell(recordID uint64, what, payload string, withImage bool) cell {
	if payload == "" {
		return cell{}
	}
	uri, err := s.thumbnails.DataURI(payload)
	if err != nil {
		s.logger.Warn("record %d: %s cannot be rendered: %v", recordID, what, err)
		return cell{Label: unavailable}
	}
	if !withImage {
		return cell{Label: "present"}
	}
	return cell{URI: template.URL(uri)}
}

func modeLabel(mode types.Mode) string {
	if mode == types.ModeInPerson {
		return "In person"
	}
	return "Remote"
}

// Filename builds signatures_{title}_{YYYYMMDD}.{ext}, keeping only filename-safe title characters
func Filename(title string, at time.Time, ext string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, strings.TrimSpace(title))
	return fmt.Sprintf("signatures_%s_%s.%s", safe, at.Format("20060102"), ext)
}

var csvHeader = []string{"nom", "prenom", "email", "mode_signature", "date_signature", "statut", "signature", "photo"}

func renderCSV(rows []row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		line := []string{r.LastName, r.FirstName, r.Email, r.Mode, r.SignedAt, r.Status, r.Signature.Label, r.Photo.Label}
		if err := w.Write(line); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

var pageTemplate = template.Must(template.New("roster").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Attendance sheet - {{.Event.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #000; }
h1 { text-align: center; }
h2 { text-align: center; color: #EDD213; }
.info { text-align: center; background: #F8F9FA; padding: 10px; }
table { border-collapse: collapse; width: 100%; }
th { background: #2C3E50; color: #fff; }
th, td { border: 1px solid #DEE2E6; padding: 4px; }
tr:nth-child(even) td { background: #F8F9FA; }
</style>
</head>
<body>
<h1>PARTICIPANTS</h1>
<h2>{{.Event.Title}}</h2>
<div class="info">
Date: {{.Event.Start.Format "02/01/2006"}}{{if not .Event.End.IsZero}} to {{.Event.End.Format "02/01/2006"}}{{end}}
{{if .Event.Location}}<br>Location: {{.Event.Location}}{{end}}
{{if .Event.Description}}<br>Description: {{.Event.Description}}{{end}}
</div>
<table>
<tr><th>Last name</th><th>First name</th><th>Email</th><th>Mode</th><th>Signed at</th><th>Signature</th><th>Photo</th></tr>
{{range .Rows}}<tr>
<td>{{.LastName}}</td><td>{{.FirstName}}</td><td>{{.Email}}</td><td>{{.Mode}}</td><td>{{.SignedAt}}</td>
<td>{{if .Signature.URI}}<img src="{{.Signature.URI}}" alt="signature">{{else}}{{.Signature.Label}}{{end}}</td>
<td>{{if .Photo.URI}}<img src="{{.Photo.URI}}" alt="photo">{{else}}{{.Photo.Label}}{{end}}</td>
</tr>
{{end}}</table>
<p>Generated on {{.GeneratedAt.Format "02/01/2006 15:04"}}</p>
</body>
</html>
`))

func renderHTML(event *types.Event, rows []row, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Event       *types.Event
		Rows        []row
		GeneratedAt time.Time
	}{event, rows, now.UTC()})
	if err != nil {
		return nil, fmt.Errorf("failed to render roster page: %w", err)
	}
	return buf.Bytes(), nil
}
