package roster

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/Sorolassina/mca-api/common"
	"github.com/Sorolassina/mca-api/emargement/api/dto"
	"github.com/Sorolassina/mca-api/emargement/types"
	"github.com/Sorolassina/mca-api/mocks/serviceMocks"
)

var exportTime = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func testEventRecords(t *testing.T) *types.EventRecords {
	programme := uint64(3)
	first := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	second := time.Date(2026, 3, 14, 10, 5, 0, 0, time.UTC)

	return &types.EventRecords{
		Event: &types.Event{
			ID:          10,
			Title:       "Atelier Go 2026",
			Description: "Workshop",
			Start:       time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
			End:         time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC),
			Location:    "Paris",
			ProgrammeID: &programme,
			Status:      types.EventInProgress,
		},
		Records: []*types.NamedRecord{
			{
				SigningRecord: &types.SigningRecord{
					ID: 1, EventID: 10, Email: "marie.dupont@x.com", Mode: types.ModeInPerson,
					SignaturePayload: pngPayload(t, 300, 100), SignedAt: &first, Validated: true,
				},
				FirstName: "Marie", LastName: "Dupont", NameAvailable: true,
			},
			{
				SigningRecord: &types.SigningRecord{
					ID: 2, EventID: 10, Email: "b@x.com", Mode: types.ModeRemote,
					SignaturePayload: "not-an-image", SignedAt: &second,
				},
			},
			{
				SigningRecord: &types.SigningRecord{
					ID: 3, EventID: 10, Email: "paul.martin@x.com", Mode: types.ModeRemote,
				},
				FirstName: "Paul", LastName: "Martin", NameAvailable: true,
			},
		},
	}
}

func newTestRosterService(t *testing.T) (*BaseRosterService, *serviceMocks.MockEmargementService) {
	ctrl := gomock.NewController(t)
	es := serviceMocks.NewMockEmargementService(ctrl)

	s := NewRosterService(es, common.NewLoggerWithOutput("roster", &bytes.Buffer{}))
	s.now = func() time.Time { return exportTime }
	return s, es
}

func TestExportRosterCSV(t *testing.T) {
	req := require.New(t)
	s, es := newTestRosterService(t)

	es.EXPECT().ListEventRecords(gomock.Any(), &dto.EventIdDTO{EventID: 10}).Return(testEventRecords(t), nil)

	artifact, err := s.ExportRosterArtifact(context.Background(), &dto.ExportRosterDTO{EventID: 10, Format: "csv"})
	req.NoError(err)
	req.Equal("text/csv; charset=utf-8", artifact.ContentType)
	req.Equal("signatures_Atelier_Go_2026_20260314.csv", artifact.Filename)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "roster_export_csv", artifact.Data)
}

func TestExportRosterHTML(t *testing.T) {
	req := require.New(t)
	s, es := newTestRosterService(t)

	es.EXPECT().ListEventRecords(gomock.Any(), gomock.Any()).Return(testEventRecords(t), nil)

	artifact, err := s.ExportRosterArtifact(context.Background(), &dto.ExportRosterDTO{EventID: 10})
	req.NoError(err)
	req.Equal("text/html; charset=utf-8", artifact.ContentType)
	req.Equal("signatures_Atelier_Go_2026_20260314.html", artifact.Filename)

	page := string(artifact.Data)
	req.Contains(page, "<h2>Atelier Go 2026</h2>")
	req.Contains(page, `<img src="data:image/png;base64,`)
	req.Contains(page, "<td>Dupont</td><td>Marie</td>")
	req.Contains(page, "<td>unavailable</td><td>unavailable</td><td>b@x.com</td>")
	req.Contains(page, "Not signed")
	req.Contains(page, "Location: Paris")
}

func TestExportRosterUnknownFormat(t *testing.T) {
	s, _ := newTestRosterService(t)

	_, err := s.ExportRosterArtifact(context.Background(), &dto.ExportRosterDTO{EventID: 10, Format: "pdf"})
	require.True(t, types.IsKind(err, types.KindValidation))
}

func TestExportRosterEventNotFound(t *testing.T) {
	s, es := newTestRosterService(t)

	es.EXPECT().ListEventRecords(gomock.Any(), gomock.Any()).
		Return(nil, types.NewErr(types.KindNotFound, "event 99 not found"))

	_, err := s.ExportRosterArtifact(context.Background(), &dto.ExportRosterDTO{EventID: 99, Format: "csv"})
	require.True(t, types.IsKind(err, types.KindNotFound))
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "signatures_Réunion_d_équipe_20260102.csv", Filename(" Réunion d'équipe ", at, FormatCSV))
	require.Equal(t, "signatures_a_b_20260102.html", Filename("a/b", at, FormatHTML))
}
