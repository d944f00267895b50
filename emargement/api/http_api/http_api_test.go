package http_api

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Sorolassina/mca-api/common"
	"github.com/Sorolassina/mca-api/emargement/api/dto"
	"github.com/Sorolassina/mca-api/emargement/api/http_api/handlers"
	"github.com/Sorolassina/mca-api/emargement/services/token"
	"github.com/Sorolassina/mca-api/emargement/types"
	"github.com/Sorolassina/mca-api/mocks/serviceMocks"
	"github.com/Sorolassina/mca-api/qr"
)

type testServer struct {
	e          *echo.Echo
	emargement *serviceMocks.MockEmargementService
	roster     *serviceMocks.MockRosterService
}

func newTestServer(t *testing.T) *testServer {
	ctrl := gomock.NewController(t)
	s := &testServer{
		emargement: serviceMocks.NewMockEmargementService(ctrl),
		roster:     serviceMocks.NewMockRosterService(ctrl),
	}
	h := handlers.NewHTTPApp(s.emargement, s.roster, qr.NewPNGProcessor(64))
	s.e = newEcho(h, common.NewLoggerWithOutput("http", io.Discard), false)
	return s
}

func (s *testServer) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	if body != "" {
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.e.ServeHTTP(w, r)
	return w
}

type testResponse struct {
	Result       json.RawMessage `json:"result"`
	ErrorMessage string          `json:"error_message"`
	ErrorKind    string          `json:"error_kind"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) testResponse {
	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestCreateSigningOpportunity(t *testing.T) {
	s := newTestServer(t)

	s.emargement.EXPECT().
		CreateSigningOpportunity(gomock.Any(), &dto.CreateSigningDTO{EventID: 10, Email: "a@x.com", Mode: "remote"}).
		Return(&types.CreateResult{
			Record:       &types.SigningRecord{ID: 1, EventID: 10, Email: "a@x.com", Mode: types.ModeRemote},
			SigningURL:   "https://mca.example.org/emargement/signature/tok",
			Instructions: types.InstructionsRemote,
		}, nil)

	w := s.do(http.MethodPost, "/emargement/create", `{"evenement_id":10,"email":"a@x.com","mode_signature":"remote"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.CreateResult
	require.NoError(t, json.Unmarshal(decode(t, w).Result, &result))
	require.Equal(t, "https://mca.example.org/emargement/signature/tok", result.SigningURL)
	require.Equal(t, uint64(1), result.Record.ID)
}

func TestCreateSigningOpportunityBadBody(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/emargement/create", `{"evenement_id":`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decode(t, w).ErrorMessage, "failed to read request")
}

func TestErrorKindsMapToStatus(t *testing.T) {
	tests := []struct {
		err   error
		code  int
		kind  string
		route string
	}{
		{types.NewErr(types.KindNotFound, "signing record 5 not found"), http.StatusNotFound, "not_found", "/emargement/get/5"},
		{types.NewErr(types.KindValidation, "bad"), http.StatusBadRequest, "validation", "/emargement/get/5"},
		{types.NewErr(types.KindConflict, "already signed"), http.StatusConflict, "conflict", "/emargement/get/5"},
		{types.NewErr(types.KindAuthorization, "token expired"), http.StatusUnauthorized, "authorization", "/emargement/get/5"},
		{types.NewErr(types.KindTransient, "state unavailable"), http.StatusServiceUnavailable, "transient", "/emargement/get/5"},
		{errors.New("boom"), http.StatusInternalServerError, "", "/emargement/get/5"},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			s := newTestServer(t)
			s.emargement.EXPECT().GetSigningRecord(gomock.Any(), &dto.RecordIdDTO{ID: 5}).Return(nil, tc.err)

			w := s.do(http.MethodGet, tc.route, "", nil)
			require.Equal(t, tc.code, w.Code)
			resp := decode(t, w)
			require.Equal(t, tc.kind, resp.ErrorKind)
			require.Equal(t, tc.err.Error(), resp.ErrorMessage)
		})
	}
}

func TestSubmitSignatureUsesRequestMeta(t *testing.T) {
	s := newTestServer(t)

	signed := &types.SigningRecord{ID: 5, SignaturePayload: "img", IP: "203.0.113.9", UserAgent: "kiosk/1.0"}
	s.emargement.EXPECT().
		SubmitSignature(gomock.Any(),
			&dto.SubmitSignatureDTO{ID: 5, SignatureImage: "img", Token: "tok"},
			types.RequestMeta{IP: "203.0.113.9", UserAgent: "kiosk/1.0"}).
		Return(signed, nil)

	// client supplied ip fields are ignored
	body := `{"signature_image":"img","token":"tok","ip_address":"1.1.1.1","user_agent":"forged"}`
	w := s.do(http.MethodPost, "/emargement/save/5/signature", body, map[string]string{
		echo.HeaderXRealIP: "203.0.113.9",
		"User-Agent":       "kiosk/1.0",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestListSigningRecordsQuery(t *testing.T) {
	s := newTestServer(t)

	s.emargement.EXPECT().
		ListSigningRecords(gomock.Any(), &dto.ListRecordsDTO{EventID: 10, Skip: 5, Limit: 20}).
		Return(&types.ListResult{Total: 25, Validated: 3, Pending: 22}, nil)

	w := s.do(http.MethodGet, "/emargement/list?evenement_id=10&skip=5&limit=20", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var list types.ListResult
	require.NoError(t, json.Unmarshal(decode(t, w).Result, &list))
	require.Equal(t, 22, list.Pending)
}

func TestTokenRoutes(t *testing.T) {
	s := newTestServer(t)

	s.emargement.EXPECT().
		GenerateAccessToken(gomock.Any(), &dto.AccessTokenDTO{ID: 7, Mode: "remote"}).
		Return(&types.AccessToken{RecordID: 7, Mode: types.ModeRemote, Token: "tok", SigningURL: "https://mca.example.org/emargement/signature/tok"}, nil)
	w := s.do(http.MethodGet, "/emargement/link/7/signature-link?mode=remote", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	s.emargement.EXPECT().
		VerifyAccessToken(gomock.Any(), &dto.VerifyTokenDTO{Token: "tok", ExpectedMode: "remote"}).
		Return(nil, types.NewErr(types.KindAuthorization, "token expired"))
	w = s.do(http.MethodPost, "/emargement/token/verify", `{"token":"tok","expected_mode":"remote"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	s.emargement.EXPECT().
		VerifyAccessToken(gomock.Any(), gomock.Any()).
		Return(&token.Claims{RecordID: 7, Email: "a@x.com", EventID: 10, Mode: types.ModeRemote}, nil)
	w = s.do(http.MethodPost, "/emargement/token/verify", `{"token":"tok"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, string(decode(t, w).Result), `"emargement_id":7`)

	s.emargement.EXPECT().
		GetSigningPage(gomock.Any(), &dto.TokenDTO{Token: "tok"}).
		Return(&types.SigningPage{Record: &types.SigningRecord{ID: 7}, Event: &types.Event{ID: 10}}, nil)
	w = s.do(http.MethodGet, "/emargement/signature/tok", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSigningLinkQR(t *testing.T) {
	s := newTestServer(t)

	s.emargement.EXPECT().
		GenerateAccessToken(gomock.Any(), &dto.AccessTokenDTO{ID: 7}).
		Return(&types.AccessToken{RecordID: 7, SigningURL: "https://mca.example.org/emargement/signature/tok"}, nil)

	w := s.do(http.MethodGet, "/emargement/link/7/signature-qr", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/png", w.Header().Get(echo.HeaderContentType))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 64, img.Bounds().Dx())
}

func TestRosterRoutes(t *testing.T) {
	s := newTestServer(t)

	s.emargement.EXPECT().
		GetPresentialRosterView(gomock.Any(), &dto.EventIdDTO{EventID: 10}).
		Return(&types.RosterView{Event: &types.Event{ID: 10}}, nil)
	w := s.do(http.MethodGet, "/emargement/signature/presentiel/10", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	s.emargement.EXPECT().
		ListEventRecords(gomock.Any(), &dto.EventIdDTO{EventID: 10}).
		Return(&types.EventRecords{Event: &types.Event{ID: 10}}, nil)
	w = s.do(http.MethodGet, "/emargement/evenement/10/liste", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	s.emargement.EXPECT().
		ListParticipantRecords(gomock.Any(), &dto.EmailDTO{Email: "a@x.com"}).
		Return([]*types.SigningRecord{{ID: 1}}, nil)
	w = s.do(http.MethodGet, "/emargement/participant/a@x.com/liste", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	s.roster.EXPECT().
		ExportRosterArtifact(gomock.Any(), &dto.ExportRosterDTO{EventID: 10, Format: "csv"}).
		Return(&types.RosterArtifact{Data: []byte("nom,prenom\n"), ContentType: "text/csv; charset=utf-8", Filename: "signatures_Atelier_20260314.csv"}, nil)
	w = s.do(http.MethodGet, "/emargement/evenement/10/export?format=csv", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `attachment; filename="signatures_Atelier_20260314.csv"`, w.Header().Get(echo.HeaderContentDisposition))
	require.Equal(t, "text/csv; charset=utf-8", w.Header().Get(echo.HeaderContentType))
	require.Equal(t, "nom,prenom\n", w.Body.String())
}

func TestServiceRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"result":"ok"}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/emargement/unknown", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NotEmpty(t, decode(t, w).ErrorMessage)
}
