package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentgate/contentgate/internal/common"
	"github.com/contentgate/contentgate/internal/logging"
)

// ---- fakes ----

type fakePaywall struct {
	authToken    string
	authProducts []string
	authErr      error

	validateProducts []string
	validateErr      error

	gotUsername string
	gotPassword string
	gotToken    string
	gotProduct  string
}

func (f *fakePaywall) Authenticate(ctx context.Context, username, password, product string) (string, []string, error) {
	f.gotUsername, f.gotPassword, f.gotProduct = username, password, product
	return f.authToken, f.authProducts, f.authErr
}

func (f *fakePaywall) Validate(ctx context.Context, token, product string) ([]string, error) {
	f.gotToken, f.gotProduct = token, product
	return f.validateProducts, f.validateErr
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

func newTestServer(t *testing.T, svc PaywallService) *Server {
	t.Helper()
	s, err := NewServer(":0", nopLogger{}, svc, NewMetrics())
	require.NoError(t, err)
	return s
}

const authBody = `{
	"device": {"manufacturer": "Acme", "model": "Slate 10", "os_version": "4.4"},
	"authParams": {"username": "user01", "password": "test"}
}`

func doAuth(s *Server, body, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost,
		"/paywallproxy/v1.0.0/json/auth/product01", strings.NewReader(body))
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func doValidate(s *Server, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet,
		"/paywallproxy/v1.0.0/json/validate/product01", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

// ---- auth ----

func TestHandleAuth_Success(t *testing.T) {
	fake := &fakePaywall{authToken: "tok123", authProducts: []string{"product01", "product02"}}
	s := newTestServer(t, fake)

	w := doAuth(s, authBody, common.AuthScheme)

	require.Equal(t, http.StatusOK, w.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok123", resp.SessionKey)
	assert.Equal(t, []string{"product01", "product02"}, resp.Products)

	assert.Equal(t, "user01", fake.gotUsername)
	assert.Equal(t, "test", fake.gotPassword)
	assert.Equal(t, "product01", fake.gotProduct)
}

func TestHandleAuth_MissingOrWrongScheme(t *testing.T) {
	s := newTestServer(t, &fakePaywall{})

	for _, header := range []string{"", "SomeOtherSchemev9", common.SessionScheme} {
		w := doAuth(s, authBody, header)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, codeInvalidAuthScheme, decodeError(t, w).Code)
	}
}

func TestHandleAuth_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "not-json"},
		{name: "device missing", body: `{"authParams": {"username": "u", "password": "p"}}`},
		{
			name: "device incomplete",
			body: `{"device": {"manufacturer": "Acme"}, "authParams": {"username": "u", "password": "p"}}`,
		},
		{
			name: "credentials missing",
			body: `{"device": {"manufacturer": "Acme", "model": "m", "os_version": "1"}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, &fakePaywall{})
			w := doAuth(s, tc.body, common.AuthScheme)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, codeInvalidFormat, decodeError(t, w).Code)
		})
	}
}

func TestHandleAuth_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "bad credentials", err: common.ErrUnknownCredentials, wantStatus: http.StatusForbidden, wantCode: codeInvalidCredentials},
		{name: "disabled account", err: common.ErrAccountDisabled, wantStatus: http.StatusForbidden, wantCode: codeAccountProblem},
		{name: "unknown product", err: common.ErrProductNotFound, wantStatus: http.StatusNotFound, wantCode: codeInvalidProduct},
		{name: "internal", err: common.ErrorInternal, wantStatus: http.StatusInternalServerError, wantCode: codeInternalError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, &fakePaywall{authErr: tc.err})
			w := doAuth(s, authBody, common.AuthScheme)

			assert.Equal(t, tc.wantStatus, w.Code)

			detail := decodeError(t, w)
			assert.Equal(t, tc.wantCode, detail.Code)
			assert.NotEmpty(t, detail.ID)
			assert.Equal(t, "/paywallproxy/v1.0.0/json/auth/product01", detail.Resource)

			// The client's Authorization header is mirrored on errors.
			assert.Equal(t, common.AuthScheme, w.Header().Get("Authorization"))
		})
	}
}

// ---- validate ----

func TestHandleValidate_Success(t *testing.T) {
	fake := &fakePaywall{validateProducts: []string{"product01", "product02"}}
	s := newTestServer(t, fake)

	w := doValidate(s, common.SessionScheme+" "+common.SessionTokenPrefix+"tok123")

	require.Equal(t, http.StatusOK, w.Code)

	var resp validateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"product01", "product02"}, resp.Products)

	assert.Equal(t, "tok123", fake.gotToken)
	assert.Equal(t, "product01", fake.gotProduct)
}

func TestHandleValidate_BadAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "auth scheme instead of session", header: common.AuthScheme},
		{name: "missing session prefix", header: common.SessionScheme + " tok123"},
		{name: "empty token", header: common.SessionScheme + " " + common.SessionTokenPrefix},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, &fakePaywall{})
			w := doValidate(s, tc.header)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, codeInvalidAuthScheme, decodeError(t, w).Code)
		})
	}
}

func TestHandleValidate_SessionExpired(t *testing.T) {
	s := newTestServer(t, &fakePaywall{validateErr: common.ErrSessionExpired})

	w := doValidate(s, common.SessionScheme+" "+common.SessionTokenPrefix+"stale")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, codeSessionExpired, decodeError(t, w).Code)
}

// ---- ancillary endpoints ----

func TestHandleHealthz(t *testing.T) {
	s := newTestServer(t, &fakePaywall{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestHandleMetrics_ExposesCounters(t *testing.T) {
	s := newTestServer(t, &fakePaywall{authErr: common.ErrUnknownCredentials})

	doAuth(s, authBody, common.AuthScheme)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "contentgate_auth_total")
}
