package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InonKadosh/travel-server/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret",
		JWTUser:     "demo",
		JWTPassword: "demo123",
	}
}

func protected(cfg *config.Config) http.Handler {
	return Middleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func loginToken(t *testing.T, cfg *config.Config, user, pass string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": user, "password": pass})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	LoginHandler(cfg).ServeHTTP(rec, req)

	var lr struct {
		Token string `json:"token"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&lr)
	return rec, lr.Token
}

func TestLoginAndBearerRoundtrip(t *testing.T) {
	cfg := testConfig()
	rec, token := loginToken(t, cfg, "demo", "demo123")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodPost, "/api/flights", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	out := httptest.NewRecorder()
	protected(cfg).ServeHTTP(out, req)
	assert.Equal(t, http.StatusNoContent, out.Code)
}

func TestQueryTokenFallback(t *testing.T) {
	cfg := testConfig()
	_, token := loginToken(t, cfg, "demo", "demo123")

	// EventSource/WebSocket clients cannot set headers.
	req := httptest.NewRequest(http.MethodGet, "/sse/LAX/JFK?date=2025-06-01&token="+token, nil)
	out := httptest.NewRecorder()
	protected(cfg).ServeHTTP(out, req)
	assert.Equal(t, http.StatusNoContent, out.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	rec, _ := loginToken(t, testConfig(), "demo", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsMissingAndInvalidTokens(t *testing.T) {
	cfg := testConfig()

	req := httptest.NewRequest(http.MethodPost, "/api/flights", nil)
	out := httptest.NewRecorder()
	protected(cfg).ServeHTTP(out, req)
	assert.Equal(t, http.StatusUnauthorized, out.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/flights", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	out = httptest.NewRecorder()
	protected(cfg).ServeHTTP(out, req)
	assert.Equal(t, http.StatusUnauthorized, out.Code)
}

func TestMiddlewareRejectsTokenSignedWithOtherSecret(t *testing.T) {
	cfg := testConfig()
	other := testConfig()
	other.JWTSecret = "different-secret"

	tok, err := IssueToken(other, "demo")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/flights", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	out := httptest.NewRecorder()
	protected(cfg).ServeHTTP(out, req)
	assert.Equal(t, http.StatusUnauthorized, out.Code)
}
