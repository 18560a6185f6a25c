package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicbook/pkg/logger"
)

const (
	testSessionSecret = "test-session-secret"
	testSessionIssuer = "clinicbook-auth"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelError, Format: logger.FormatJSON})
}

func signTestToken(t *testing.T, claims SessionClaims, secret string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validTestClaims() SessionClaims {
	return SessionClaims{
		PatientPhone: "+12125551234",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testSessionIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func sessionTestHandler() (http.Handler, *bool) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return SessionVerification(testSessionSecret, testSessionIssuer, "", newTestLogger())(next), &called
}

func TestSessionVerificationAllowsReads(t *testing.T) {
	handler, called := sessionTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestSessionVerificationRejectsMissingToken(t *testing.T) {
	handler, called := sessionTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/book", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestSessionVerificationAcceptsValidToken(t *testing.T) {
	handler, called := sessionTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/book", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, validTestClaims(), testSessionSecret))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
	assert.Equal(t, "+12125551234", req.Header.Get("X-Patient-Phone"))
}

func TestSessionVerificationRejectsWrongSecret(t *testing.T) {
	handler, called := sessionTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/book", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, validTestClaims(), "other-secret"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestSessionVerificationRejectsExpiredToken(t *testing.T) {
	handler, called := sessionTestHandler()

	claims := validTestClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/book/abc/cancel", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, claims, testSessionSecret))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestSessionVerificationChecksAudienceWhenConfigured(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	handler := SessionVerification(testSessionSecret, testSessionIssuer, "clinicbook-api", newTestLogger())(next)

	claims := validTestClaims()
	claims.Audience = jwt.ClaimStrings{"someone-else"}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/book", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, claims, testSessionSecret))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	claims.Audience = jwt.ClaimStrings{"clinicbook-api"}
	req = httptest.NewRequest(http.MethodPost, "/api/v1/book", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, claims, testSessionSecret))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestSessionVerificationRejectsWrongIssuer(t *testing.T) {
	handler, called := sessionTestHandler()

	claims := validTestClaims()
	claims.Issuer = "someone-else"

	req := httptest.NewRequest(http.MethodPost, "/api/v1/book", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, claims, testSessionSecret))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}
