package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"clinicbook/pkg/logger"
)

// SessionClaims is the payload of a clinic session token. Tokens are minted
// by the front desk system; this service only verifies them.
type SessionClaims struct {
	PatientPhone string `json:"patient_phone,omitempty"`
	jwt.RegisteredClaims
}

// SessionVerification requires a valid Bearer token on mutating requests.
// Reads stay open so patients can browse availability without signing in.
func SessionVerification(secret, issuer, audience string, log *logger.Logger) func(http.Handler) http.Handler {
	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requiresSession(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := extractBearerToken(r)
			if tokenString == "" {
				rejectUnauthorized(w, log, r, "Missing Authorization header")
				return
			}

			claims := &SessionClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc, opts...)
			if err != nil || !token.Valid {
				rejectUnauthorized(w, log, r, "Invalid session token")
				return
			}

			// Carry the verified phone to the rate limiter downstream.
			if claims.PatientPhone != "" && r.Header.Get("X-Patient-Phone") == "" {
				r.Header.Set("X-Patient-Phone", claims.PatientPhone)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresSession(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}

	return strings.TrimSpace(token)
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Session verification failed",
		"request_id", RequestID(r.Context()),
		"reason", reason,
		"path", r.URL.Path,
		"method", r.Method,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
