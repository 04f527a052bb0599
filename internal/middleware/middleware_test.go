package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/config"
	"TRAVEL_ITINERARY_BACK-END/internal/utils"
)

var testJWT = &config.JWTConfig{Secret: "test-secret-0123456789", AccessTokenTTL: time.Hour}

func whoami(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Write([]byte(id.String()))
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	valid, err := GenerateToken(userID, "a@example.com", testJWT)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := GenerateToken(userID, "a@example.com", &config.JWTConfig{Secret: testJWT.Secret, AccessTokenTTL: -time.Minute})
	if err != nil {
		t.Fatal(err)
	}
	otherKey, err := GenerateToken(userID, "a@example.com", &config.JWTConfig{Secret: "another-secret-987654", AccessTokenTTL: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	none := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{UserID: userID, RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "no scheme", header: valid, wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + otherKey, wantStatus: http.StatusUnauthorized},
		{name: "alg none", header: "Bearer " + unsigned, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/itineraries", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			// a spoofed identity header must never be trusted
			req.Header.Set("X-User-ID", uuid.NewString())
			rec := httptest.NewRecorder()

			AuthMiddleware(whoami, testJWT)(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK && rec.Body.String() != userID.String() {
				t.Errorf("identity = %q, want %q", rec.Body.String(), userID)
			}
		})
	}
}

func TestAuthForWrites(t *testing.T) {
	h := AuthForWrites(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }, testJWT)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/destinations", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("GET status = %d, want public access", rec.Code)
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/destinations", strings.NewReader("{}")))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("POST without token status = %d, want 401", rec.Code)
	}
}

func TestRequireJSONAndBodyLimit(t *testing.T) {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var v map[string]any
		if err := utils.DecodeJSONRequest(w, r, &v); err != nil {
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	h = RequireJSON(BodyLimit(16)(h))

	tests := []struct {
		name        string
		body        string
		contentType string
		wantStatus  int
	}{
		{name: "ok", body: `{"a":1}`, contentType: "application/json", wantStatus: http.StatusOK},
		{name: "charset", body: `{"a":1}`, contentType: "application/json; charset=utf-8", wantStatus: http.StatusOK},
		{name: "form", body: `a=1`, contentType: "application/x-www-form-urlencoded", wantStatus: http.StatusUnsupportedMediaType},
		{name: "too large", body: `{"a":"` + strings.Repeat("x", 64) + `"}`, contentType: "application/json", wantStatus: http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/itineraries", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
