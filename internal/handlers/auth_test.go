package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/config"
	"TRAVEL_ITINERARY_BACK-END/internal/dto"
	"TRAVEL_ITINERARY_BACK-END/internal/middleware"
)

func postJSON(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp()
	h := NewAuthHandler(app.users, testJWT)

	rec := postJSON(h.Register, "/api/auth/register", `{"email": "Ana@Example.com", "password": "correct horse", "full_name": "Ana Lima"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var reg dto.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &reg); err != nil {
		t.Fatal(err)
	}
	if reg.User.Email != "ana@example.com" || reg.Token == "" {
		t.Errorf("got %+v", reg)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response leaks the password hash")
	}
	claims, err := middleware.ValidateToken(reg.Token, testJWT)
	if err != nil || claims.UserID.String() != reg.User.ID {
		t.Errorf("token does not identify the new user: %v", err)
	}

	rec = postJSON(h.Register, "/api/auth/register", `{"email": "ana@example.com", "password": "another one", "full_name": "Ana Again"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}

	rec = postJSON(h.Login, "/api/auth/login", `{"email": "ana@example.com", "password": "correct horse"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	for _, body := range []string{
		`{"email": "ana@example.com", "password": "wrong horse"}`,
		`{"email": "nobody@example.com", "password": "correct horse"}`,
	} {
		rec = postJSON(h.Login, "/api/auth/login", body)
		if rec.Code != http.StatusUnauthorized || decodeError(t, rec).Error != apperrors.KindUnauthorized {
			t.Errorf("login %s: status = %d", body, rec.Code)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "short password", body: `{"email": "a@example.com", "password": "short", "full_name": "A"}`, wantField: "password"},
		{name: "bad email", body: `{"email": "not-an-email", "password": "long enough", "full_name": "A"}`, wantField: "email"},
		{name: "missing name", body: `{"email": "a@example.com", "password": "long enough", "full_name": " "}`, wantField: "full_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(newTestApp().users, testJWT)
			rec := postJSON(h.Register, "/api/auth/register", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if f := decodeError(t, rec).Field; f != tt.wantField {
				t.Errorf("field = %q, want %q", f, tt.wantField)
			}
		})
	}
}

func TestUsersMe(t *testing.T) {
	app := newTestApp()
	u, err := app.users.Register(context.Background(), "me@example.com", "long enough", "Me")
	if err != nil {
		t.Fatal(err)
	}
	h := NewUsersHandler(app.users)

	rec := serve(t, h.Me, http.MethodGet, "/api/users/me", "", u.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = serve(t, h.Me, http.MethodPut, "/api/users/me", `{"full_name": "Me Myself"}`, u.ID)
	var resp dto.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || resp.FullName != "Me Myself" {
		t.Errorf("update: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = serve(t, h.Me, http.MethodDelete, "/api/users/me", "", u.ID)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	rec = serve(t, h.Me, http.MethodGet, "/api/users/me", "", u.ID)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestGoogleLoginState(t *testing.T) {
	cfg := &config.Config{
		JWT: *testJWT,
		GoogleOAuth: config.GoogleOAuthConfig{
			ClientID:         "client-id",
			ClientSecret:     "secret",
			RedirectURL:      "http://localhost:8080/api/auth/google/callback",
			FrontendCallback: "http://localhost:3000/callback",
		},
	}
	h := NewGoogleAuthHandler(newTestApp().users, cfg)
	h.userInfo = func(context.Context, *oauth2.Token) (*dto.GoogleUserInfo, error) {
		t.Fatal("user info must not be fetched when state does not match")
		return nil, nil
	}

	rec := httptest.NewRecorder()
	h.GoogleLogin(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	var resp dto.GoogleLoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	authURL, err := url.Parse(resp.AuthURL)
	if err != nil || authURL.Query().Get("state") != resp.State || authURL.Query().Get("client_id") != "client-id" {
		t.Errorf("auth_url = %q", resp.AuthURL)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != resp.State {
		t.Fatalf("state cookie not set: %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=forged", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.GoogleCallback(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("forged state status = %d, want 400", rec.Code)
	}
}
