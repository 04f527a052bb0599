package handlers

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/config"
	"TRAVEL_ITINERARY_BACK-END/internal/dto"
	"TRAVEL_ITINERARY_BACK-END/internal/middleware"
	"TRAVEL_ITINERARY_BACK-END/internal/services"
	"TRAVEL_ITINERARY_BACK-END/internal/utils"
)

const oauthStateCookie = "oauth_state"

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	users        *services.UserService
	oauth2Config *oauth2.Config
	config       *config.Config

	// userInfo is swapped in tests
	userInfo func(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error)
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(users *services.UserService, cfg *config.Config) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	h := &GoogleAuthHandler{
		users:        users,
		oauth2Config: oauth2Config,
		config:       cfg,
	}
	h.userInfo = h.getGoogleUserInfo
	return h
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.GoogleLoginResponse "Google OAuth URL"
// @Failure 503 {object} dto.ErrorResponse "Google login not configured"
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.oauth2Config.ClientID == "" {
		utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "not_configured", "Google login is not configured")
		return
	}

	// Generate state parameter for CSRF protection
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
	utils.WriteJSONResponse(w, http.StatusOK, dto.GoogleLoginResponse{AuthURL: authURL, State: state})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Handle Google OAuth callback with authorization code
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State parameter for CSRF protection"
// @Success 302 "Redirect to the frontend with a token"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, apperrors.KindValidation, "Authorization code is required")
		return
	}

	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, apperrors.KindValidation, "OAuth state mismatch")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Path: "/api/auth/google", MaxAge: -1})

	// Exchange authorization code for token
	token, err := h.oauth2Config.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("google oauth exchange: %v", err)
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid authorization code")
		return
	}

	info, err := h.userInfo(r.Context(), token)
	if err != nil {
		utils.WriteError(w, fmt.Errorf("fetch google user info: %w", err))
		return
	}
	if !info.Verified {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Google email is not verified")
		return
	}

	user, err := h.users.LoginWithGoogle(r.Context(), info.Email, info.Name, info.Picture)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	jwtToken, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	// Redirect to frontend with token
	q := url.Values{}
	q.Set("token", jwtToken)
	q.Set("user_id", user.ID.String())
	q.Set("email", user.Email)
	q.Set("full_name", user.FullName)
	q.Set("provider", "google")
	http.Redirect(w, r, h.config.GoogleOAuth.FrontendCallback+"?"+q.Encode(), http.StatusFound)
}

// getGoogleUserInfo fetches user information from Google
func (h *GoogleAuthHandler) getGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(h.oauth2Config.TokenSource(ctx, token)))
	if err != nil {
		return nil, err
	}

	userInfo, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}

	return &dto.GoogleUserInfo{
		ID:       userInfo.Id,
		Email:    userInfo.Email,
		Name:     userInfo.Name,
		Picture:  userInfo.Picture,
		Verified: verified,
	}, nil
}
