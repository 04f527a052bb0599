package handlers

import (
	"net/http"

	"TRAVEL_ITINERARY_BACK-END/internal/config"
	"TRAVEL_ITINERARY_BACK-END/internal/dto"
	"TRAVEL_ITINERARY_BACK-END/internal/middleware"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/services"
	"TRAVEL_ITINERARY_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users *services.UserService
	jwt   *config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users *services.UserService, jwtCfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwtCfg}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with email, password and full name
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "User already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	h.writeAuthResponse(w, http.StatusCreated, user)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "User login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	h.writeAuthResponse(w, http.StatusOK, user)
}

func (h *AuthHandler) writeAuthResponse(w http.ResponseWriter, status int, user *models.User) {
	token, err := middleware.GenerateToken(user.ID, user.Email, h.jwt)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, status, dto.AuthResponse{User: toUserResponse(user), Token: token})
}
