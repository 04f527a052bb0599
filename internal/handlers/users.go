package handlers

import (
	"net/http"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/dto"
	"TRAVEL_ITINERARY_BACK-END/internal/services"
	"TRAVEL_ITINERARY_BACK-END/internal/utils"
)

// UsersHandler serves the caller's own account at /api/users/me
type UsersHandler struct {
	users *services.UserService
}

// NewUsersHandler creates a new UsersHandler
func NewUsersHandler(users *services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Me dispatches by HTTP method for /api/users/me
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetMe(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdateMe(w, r)
	case http.MethodDelete:
		h.DeleteMe(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// GetMe handles GET /api/users/me
// @Summary Get my profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/me [get]
func (h *UsersHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toUserResponse(user))
}

// UpdateMe handles PUT /api/users/me
// @Summary Update my profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /api/users/me [put]
// @Router /api/users/me [patch]
func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}

	var req dto.UpdateUserRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	user, err := h.users.Update(r.Context(), userID, services.UserPatch{
		Email:     req.Email,
		FullName:  req.FullName,
		Password:  req.Password,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toUserResponse(user))
}

// DeleteMe handles DELETE /api/users/me
// @Summary Delete my account
// @Description Removes the account and, with it, every itinerary it owns
// @Tags users
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/users/me [delete]
func (h *UsersHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}

	if err := h.users.Delete(r.Context(), userID); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
