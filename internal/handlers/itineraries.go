package handlers

import (
	"net/http"
	"strings"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/dto"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/services"
	"TRAVEL_ITINERARY_BACK-END/internal/utils"
)

const itinerariesPrefix = "/api/itineraries/"

// ItinerariesHandler manages itinerary endpoints. Every route requires an
// authenticated caller and only ever sees the caller's own itineraries.
type ItinerariesHandler struct {
	itineraries *services.ItineraryService
}

// NewItinerariesHandler creates a new ItinerariesHandler
func NewItinerariesHandler(itineraries *services.ItineraryService) *ItinerariesHandler {
	return &ItinerariesHandler{itineraries: itineraries}
}

// Itineraries dispatches by HTTP method for /api/itineraries
func (h *ItinerariesHandler) Itineraries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListItineraries(w, r)
	case http.MethodPost:
		h.CreateItinerary(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Itinerary dispatches by HTTP method for /api/itineraries/{id}
func (h *ItinerariesHandler) Itinerary(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSuffix(r.URL.Path, "/") == itinerariesPrefix+"generate" {
		h.GenerateItinerary(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.GetItinerary(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdateItinerary(w, r)
	case http.MethodDelete:
		h.DeleteItinerary(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CreateItinerary handles POST /api/itineraries
// @Summary Create an itinerary
// @Description Stops are grounded on stored destinations, then priced leg by leg and validated before anything is stored
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateItineraryRequest true "Itinerary payload"
// @Success 201 {object} dto.ItineraryEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itineraries [post]
func (h *ItinerariesHandler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}

	var req dto.CreateItineraryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	it, err := toItinerary(req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	created, err := h.itineraries.Create(r.Context(), userID, it)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.ItineraryEnvelope{Itinerary: toItineraryResponse(created)})
}

// GenerateItinerary handles POST /api/itineraries/generate
// @Summary Generate an itinerary
// @Description Drafts an itinerary over the given destinations from traveler preferences, then prices, validates and stores it
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.GenerateItineraryRequest true "Generation request"
// @Success 201 {object} dto.ItineraryEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Generated draft was malformed"
// @Failure 503 {object} dto.ErrorResponse "Generation service unavailable"
// @Router /api/itineraries/generate [post]
func (h *ItinerariesHandler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}

	var req dto.GenerateItineraryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	in := services.GenerateInput{
		Preferences:  req.Preferences,
		Destinations: req.Destinations,
		DurationDays: req.DurationDays,
	}
	if strings.TrimSpace(req.StartDate) != "" {
		start, err := parseDateField("start_date", req.StartDate)
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		in.StartDate = start
	}

	it, err := h.itineraries.Generate(r.Context(), userID, in)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.ItineraryEnvelope{Itinerary: toItineraryResponse(it)})
}

// ListItineraries handles GET /api/itineraries with filters and pagination
// @Summary List my itineraries
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param status query string false "planning|in_progress|completed|cancelled|all"
// @Param limit query int false "items per page (max 100)"
// @Param offset query int false "offset"
// @Success 200 {object} dto.ItineraryListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/itineraries [get]
func (h *ItinerariesHandler) ListItineraries(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}

	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	if status == "all" {
		status = ""
	}
	filter := models.ItineraryFilter{
		Status: models.TripStatus(status),
		Limit:  utils.QueryInt(r, "limit", services.DefaultPageSize, services.MaxPageSize),
		Offset: utils.QueryInt(r, "offset", 0, 0),
	}

	items, total, err := h.itineraries.List(r.Context(), userID, filter)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	resp := dto.ItineraryListResponse{
		Itineraries: make([]dto.ItineraryResponse, 0, len(items)),
		Total:       total,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	for i := range items {
		resp.Itineraries = append(resp.Itineraries, toItineraryResponse(&items[i]))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// GetItinerary handles GET /api/itineraries/{id}
// @Summary Get an itinerary
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Success 200 {object} dto.ItineraryEnvelope
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/itineraries/{id} [get]
func (h *ItinerariesHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}
	id, err := idFromPath(r.URL.Path, itinerariesPrefix)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	it, err := h.itineraries.Get(r.Context(), userID, id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ItineraryEnvelope{Itinerary: toItineraryResponse(it)})
}

// UpdateItinerary handles PUT/PATCH /api/itineraries/{id}
// @Summary Update an itinerary
// @Description Only provided fields change; the result is re-priced and re-validated
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Param payload body dto.UpdateItineraryRequest true "Fields to update"
// @Success 200 {object} dto.ItineraryEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/itineraries/{id} [put]
// @Router /api/itineraries/{id} [patch]
func (h *ItinerariesHandler) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}
	id, err := idFromPath(r.URL.Path, itinerariesPrefix)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var req dto.UpdateItineraryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	patch, err := toItineraryPatch(req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	it, err := h.itineraries.Update(r.Context(), userID, id, patch)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ItineraryEnvelope{Itinerary: toItineraryResponse(it)})
}

// DeleteItinerary handles DELETE /api/itineraries/{id}
// @Summary Delete an itinerary
// @Tags itineraries
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/itineraries/{id} [delete]
func (h *ItinerariesHandler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}
	id, err := idFromPath(r.URL.Path, itinerariesPrefix)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.itineraries.Delete(r.Context(), userID, id); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
