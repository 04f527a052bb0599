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

const destinationsPrefix = "/api/destinations/"

// DestinationsHandler manages destination endpoints. Reads are public,
// writes need a token and only touch destinations the caller created.
type DestinationsHandler struct {
	destinations *services.DestinationService
}

// NewDestinationsHandler creates a new DestinationsHandler
func NewDestinationsHandler(destinations *services.DestinationService) *DestinationsHandler {
	return &DestinationsHandler{destinations: destinations}
}

// Destinations dispatches by HTTP method for /api/destinations
func (h *DestinationsHandler) Destinations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListDestinations(w, r)
	case http.MethodPost:
		h.CreateDestination(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Destination dispatches by HTTP method for /api/destinations/{id}
func (h *DestinationsHandler) Destination(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSuffix(r.URL.Path, "/") == destinationsPrefix+"search" {
		h.SearchDestinations(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.GetDestination(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdateDestination(w, r)
	case http.MethodDelete:
		h.DeleteDestination(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListDestinations handles GET /api/destinations
// @Summary List destinations
// @Tags destinations
// @Produce json
// @Param country query string false "exact country, case-insensitive"
// @Param season query string false "spring|summer|autumn|winter"
// @Param limit query int false "items per page (max 100)"
// @Param offset query int false "offset"
// @Success 200 {object} dto.DestinationListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/destinations [get]
func (h *DestinationsHandler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.DestinationFilter{
		Country: strings.TrimSpace(q.Get("country")),
		Season:  strings.ToLower(strings.TrimSpace(q.Get("season"))),
		Limit:   utils.QueryInt(r, "limit", services.DefaultPageSize, services.MaxPageSize),
		Offset:  utils.QueryInt(r, "offset", 0, 0),
	}

	items, total, err := h.destinations.List(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	resp := dto.DestinationListResponse{
		Destinations: make([]dto.DestinationResponse, 0, len(items)),
		Total:        total,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	}
	for i := range items {
		resp.Destinations = append(resp.Destinations, toDestinationResponse(&items[i]))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// SearchDestinations handles GET /api/destinations/search
// @Summary Search destinations by similarity
// @Description Free text query matched against destination embeddings
// @Tags destinations
// @Produce json
// @Param q query string true "free text query"
// @Param limit query int false "max results (default 20, max 100)"
// @Success 200 {object} dto.DestinationSearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "Search disabled or embedding service unavailable"
// @Router /api/destinations/search [get]
func (h *DestinationsHandler) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	limit := utils.QueryInt(r, "limit", services.DefaultPageSize, services.MaxPageSize)

	results, err := h.destinations.Search(r.Context(), query, limit)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	resp := dto.DestinationSearchResponse{
		Query:   strings.TrimSpace(query),
		Results: make([]dto.DestinationSearchHit, 0, len(results)),
	}
	for i := range results {
		resp.Results = append(resp.Results, dto.DestinationSearchHit{
			Destination: toDestinationResponse(&results[i].Destination),
			Distance:    results[i].Distance,
		})
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// GetDestination handles GET /api/destinations/{id}
// @Summary Get a destination
// @Tags destinations
// @Produce json
// @Param id path string true "Destination ID"
// @Success 200 {object} dto.DestinationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/destinations/{id} [get]
func (h *DestinationsHandler) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, destinationsPrefix)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	d, err := h.destinations.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toDestinationResponse(d))
}

// CreateDestination handles POST /api/destinations
// @Summary Create a destination
// @Tags destinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.DestinationRequest true "Destination payload"
// @Success 201 {object} dto.DestinationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/destinations [post]
func (h *DestinationsHandler) CreateDestination(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}

	var req dto.DestinationRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	d, err := h.destinations.Create(r.Context(), userID, toDestination(req))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toDestinationResponse(d))
}

// UpdateDestination handles PUT/PATCH /api/destinations/{id}
// @Summary Update a destination
// @Description Only the creator may update a destination; others get 404
// @Tags destinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Destination ID"
// @Param payload body dto.UpdateDestinationRequest true "Fields to update"
// @Success 200 {object} dto.DestinationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/destinations/{id} [put]
// @Router /api/destinations/{id} [patch]
func (h *DestinationsHandler) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}
	id, err := idFromPath(r.URL.Path, destinationsPrefix)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var req dto.UpdateDestinationRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	d, err := h.destinations.Update(r.Context(), userID, id, toDestinationPatch(req))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toDestinationResponse(d))
}

// DeleteDestination handles DELETE /api/destinations/{id}
// @Summary Delete a destination
// @Tags destinations
// @Security BearerAuth
// @Param id path string true "Destination ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/destinations/{id} [delete]
func (h *DestinationsHandler) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, apperrors.KindUnauthorized, "Invalid user context")
		return
	}
	id, err := idFromPath(r.URL.Path, destinationsPrefix)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.destinations.Delete(r.Context(), userID, id); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
