package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/dto"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/services"
	"TRAVEL_ITINERARY_BACK-END/internal/utils"
)

// idFromPath parses the uuid that follows prefix, e.g. "/api/itineraries/".
func idFromPath(path, prefix string) (uuid.UUID, error) {
	raw := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if raw == "" || strings.Contains(raw, "/") {
		return uuid.Nil, apperrors.ErrNotFound
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Invalid("id", "must be a UUID")
	}
	return id, nil
}

func parseDateField(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, apperrors.Invalid(field, "is required")
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.Invalid(field, "must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
	}
	return t, nil
}

func toStops(reqs []dto.StopRequest) ([]models.DestinationStop, error) {
	stops := make([]models.DestinationStop, len(reqs))
	for i, r := range reqs {
		field := fmt.Sprintf("destinations[%d]", i)
		id, err := uuid.Parse(strings.TrimSpace(r.DestinationID))
		if err != nil {
			return nil, apperrors.Invalid(field+".destination_id", "must be a UUID")
		}
		arrival, err := parseDateField(field+".arrival_time", r.ArrivalTime)
		if err != nil {
			return nil, err
		}
		departure, err := parseDateField(field+".departure_time", r.DepartureTime)
		if err != nil {
			return nil, err
		}
		stops[i] = models.DestinationStop{
			DestinationID:   id,
			ArrivalTime:     arrival,
			DepartureTime:   departure,
			AccommodationID: r.AccommodationID,
			BaseCost:        r.BaseCost,
			CostPerKm:       r.CostPerKm,
			Activities:      r.Activities,
		}
	}
	return stops, nil
}

func toItinerary(req dto.CreateItineraryRequest) (*models.Itinerary, error) {
	start, err := parseDateField("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateField("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	stops, err := toStops(req.Destinations)
	if err != nil {
		return nil, err
	}
	return &models.Itinerary{
		Title:        strings.TrimSpace(req.Title),
		StartDate:    start,
		EndDate:      end,
		TotalBudget:  req.TotalBudget,
		Status:       models.TripStatus(strings.ToLower(strings.TrimSpace(req.Status))),
		Rating:       req.Rating,
		Destinations: stops,
	}, nil
}

func toItineraryPatch(req dto.UpdateItineraryRequest) (services.ItineraryPatch, error) {
	p := services.ItineraryPatch{
		TotalBudget: req.TotalBudget,
		Rating:      req.Rating,
		ClearRating: req.ClearRating,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		p.Title = &title
	}
	if req.StartDate != nil {
		t, err := parseDateField("start_date", *req.StartDate)
		if err != nil {
			return p, err
		}
		p.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := parseDateField("end_date", *req.EndDate)
		if err != nil {
			return p, err
		}
		p.EndDate = &t
	}
	if req.Status != nil {
		status := models.TripStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		p.Status = &status
	}
	if req.Destinations != nil {
		stops, err := toStops(*req.Destinations)
		if err != nil {
			return p, err
		}
		p.Destinations = &stops
	}
	return p, nil
}

func toItineraryResponse(it *models.Itinerary) dto.ItineraryResponse {
	stops := make([]dto.StopResponse, len(it.Destinations))
	for i, s := range it.Destinations {
		stops[i] = dto.StopResponse{
			DestinationID:          s.DestinationID.String(),
			Latitude:               s.Latitude,
			Longitude:              s.Longitude,
			ArrivalTime:            utils.FormatTimestamp(s.ArrivalTime),
			DepartureTime:          utils.FormatTimestamp(s.DepartureTime),
			TravelTimeFromPrevious: s.TravelTimeFromPrevious,
			TravelCostFromPrevious: s.TravelCostFromPrevious,
			AccommodationID:        s.AccommodationID,
			BaseCost:               s.BaseCost,
			CostPerKm:              s.CostPerKm,
			Activities:             s.Activities,
		}
	}
	return dto.ItineraryResponse{
		ID:              it.ID.String(),
		Title:           it.Title,
		StartDate:       utils.FormatTimestamp(it.StartDate),
		EndDate:         utils.FormatTimestamp(it.EndDate),
		UserID:          it.UserID.String(),
		TotalBudget:     it.TotalBudget,
		TotalCost:       it.TotalCost,
		TotalDistanceKm: it.TotalDistanceKm,
		Status:          string(it.Status),
		Rating:          it.Rating,
		Destinations:    stops,
		CreatedAt:       utils.FormatTimestamp(it.CreatedAt),
		UpdatedAt:       utils.FormatTimestamp(it.UpdatedAt),
	}
}

func toDestination(req dto.DestinationRequest) *models.Destination {
	return &models.Destination{
		Name:                strings.TrimSpace(req.Name),
		Country:             strings.TrimSpace(req.Country),
		Description:         req.Description,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		Timezone:            strings.TrimSpace(req.Timezone),
		Currency:            strings.ToUpper(strings.TrimSpace(req.Currency)),
		Languages:           req.Languages,
		BestSeasons:         lowerAll(req.BestSeasons),
		SafetyRating:        req.SafetyRating,
		Theme:               req.Theme,
		SustainabilityScore: req.SustainabilityScore,
		BaseCost:            req.BaseCost,
		CostPerKm:           req.CostPerKm,
	}
}

func toDestinationPatch(req dto.UpdateDestinationRequest) services.DestinationPatch {
	p := services.DestinationPatch{
		Name:                req.Name,
		Country:             req.Country,
		Description:         req.Description,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		Timezone:            req.Timezone,
		Currency:            req.Currency,
		Languages:           req.Languages,
		SafetyRating:        req.SafetyRating,
		Theme:               req.Theme,
		SustainabilityScore: req.SustainabilityScore,
		BaseCost:            req.BaseCost,
		CostPerKm:           req.CostPerKm,
	}
	if req.BestSeasons != nil {
		seasons := lowerAll(*req.BestSeasons)
		p.BestSeasons = &seasons
	}
	return p
}

func toDestinationResponse(d *models.Destination) dto.DestinationResponse {
	return dto.DestinationResponse{
		ID:                  d.ID.String(),
		Name:                d.Name,
		Country:             d.Country,
		Description:         d.Description,
		Latitude:            d.Latitude,
		Longitude:           d.Longitude,
		Timezone:            d.Timezone,
		Currency:            d.Currency,
		Languages:           nonNil(d.Languages),
		BestSeasons:         nonNil(d.BestSeasons),
		SafetyRating:        d.SafetyRating,
		Theme:               d.Theme,
		SustainabilityScore: d.SustainabilityScore,
		BaseCost:            d.BaseCost,
		CostPerKm:           d.CostPerKm,
		CreatedBy:           d.CreatedBy.String(),
		SchemaVersion:       d.SchemaVersion,
		CreatedAt:           utils.FormatTimestamp(d.CreatedAt),
		UpdatedAt:           utils.FormatTimestamp(d.UpdatedAt),
	}
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: utils.FormatTimestamp(u.CreatedAt),
		UpdatedAt: utils.FormatTimestamp(u.UpdatedAt),
	}
}

func lowerAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
