package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("write response: %v", err)
	}
}

// WriteErrorResponse writes an error body with an explicit kind and detail
func WriteErrorResponse(w http.ResponseWriter, status int, kind, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: kind, Message: message})
}

// StatusForKind maps a stable error kind to its HTTP status
func StatusForKind(kind string) int {
	switch kind {
	case apperrors.KindInvalidCoordinate, apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindGenerationFormat:
		return http.StatusBadGateway
	case apperrors.KindGenerationUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError classifies err and writes the matching status and body.
// Internal errors are logged and reported with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	status := StatusForKind(kind)

	resp := dto.ErrorResponse{Error: kind, Message: err.Error()}
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		resp.Message = "internal server error"
	}
	WriteJSONResponse(w, status, resp)
}
