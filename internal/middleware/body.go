package middleware

import (
	"net/http"
	"strings"

	"TRAVEL_ITINERARY_BACK-END/internal/utils"
)

// BodyLimit limits request bodies to maxBytes.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireJSON rejects POST, PUT and PATCH requests under /api/ whose body
// is not declared as JSON.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := strings.ToLower(r.Header.Get("Content-Type"))
			if strings.HasPrefix(r.URL.Path, "/api/") && r.ContentLength != 0 && !strings.HasPrefix(ct, "application/json") {
				utils.WriteErrorResponse(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
