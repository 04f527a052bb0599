package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"TRAVEL_ITINERARY_BACK-END/internal/config"
	"TRAVEL_ITINERARY_BACK-END/internal/handlers"
	"TRAVEL_ITINERARY_BACK-END/internal/middleware"
)

// Handlers groups every HTTP handler the API serves
type Handlers struct {
	Auth         *handlers.AuthHandler
	GoogleAuth   *handlers.GoogleAuthHandler
	Users        *handlers.UsersHandler
	Destinations *handlers.DestinationsHandler
	Itineraries  *handlers.ItinerariesHandler
	Health       *handlers.HealthHandler
}

// SetupRoutes configures all application routes on mux
func SetupRoutes(mux *http.ServeMux, h Handlers, jwtCfg *config.JWTConfig) {
	// Health check routes
	mux.HandleFunc("/healthz", h.Health.HealthCheck)
	mux.HandleFunc("/livez", h.Health.LivenessCheck)
	mux.HandleFunc("/readyz", h.Health.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("/api/auth/register", h.Auth.Register)
	mux.HandleFunc("/api/auth/login", h.Auth.Login)
	if h.GoogleAuth != nil {
		mux.HandleFunc("/api/auth/google/login", h.GoogleAuth.GoogleLogin)
		mux.HandleFunc("/api/auth/google/callback", h.GoogleAuth.GoogleCallback)
	}

	// Account
	mux.HandleFunc("/api/users/me", middleware.AuthMiddleware(h.Users.Me, jwtCfg))

	// Destinations: public reads, authenticated writes
	mux.HandleFunc("/api/destinations", middleware.AuthForWrites(h.Destinations.Destinations, jwtCfg))
	mux.HandleFunc("/api/destinations/", middleware.AuthForWrites(h.Destinations.Destination, jwtCfg))

	// Itineraries, including /api/itineraries/generate
	mux.HandleFunc("/api/itineraries", middleware.AuthMiddleware(h.Itineraries.Itineraries, jwtCfg))
	mux.HandleFunc("/api/itineraries/", middleware.AuthMiddleware(h.Itineraries.Itinerary, jwtCfg))

	// API documentation
	mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Root route
	mux.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte("Travel itinerary backend is running."))
}
