// @title Travel Itinerary Backend API
// @version 1.0
// @description Destinations, priced itineraries and generated travel plans

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.6 init -g main.go -d ./,../internal/handlers,../internal/dto,../internal/models -o ../docs --outputTypes go

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/rs/cors"

	_ "TRAVEL_ITINERARY_BACK-END/docs" // This is required for swagger
	"TRAVEL_ITINERARY_BACK-END/internal/config"
	"TRAVEL_ITINERARY_BACK-END/internal/events"
	"TRAVEL_ITINERARY_BACK-END/internal/generation"
	"TRAVEL_ITINERARY_BACK-END/internal/handlers"
	"TRAVEL_ITINERARY_BACK-END/internal/middleware"
	"TRAVEL_ITINERARY_BACK-END/internal/planner"
	"TRAVEL_ITINERARY_BACK-END/internal/routes"
	"TRAVEL_ITINERARY_BACK-END/internal/services"
	"TRAVEL_ITINERARY_BACK-END/internal/store"
	"TRAVEL_ITINERARY_BACK-END/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Database ---
	db, err := store.Connect(ctx, cfg.GetDSN(), cfg.Database)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	{
		pingCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		defer cancel()
		if err := db.Ping(pingCtx); err != nil {
			log.Fatalf("ping: %v", err)
		}
	}

	if cfg.Database.RunMigrations {
		if err := db.RunMigration(ctx, cfg.Database.MigrationsPath); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		log.Printf("Applied migration %s", cfg.Database.MigrationsPath)
	}

	// --- Collaborators ---
	llm, err := generation.NewOllamaClient(cfg.LLM)
	if err != nil {
		log.Fatalf("ollama: %v", err)
	}

	var index services.VectorIndex
	var contextProvider generation.ContextProvider
	if cfg.LLM.EmbeddingModel != "" {
		vs := vectorstore.New(db.Pool, llm, cfg.LLM.EmbeddingDims)
		index, contextProvider = vs, vs
	} else {
		log.Println("Warning: OLLAMA_EMBEDDING_MODEL empty, destination search disabled")
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		np, err := events.Connect(ctx, cfg.NATS.URL, cfg.NATS.SubjectPrefix, 5, 2*time.Second)
		if err != nil {
			log.Printf("Warning: events disabled: %v", err)
		} else {
			publisher = np
		}
	}
	defer publisher.Close()

	// --- Services ---
	users := services.NewUserService(store.NewUserRepository(db))
	destinations := services.NewDestinationService(store.NewDestinationRepository(db), index)
	itineraries := services.NewItineraryService(
		store.NewItineraryRepository(db),
		destinations,
		generation.NewAdapter(llm, contextProvider, cfg.LLM.ContextResults),
		planner.NewAggregator(planner.CostParams{
			BaseCost:  cfg.Planner.DefaultBaseCost,
			CostPerKm: cfg.Planner.DefaultCostPerKm,
		}),
		publisher,
	)

	// --- HTTP Handlers ---
	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(users, &cfg.JWT),
		Users:        handlers.NewUsersHandler(users),
		Destinations: handlers.NewDestinationsHandler(destinations),
		Itineraries:  handlers.NewItinerariesHandler(itineraries),
		Health:       handlers.NewHealthHandler(db, llm),
	}
	if cfg.GoogleOAuth.ClientID != "" {
		h.GoogleAuth = handlers.NewGoogleAuthHandler(users, cfg)
	}

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, h, &cfg.JWT)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	var handler http.Handler = mux
	handler = middleware.RequireJSON(handler)
	handler = middleware.BodyLimit(cfg.Server.MaxBodyBytes)(handler)
	handler = c.Handler(handler)
	if cfg.Tracing.Enabled {
		if err := xray.Configure(xray.Config{DaemonAddr: cfg.Tracing.DaemonAddr}); err != nil {
			log.Fatalf("xray: %v", err)
		}
		handler = xray.Handler(xray.NewFixedSegmentNamer(cfg.Tracing.ServiceName), handler)
	}
	handler = gorillahandlers.RecoveryHandler(gorillahandlers.PrintRecoveryStack(true))(handler)
	handler = gorillahandlers.CombinedLoggingHandler(os.Stdout, handler)

	// --- HTTP Server + Graceful Shutdown ---
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}
