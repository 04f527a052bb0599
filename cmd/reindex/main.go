// Command reindex backfills destinations stored before the similarity index
// existed: it embeds every destination and, with -describe, asks the model
// for descriptions the rows are missing.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TRAVEL_ITINERARY_BACK-END/internal/config"
	"TRAVEL_ITINERARY_BACK-END/internal/generation"
	"TRAVEL_ITINERARY_BACK-END/internal/services"
	"TRAVEL_ITINERARY_BACK-END/internal/store"
	"TRAVEL_ITINERARY_BACK-END/internal/vectorstore"
)

func main() {
	describe := flag.Bool("describe", false, "fill missing destination descriptions with the language model")
	pageSize := flag.Int("page", services.MaxPageSize, "destinations loaded per page")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall time limit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	db, err := store.Connect(ctx, cfg.GetDSN(), cfg.Database)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}

	llm, err := generation.NewOllamaClient(cfg.LLM)
	if err != nil {
		log.Fatalf("ollama: %v", err)
	}

	var index services.VectorIndex
	if cfg.LLM.EmbeddingModel != "" {
		index = vectorstore.New(db.Pool, llm, cfg.LLM.EmbeddingDims)
	} else {
		log.Println("Warning: OLLAMA_EMBEDDING_MODEL empty, destinations will not be indexed")
	}

	var describer services.Describer
	if *describe {
		describer = generation.NewAdapter(llm, nil, 0)
	}

	svc := services.NewDestinationService(store.NewDestinationRepository(db), index)
	started := time.Now()
	rep, err := svc.Backfill(ctx, describer, *pageSize)
	log.Printf("Backfill: scanned=%d described=%d indexed=%d failed=%d in %s",
		rep.Scanned, rep.Described, rep.Indexed, rep.Failed, time.Since(started).Round(time.Millisecond))
	if err != nil {
		log.Fatalf("backfill: %v", err)
	}
}
