package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/smoralesv/itinera/internal/adapters/http"
	"github.com/smoralesv/itinera/internal/adapters/llm"
	filestore "github.com/smoralesv/itinera/internal/adapters/storage/file"
	firestorestore "github.com/smoralesv/itinera/internal/adapters/storage/firestore"
	memstore "github.com/smoralesv/itinera/internal/adapters/storage/memory"
	"github.com/smoralesv/itinera/internal/adapters/travel"
	"github.com/smoralesv/itinera/internal/app/extraction"
	"github.com/smoralesv/itinera/internal/app/planner"
	"github.com/smoralesv/itinera/internal/app/trips"
	"github.com/smoralesv/itinera/internal/config"
	"github.com/smoralesv/itinera/internal/domain"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// LLM: mock for dev, Gemini otherwise
	var (
		extractor domain.Extractor
		generator domain.ItineraryGenerator
	)
	if cfg.UseMockLLM {
		log.Println("[LLM] Using mock LLM client")
		mock := llm.NewMockLLM()
		extractor = mock
		generator = mock
	} else {
		log.Println("[LLM] Using Gemini client")
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
		extractor = client
		generator = client
	}

	// Storage: memory, file or Firestore
	var store domain.TripStore
	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewTripStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		store = fsStore

	case "file":
		log.Printf("[STORE] Using file storage (%s)", cfg.StorageFile)
		fStore, err := filestore.NewTripStore(cfg.StorageFile)
		if err != nil {
			log.Fatalf("error opening trip store: %v", err)
		}
		store = fStore

	default:
		log.Println("[STORE] Using in-memory storage")
		store = memstore.NewTripStore()
	}

	tripSvc := trips.NewService(store)
	extractSvc := extraction.NewService(extractor, tripSvc, llm.ExtractionPreamble)
	plannerSvc := planner.NewService(generator, travel.NewWeatherClient(cfg.WeatherAPIKey))

	flights := travel.NewAmadeusClient(cfg.AmadeusAPIKey, cfg.AmadeusAPISecret)
	places := travel.NewFoursquareClient(cfg.FoursquareAPIKey)

	handler := httpadapter.NewServer(extractSvc, tripSvc, plannerSvc, flights, places)

	addr := ":" + cfg.Port
	log.Println("Itinera API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
