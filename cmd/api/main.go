package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"pacpro/pkg/api/actual"
	apiconfig "pacpro/pkg/api/config"
	"pacpro/pkg/api/projections"
	"pacpro/pkg/core/config"
	"pacpro/pkg/core/metrics"
	"pacpro/pkg/core/projection"
	"pacpro/pkg/core/store"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fmt.Printf("[FATAL] Failed to load config: %v\n", err)
		os.Exit(1)
	}
	settings := config.NewSettings(cfg)

	backend, err := store.Open(context.Background(), cfg.Store)
	if err != nil {
		fmt.Printf("[FATAL] Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	mux := http.NewServeMux()

	// Config endpoints
	apiconfig.NewHandler(settings, backend.Name()).Register(mux)

	// Actual (P.A.C.) endpoints
	actual.NewHandler(backend, settings).Register(mux)

	// Projection endpoints
	projections.NewHandler(projection.NewService(backend)).Register(mux)

	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		fmt.Fprint(w, "ok")
	})

	fmt.Printf("API server starting on %s...\n", cfg.Server.Addr)
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/cash-sign")
	fmt.Println("  - GET  /api/pac/{store}/{period}")
	fmt.Println("  - GET  /api/pac/{store}/{period}/input")
	fmt.Println("  - POST /api/pac/{store}/{period}/input")
	fmt.Println("  - GET  /api/pac/{store}/{period}/export")
	fmt.Println("  - POST /api/pac/calculate")
	fmt.Println("  - GET  /api/projections/{store}/{period}")
	fmt.Println("  - POST /api/projections/{store}/{period}")
	fmt.Println("  - GET  /api/projections/{store}/{period}/historical")
	fmt.Println("  - POST /api/projections/{store}/{period}/import")
	fmt.Println("  - POST /api/projections/recalculate")
	fmt.Println("  - GET  /metrics")

	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		backend.Close()
		os.Exit(1)
	}
}
