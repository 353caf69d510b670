/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the CTO Planner HTTP server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags (used as defaults)
  2. Resolve configuration via internal/config (.env, then environment,
     falling back to the flag defaults)
  3. Initialize SQLite store
  4. Create API handler with dependencies
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port default (default: 8080)
  -db      SQLite database path default (default: cto-planner.db)
           Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

ENVIRONMENT:
  PORT, DB_PATH, APP_ENV -- see internal/config. Values here override the
  flag defaults; flags remain useful for local development.

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
  - internal/config/config.go: Configuration resolution
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/cto-planner/api"
	"github.com/warp/cto-planner/internal/config"
	"github.com/warp/cto-planner/store/sqlite"
)

func main() {
	portFlag := flag.Int("port", 8080, "HTTP server port")
	dbFlag := flag.String("db", "cto-planner.db", "SQLite database path")
	flag.Parse()

	cfg, err := config.Load(*portFlag, *dbFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	handler := api.NewHandler(store)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("cto-planner starting on http://localhost:%d (env=%s)", cfg.Port, cfg.Env)
		log.Printf("API available at http://localhost:%d/api", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
