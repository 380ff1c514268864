// backend/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gewnthar/demandtrends/backend/config"
	"github.com/gewnthar/demandtrends/backend/handlers"
	"github.com/gewnthar/demandtrends/backend/llm"
	"github.com/gewnthar/demandtrends/backend/services"
)

func main() {
	log.Println("Starting Airline Demand & Price Trend backend...")

	configPath := flag.String("config", "", "path to config.yaml (defaults to backend/config/config.yaml or config/config.yaml)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARN: could not load .env file: %v", err)
	}

	path := *configPath
	if path == "" {
		path = "backend/config/config.yaml"
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = "config/config.yaml"
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Printf("Configuration loaded. Server port: %s, Gemini model: %s", cfg.Server.Port, cfg.Gemini.Model)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The model client is built once and shared; it holds no per-request state.
	var model llm.TextGenerator
	gemini, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.RequestTimeout)
	if err != nil {
		// Still serve: every analysis will carry {"error": "AI processing failed: ..."}.
		log.Printf("WARN: Gemini client unavailable: %v", err)
		model = llm.Unavailable(err)
	} else {
		model = gemini
	}

	insightService := services.NewInsightService(model)
	analysisService := services.NewAnalysisService(cfg.SimulatorParams(), insightService)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handlers.NewRouter(analysisService, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		log.Fatalf("Error starting server: %v", err)
	}

	log.Printf("Server starting on http://localhost%s\n", server.Addr)
	if err := runServer(ctx, server, listener, shutdownGrace); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped.")
}

const shutdownGrace = 10 * time.Second

// runServer serves until ctx is cancelled, then stops accepting connections and
// waits up to grace for in-flight requests before returning.
func runServer(ctx context.Context, server *http.Server, listener net.Listener, grace time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
