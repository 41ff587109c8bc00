package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"calendar-assistant/api/pkg/db"
	"calendar-assistant/api/services/assistant"
	"calendar-assistant/api/services/calendar"
	"calendar-assistant/api/services/events"
	"calendar-assistant/api/services/llm"
	"calendar-assistant/api/services/worker"
)

func main() {
	ctx := context.Background()
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(logHandler))

	dbURL, ok := os.LookupEnv("DATABASE_URL")
	if !ok {
		slog.Error("DATABASE_URL is not set")
		return
	}

	pool, err := db.Connect(ctx, dbURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		return
	}
	defer pool.Close()

	if err := events.InitDB(ctx, pool); err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return
	}

	completer, err := llm.NewClient(llm.Config{
		Model:   envOr("LLM_MODEL", "gpt-4o-mini"),
		Token:   os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("LLM_BASE_URL"),
	})
	if err != nil {
		slog.Error("Failed to create completion client", "error", err)
		return
	}

	calendarClient := calendar.NewClient(
		envOr("CALENDAR_API_URL", "https://www.googleapis.com/calendar/v3"),
		os.Getenv("CALENDAR_TOKEN"),
	)

	executor, err := assistant.NewExecutor(assistant.Deps{
		LLM:        completer,
		Calendar:   calendarClient,
		CalendarID: envOr("CALENDAR_ID", "primary"),
		Confidence: envFloat("CONFIDENCE_THRESHOLD", 0.7),
	}, slog.Default())
	if err != nil {
		slog.Error("Failed to build pipeline executor", "error", err)
		return
	}

	repo := events.NewRepository(pool)
	queue := worker.NewPool(executor, repo, envInt("WORKER_COUNT", 4), 64)

	// setup router
	mainRouter := mux.NewRouter()
	apiRouter := mainRouter.PathPrefix("/api/v1").Subrouter()

	eventService := events.NewService(pool, queue)
	eventService.LoadRoutes(apiRouter)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{envOr("FRONTEND_URL", "http://localhost:3003")}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)(mainRouter)

	srv := &http.Server{
		Addr:    ":8080",
		Handler: corsHandler,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("Starting server on :8080")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		slog.Error("Server error", "error", err)

	case sig := <-shutdown:
		slog.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Could not stop server gracefully", "error", err)
			srv.Close()
		}
	}

	// Let in-flight pipeline runs finish before the pool goes away.
	queue.Stop()
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		slog.Warn("Ignoring invalid float env var", "key", key, "value", v)
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("Ignoring invalid int env var", "key", key, "value", v)
	}
	return fallback
}
