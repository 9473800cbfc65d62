package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/httpx"
)

func main() {
	_ = godotenv.Load(".env.local")

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(lvl)
	}

	serverAddress := getEnv("APP_ADDR", ":8080")
	rateLimitRPS := getEnvFloat(log, "RATE_LIMIT_RPS", 50)
	rateLimitBurst := getEnvInt(log, "RATE_LIMIT_BURST", 100)
	maxBodyBytes := int64(getEnvInt(log, "MAX_BODY_BYTES", 1<<20))
	allowedOrigins := splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	store := catalog.NewMemStore()
	if getEnv("SEED_CATALOG", "false") == "true" {
		seedCatalog(store)
		log.Info("catalog seeded with starter books")
	}

	service := catalog.NewService(store)
	handler := catalog.NewHTTPHandler(service)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.HandleFunc("GET /{$}", handler.Root)
	router.HandleFunc("GET /books", handler.List)
	router.HandleFunc("POST /books", handler.Create)
	router.HandleFunc("GET /books/{id}", handler.Get)
	router.HandleFunc("PUT /books/{id}", handler.Update)
	router.HandleFunc("DELETE /books/{id}", handler.Delete)

	rateLimit := httpx.NewRateLimitMiddleware(rateLimitRPS, rateLimitBurst)

	var root http.Handler = router
	root = rateLimit.Middleware(root)
	root = httpx.RequestSizeLimitMiddleware(maxBodyBytes)(root)
	root = httpx.SecurityHeadersMiddleware(root)
	root = httpx.CORSMiddleware(allowedOrigins)(root)
	root = httpx.RecoveryMiddleware(log)(root)
	root = httpx.AccessLogMiddleware(log)(root)
	root = httpx.RequestIDMiddleware(root)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      root,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", serverAddress).Info("starting server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// seedCatalog loads the starter records so a fresh process has
// something to serve. Ids 1 and 2; the counter moves to 3.
func seedCatalog(store *catalog.MemStore) {
	store.Seed(
		catalog.Book{
			Title:           "To Kill a Mockingbird",
			Author:          "Harper Lee",
			ISBN:            "978-0-06-112008-4",
			PublicationYear: 1960,
			Genre:           "Fiction",
			Available:       true,
		},
		catalog.Book{
			Title:           "1984",
			Author:          "George Orwell",
			ISBN:            "978-0-452-28423-4",
			PublicationYear: 1949,
			Genre:           "Dystopian",
			Available:       true,
		},
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(log *logrus.Logger, key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.WithField("key", key).Warn("invalid integer env value, using default")
		return def
	}
	return n
}

func getEnvFloat(log *logrus.Logger, key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.WithField("key", key).Warn("invalid float env value, using default")
		return def
	}
	return f
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
