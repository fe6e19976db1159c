package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"fairsplit/internal/api"
	"fairsplit/internal/auth"
	"fairsplit/internal/middleware"
	"fairsplit/internal/service"
	"fairsplit/internal/storage/sqlite"
	"fairsplit/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/ledger.db")
	port := getEnv("PORT", "8080")
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret, tokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	server := api.New(
		service.NewAuthService(authenticator, jwtManager),
		service.NewUserService(store),
		service.NewGroupService(store),
		service.NewLedgerService(store),
		jwtManager,
	)

	handler := middlewareStack(server.Handler())

	// Wrap with h2c for HTTP/2 without TLS
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// middlewareStack wraps the API routes with metrics, request logging, and
// CORS, outermost first.
func middlewareStack(next http.Handler) http.Handler {
	return middleware.Metrics(middleware.Logging(middleware.CORS(next)))
}
