// Package api exposes the ledger services over a JSON HTTP facade.
// All monetary values cross this boundary as integer minor currency units;
// balances and plans in responses are derived fresh on every request.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fairsplit/internal/auth"
	"fairsplit/internal/middleware"
	"fairsplit/internal/service"
)

// Server holds the services behind the HTTP facade.
type Server struct {
	auth   *service.AuthService
	users  *service.UserService
	groups *service.GroupService
	ledger *service.LedgerService
	jwt    *auth.JWTManager
}

// New creates a Server wired to the given services.
func New(authSvc *service.AuthService, users *service.UserService, groups *service.GroupService, ledger *service.LedgerService, jwt *auth.JWTManager) *Server {
	return &Server{
		auth:   authSvc,
		users:  users,
		groups: groups,
		ledger: ledger,
		jwt:    jwt,
	}
}

// Handler builds the route table. Ledger routes (expenses, balances)
// require a bearer token; user and group CRUD stay open so pre-auth
// clients keep working, with optional-auth on mutations so log lines
// can name the caller when a token is sent.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	protect := middleware.RequireAuth(s.jwt)
	attribute := middleware.OptionalAuth(s.jwt)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.Handle("POST /users/{$}", attribute(http.HandlerFunc(s.handleCreateUser)))
	mux.HandleFunc("GET /users/{$}", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.Handle("DELETE /users/{id}", attribute(http.HandlerFunc(s.handleDeleteUser)))

	mux.Handle("POST /groups/{$}", attribute(http.HandlerFunc(s.handleCreateGroup)))
	mux.HandleFunc("GET /groups/{$}", s.handleListGroups)
	mux.HandleFunc("GET /groups/{id}", s.handleGetGroup)
	mux.Handle("DELETE /groups/{id}", attribute(http.HandlerFunc(s.handleDeleteGroup)))

	mux.Handle("POST /groups/{id}/expenses/{$}", protect(http.HandlerFunc(s.handleAddExpense)))
	mux.Handle("GET /groups/{id}/expenses/{$}", protect(http.HandlerFunc(s.handleListExpenses)))
	mux.Handle("GET /groups/{id}/balances/{$}", protect(http.HandlerFunc(s.handleGroupBalances)))
	mux.Handle("GET /users/{id}/balances/{$}", protect(http.HandlerFunc(s.handleUserBalances)))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// actorLogger tags log output with the calling user when the request
// carried a valid bearer token.
func actorLogger(ctx context.Context) *slog.Logger {
	if id := middleware.GetUserID(ctx); id != "" {
		return slog.With("actor_id", id, "actor_email", middleware.GetEmail(ctx))
	}
	return slog.Default()
}
