package http

import (
	"net/http"

	"medical-records-api/internal/delivery/http/handler"
	"medical-records-api/internal/delivery/http/middleware"
	"medical-records-api/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	accountHandler    *handler.AccountHandler
	roleHandler       *handler.RoleHandler
	auditLogHandler   *handler.AuditLogHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	rateLimiter       *middleware.RateLimiter
	metricsHandler    http.Handler
}

func NewRouter(
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	roleHandler *handler.RoleHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	rateLimiter *middleware.RateLimiter,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		accountHandler:    accountHandler,
		roleHandler:       roleHandler,
		auditLogHandler:   auditLogHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		rateLimiter:       rateLimiter,
		metricsHandler:    metricsHandler,
	}
}

// Setup registers every route and returns the root handler. Recovery, logging and CORS
// wrap the router so they also see unmatched routes and preflight requests.
func (r *Router) Setup() http.Handler {
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	api.Handle("/auth/login", r.rateLimiter.Limit(http.HandlerFunc(r.authHandler.Login))).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Account provisioning (public, an admin token unlocks admin roles)
	api.Handle("/accounts", r.rateLimiter.Limit(r.authMiddleware.OptionalAuthenticate(http.HandlerFunc(r.accountHandler.CreateAccount)))).Methods(http.MethodPost)

	// Account routes (protected - self or admin)
	accounts := api.PathPrefix("/accounts/{id:[0-9]+}").Subrouter()
	accounts.Use(r.authMiddleware.Authenticate)
	accounts.Handle("/audit-logs", middleware.RequireAdmin(http.HandlerFunc(r.auditLogHandler.GetAccountAuditLogs))).Methods(http.MethodGet)

	self := accounts.NewRoute().Subrouter()
	self.Use(middleware.RequireSelfOrAdmin)
	self.HandleFunc("", r.accountHandler.GetAccount).Methods(http.MethodGet)
	self.HandleFunc("", r.accountHandler.UpdateAccount).Methods(http.MethodPut)
	self.HandleFunc("", r.accountHandler.DeleteAccount).Methods(http.MethodDelete)

	// Role routes (protected)
	roles := api.PathPrefix("/roles").Subrouter()
	roles.Use(r.authMiddleware.Authenticate)
	roles.HandleFunc("", r.roleHandler.ListRoles).Methods(http.MethodGet)
	roles.Handle("", middleware.RequireAdmin(http.HandlerFunc(r.roleHandler.CreateRole))).Methods(http.MethodPost)

	return r.loggingMiddleware.Recover(r.loggingMiddleware.Handle(r.corsMiddleware.Handle(r.router)))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "Service is healthy", map[string]string{"status": "ok"})
}
