package middleware

import (
	"context"
	"net/http"
	"strings"

	"medical-records-api/pkg/jwt"
	"medical-records-api/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	AccountIDKey    contextKey = "account_id"
	AccountEmailKey contextKey = "account_email"
	AccountTypeKey  contextKey = "account_type"
	RoleKey         contextKey = "role"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		log:        log,
	}
}

// Authenticate accepts a request only with a valid, unexpired bearer token. Tokens are
// checked by signature and expiry alone.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		m.serveWithToken(w, r, authHeader, next)
	})
}

// OptionalAuthenticate lets anonymous requests through untouched. A request that does
// carry an Authorization header must present a valid token, like with Authenticate.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		m.serveWithToken(w, r, authHeader, next)
	})
}

func (m *AuthMiddleware) serveWithToken(w http.ResponseWriter, r *http.Request, authHeader string, next http.Handler) {
	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		response.Unauthorized(w, "Invalid authorization header format")
		return
	}

	claims, err := m.jwtService.ValidateToken(parts[1])
	if err != nil {
		m.log.WithField("path", r.URL.Path).Debugf("Rejected token: %v", err)
		response.Unauthorized(w, "Invalid or expired token")
		return
	}

	ctx := WithClaims(r.Context(), claims)
	next.ServeHTTP(w, r.WithContext(ctx))
}

// WithClaims stores the identity asserted by claims in ctx
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, AccountIDKey, claims.AccountID)
	ctx = context.WithValue(ctx, AccountEmailKey, claims.Subject)
	ctx = context.WithValue(ctx, AccountTypeKey, claims.AccountType)
	ctx = context.WithValue(ctx, RoleKey, claims.Role)
	return ctx
}

// GetAccountIDFromContext extracts account ID from context
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDKey).(int64)
	return accountID, ok
}

// GetAccountEmailFromContext extracts the login identifier from context
func GetAccountEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(AccountEmailKey).(string)
	return email, ok
}

// GetAccountTypeFromContext extracts account type from context
func GetAccountTypeFromContext(ctx context.Context) (string, bool) {
	accountType, ok := ctx.Value(AccountTypeKey).(string)
	return accountType, ok
}

// GetRoleFromContext extracts role name from context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
